package detect

// Category identifies one of the four top-level rule groups.
type Category string

const (
	CategoryBot    Category = "bot"
	CategoryOS     Category = "os"
	CategoryClient Category = "client"
	CategoryDevice Category = "device"
)

// ClientType partitions client rules. The classifier scans sub-types in the
// order of clientTypePriority; within a sub-type, rule order decides.
type ClientType string

const (
	ClientBrowser     ClientType = "browser"
	ClientFeedReader  ClientType = "feed reader"
	ClientMobileApp   ClientType = "mobile app"
	ClientLibrary     ClientType = "library"
	ClientMediaPlayer ClientType = "mediaplayer"
	ClientPIM         ClientType = "pim"
)

// clientTypePriority is the fixed scan order for client sub-types.
// First match across all sub-types wins, so this order is semantic.
var clientTypePriority = []ClientType{
	ClientBrowser,
	ClientFeedReader,
	ClientMobileApp,
	ClientLibrary,
	ClientMediaPlayer,
	ClientPIM,
}

// DeviceType is the hardware class of a detected device.
type DeviceType string

const (
	DeviceDesktop             DeviceType = "desktop"
	DeviceSmartphone          DeviceType = "smartphone"
	DeviceTablet              DeviceType = "tablet"
	DevicePhablet             DeviceType = "phablet"
	DeviceFeaturePhone        DeviceType = "feature phone"
	DeviceConsole             DeviceType = "console"
	DeviceTV                  DeviceType = "tv"
	DeviceCarBrowser          DeviceType = "car browser"
	DeviceCamera              DeviceType = "camera"
	DevicePortableMediaPlayer DeviceType = "portable media player"
	DeviceNotebook            DeviceType = "notebook"
	DeviceSmartDisplay        DeviceType = "smart display"
	DeviceSmartSpeaker        DeviceType = "smart speaker"
	DeviceWearable            DeviceType = "wearable"
	DevicePeripheral          DeviceType = "peripheral"
)

// ParseDeviceType maps a rule-file device label to a DeviceType.
func ParseDeviceType(s string) (DeviceType, bool) {
	switch s {
	case "desktop":
		return DeviceDesktop, true
	case "smartphone":
		return DeviceSmartphone, true
	case "tablet":
		return DeviceTablet, true
	case "phablet":
		return DevicePhablet, true
	case "feature phone":
		return DeviceFeaturePhone, true
	case "console":
		return DeviceConsole, true
	case "tv", "television":
		return DeviceTV, true
	case "car browser":
		return DeviceCarBrowser, true
	case "camera":
		return DeviceCamera, true
	case "portable media player":
		return DevicePortableMediaPlayer, true
	case "notebook":
		return DeviceNotebook, true
	case "smart display":
		return DeviceSmartDisplay, true
	case "smart speaker":
		return DeviceSmartSpeaker, true
	case "wearable":
		return DeviceWearable, true
	case "peripheral":
		return DevicePeripheral, true
	}
	return "", false
}

// Bot describes a matched crawler/bot signature.
type Bot struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	URL      string `json:"url,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// OS describes the detected operating system. Family is the coarse group
// (e.g. "Android", "Windows") used by the device-type fallback.
type OS struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Family  string `json:"family,omitempty"`
}

// Client describes the detected client software. Engine fields are populated
// for browsers when an engine can be resolved.
type Client struct {
	Type          ClientType `json:"type"`
	Name          string     `json:"name"`
	Version       string     `json:"version,omitempty"`
	Engine        string     `json:"engine,omitempty"`
	EngineVersion string     `json:"engine_version,omitempty"`
}

// Device describes the detected hardware. Kind may be empty when only the
// brand could be inferred (e.g. via a vendor fragment).
type Device struct {
	Kind  DeviceType `json:"kind,omitempty"`
	Brand string     `json:"brand,omitempty"`
	Model string     `json:"model,omitempty"`
}

// Result is the aggregate classification of one input string.
// Invariant: Bot != nil implies OS, Client and Device are all nil.
type Result struct {
	Bot    *Bot    `json:"bot,omitempty"`
	OS     *OS     `json:"os,omitempty"`
	Client *Client `json:"client,omitempty"`
	Device *Device `json:"device,omitempty"`
}

// IsBot reports whether the input was classified as a bot.
func (r Result) IsBot() bool { return r.Bot != nil }

// Empty reports whether nothing was recognized.
func (r Result) Empty() bool {
	return r.Bot == nil && r.OS == nil && r.Client == nil && r.Device == nil
}
