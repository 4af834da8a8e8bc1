package detect

import "fmt"

// Record is one already-parsed rule definition. Which fields are meaningful
// depends on the category it is supplied under; Pattern is always required.
// Templates use $1..$9 placeholders referring to capture groups.
type Record struct {
	// Pattern is the rule regex in the corpus dialect (case-insensitive,
	// backreferences and lookaround allowed, implicit boundary prefix).
	Pattern string

	// Name is the name template (bot/OS/client name, or brand short code
	// for device brand rules).
	Name string

	// Version is the optional version template.
	Version string

	// Model is the optional device model template.
	Model string

	// Kind optionally overrides the partition's default device type
	// ("smartphone", "tablet", ...).
	Kind string

	// BotCategory / BotURL / BotProducer carry bot metadata.
	BotCategory string
	BotURL      string
	BotProducer string

	// Engine is the default browser engine for a client rule.
	Engine string
	// EngineVersions are ordered version-threshold engine overrides; the
	// last threshold the resolved client version satisfies wins.
	EngineVersions []EngineThreshold

	// SubRules are model rules owned by a device brand rule, tried only
	// after the brand pattern matched. Order is significant.
	SubRules []Record
}

// EngineThreshold switches the browser engine from a minimum client version on.
type EngineThreshold struct {
	MinVersion string
	Name       string
}

// PrefilterMode selects how a device partition is gated before its brand
// rules are evaluated.
type PrefilterMode int

const (
	// PrefilterNone runs the partition on every input.
	PrefilterNone PrefilterMode = iota
	// PrefilterPattern gates the partition on a dedicated marker pattern.
	PrefilterPattern
	// PrefilterOverall gates the partition on the union of its brand
	// patterns combined into one alternation.
	PrefilterOverall
)

// DevicePartition is one ordered group of device brand rules sharing a
// default device type and a prefilter policy.
type DevicePartition struct {
	// Name identifies the partition for RulesFor lookups ("mobile", "tv", ...).
	Name string
	// Kind is the default device type for matches in this partition.
	Kind DeviceType
	// Mode selects the prefilter policy.
	Mode PrefilterMode
	// Pattern is the marker pattern for PrefilterPattern mode.
	Pattern string
	// ClaimsKind makes a prefilter hit claim the device type even when no
	// brand rule matches, stopping later partitions from running.
	ClaimsKind bool
	// Brands are the ordered brand rules (Record.Name = brand short code,
	// Record.SubRules = model rules).
	Brands []Record
}

// RecordSet is the full structured rule input consumed by Load.
type RecordSet struct {
	Bots []Record
	OS   []Record
	// Clients holds one ordered rule list per sub-type; sub-types are
	// scanned in clientTypePriority order.
	Clients map[ClientType][]Record
	// Engines extract the browser engine version from the input.
	Engines []Record
	// VendorFragments map marker patterns to a device brand, used as a
	// brand fallback when device rules leave the brand empty.
	VendorFragments []Record
	// Devices are scanned in slice order; the first partition producing a
	// match (or claiming its kind) wins.
	Devices []DevicePartition
}

// MalformedRuleError reports a structurally invalid rule record during
// database construction. Construction is all-or-nothing: the first invalid
// record aborts the build.
type MalformedRuleError struct {
	Category Category
	Subtype  string
	Index    int
	Reason   string
	Err      error
}

func (e *MalformedRuleError) Error() string {
	where := string(e.Category)
	if e.Subtype != "" {
		where += "/" + e.Subtype
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed rule %s[%d]: %s: %v", where, e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed rule %s[%d]: %s", where, e.Index, e.Reason)
}

func (e *MalformedRuleError) Unwrap() error { return e.Err }
