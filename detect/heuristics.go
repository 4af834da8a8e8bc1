package detect

// heuristics holds the pre-compiled device-type inference patterns applied
// when no explicit device rule matched. Compiling them once at construction
// avoids ~16 regex compilations per lookup. Each pattern gets the same
// boundary prefix and case folding as rule patterns.
type heuristics struct {
	vr               *pattern
	chromeAndroid    *pattern
	mobileToken      *pattern
	padAPad          *pattern
	androidTablet    *pattern
	operaTablet      *pattern
	androidMobile    *pattern
	touch            *pattern
	puffinDesktop    *pattern
	puffinSmartphone *pattern
	puffinTablet     *pattern
	operaTV          *pattern
	androidTV        *pattern
	smartTVTizen     *pattern
	tvFragment       *pattern
	desktopFragment  *pattern
}

func compileHeuristics() (*heuristics, error) {
	h := &heuristics{}
	for _, entry := range []struct {
		dst  **pattern
		expr string
	}{
		{&h.vr, `Android( [.0-9]+)?; Mobile VR;| VR `},
		{&h.chromeAndroid, `Chrome/[.0-9]*`},
		{&h.mobileToken, `(?:Mobile|eliboM)`},
		{&h.padAPad, `Pad/APad`},
		{&h.androidTablet, `Android( [.0-9]+)?; Tablet;|Tablet(?! PC)|.*\-tablet$`},
		{&h.operaTablet, `Opera Tablet`},
		{&h.androidMobile, `Android( [.0-9]+)?; Mobile;|.*\-mobile$`},
		{&h.touch, `Touch`},
		{&h.puffinDesktop, `Puffin/(?:\d+[.\d]+)[LMW]D`},
		{&h.puffinSmartphone, `Puffin/(?:\d+[.\d]+)[AIFLW]P`},
		{&h.puffinTablet, `Puffin/(?:\d+[.\d]+)[AILW]T`},
		{&h.operaTV, `Opera TV Store| OMI/`},
		{&h.androidTV, `Andr0id|(?:Android(?: UHD)?|Google) TV|\(lite\) TV|BRAVIA|Firebolt| TV$`},
		{&h.smartTVTizen, `SmartTV|Tizen.+ TV .+$`},
		{&h.tvFragment, `\(TV;`},
		{&h.desktopFragment, `Desktop(?: (?:x(?:32|64)|WOW64))?;`},
	} {
		pat, err := compilePattern(entry.expr)
		if err != nil {
			return nil, err
		}
		*entry.dst = pat
	}
	return h, nil
}

// inferDeviceType applies the fallback battery to a device left untyped (or
// weakly typed) by the explicit rules. It mutates kind/brand in place. Check
// order is load-bearing: an explicit rule match always outranks these
// heuristics, which is why callers only reach here after the rule scan.
func (h *heuristics) inferDeviceType(ua string, os *OS, client *Client, kind *DeviceType, brand *string) {
	osName, osVersion, family := "", "", ""
	if os != nil {
		osName, osVersion, family = os.Name, os.Version, os.Family
	}
	androidFamily := family == "Android"

	// VR fragment means a headset.
	if *kind == "" && h.vr.matches(ua) {
		*kind = DeviceWearable
	}

	// Chrome on Android: the Mobile token separates phones from tablets.
	if *kind == "" && androidFamily && h.chromeAndroid.matches(ua) {
		if h.mobileToken.matches(ua) {
			*kind = DeviceSmartphone
		} else {
			*kind = DeviceTablet
		}
	}

	if *kind == DeviceSmartphone && h.padAPad.matches(ua) {
		*kind = DeviceTablet
	}

	if *kind == "" && (h.androidTablet.matches(ua) || h.operaTablet.matches(ua)) {
		*kind = DeviceTablet
	}

	if *kind == "" && h.androidMobile.matches(ua) {
		*kind = DeviceSmartphone
	}

	// Android before 2.0 was phone-only; 3.x was tablet-only.
	if *kind == "" && osName == "Android" && osVersion != "" {
		if versionLT(osVersion, "2.0") {
			*kind = DeviceSmartphone
		} else if versionGE(osVersion, "3.0") && versionLT(osVersion, "4.0") {
			*kind = DeviceTablet
		}
	}

	if *kind == DeviceFeaturePhone && androidFamily {
		*kind = DeviceSmartphone
	}

	if *kind == "" && osName == "Java ME" {
		*kind = DeviceFeaturePhone
	}
	if osName == "KaiOS" {
		*kind = DeviceFeaturePhone
	}

	// Windows 8+ with a Touch token is a tablet.
	if *kind == "" && h.touch.matches(ua) &&
		(osName == "Windows RT" || (osName == "Windows" && osVersion != "" && versionGE(osVersion, "8"))) {
		*kind = DeviceTablet
	}

	if *kind == "" && h.puffinDesktop.matches(ua) {
		*kind = DeviceDesktop
	}
	if *kind == "" && h.puffinSmartphone.matches(ua) {
		*kind = DeviceSmartphone
	}
	if *kind == "" && h.puffinTablet.matches(ua) {
		*kind = DeviceTablet
	}

	if h.operaTV.matches(ua) {
		*kind = DeviceTV
	}

	if osName == "Coolita OS" {
		*kind = DeviceTV
		*brand = "coocaa"
	}

	if *kind != DeviceTV && *kind != DevicePeripheral && h.androidTV.matches(ua) {
		*kind = DeviceTV
	}

	if *kind == "" && h.smartTVTizen.matches(ua) {
		*kind = DeviceTV
	}

	if client != nil {
		if _, ok := tvClientNames[client.Name]; ok {
			*kind = DeviceTV
		}
	}

	if *kind == "" && h.tvFragment.matches(ua) {
		*kind = DeviceTV
	}

	if *kind != DeviceDesktop && h.desktopFragment.matches(ua) {
		*kind = DeviceDesktop
	}

	// Last resort: a desktop OS family with no mobile signal is a desktop.
	if *kind == "" && isDesktopFamily(family) {
		*kind = DeviceDesktop
	}
}
