package detect

// Static lookup data: OS families, the desktop family set, the brand
// short-code table and the TV client names used by the device heuristics.

// osFamilies maps a resolved OS name to its coarse family. Names absent from
// the table have no family; the device fallback then cannot infer desktop.
var osFamilies = map[string]string{
	"Android":    "Android",
	"Android TV": "Android",
	"Fire OS":    "Android",
	"HarmonyOS":  "Android",
	"LineageOS":  "Android",
	"Coolita OS": "Android",

	"iOS":     "iOS",
	"iPadOS":  "iOS",
	"tvOS":    "iOS",
	"watchOS": "iOS",

	"Mac": "Mac",

	"GNU/Linux":  "GNU/Linux",
	"Ubuntu":     "GNU/Linux",
	"Debian":     "GNU/Linux",
	"Fedora":     "GNU/Linux",
	"Arch Linux": "GNU/Linux",
	"CentOS":     "GNU/Linux",
	"openSUSE":   "GNU/Linux",

	"Chrome OS":   "Chrome OS",
	"Chromium OS": "Chrome OS",

	"Windows":     "Windows",
	"Windows IoT": "Windows",
	"Xbox OS":     "Windows",

	"Windows RT":     "Windows Mobile",
	"Windows Phone":  "Windows Mobile",
	"Windows Mobile": "Windows Mobile",
	"Windows CE":     "Windows Mobile",

	"FreeBSD": "Unix",
	"OpenBSD": "Unix",
	"NetBSD":  "Unix",
	"Solaris": "Unix",

	"AIX":  "IBM",
	"OS/2": "IBM",
	"z/OS": "IBM",

	"AmigaOS": "AmigaOS",
	"BeOS":    "BeOS",
	"Haiku":   "BeOS",

	"KaiOS":      "Firefox OS",
	"Firefox OS": "Firefox OS",

	"Symbian":    "Symbian",
	"Symbian OS": "Symbian",

	"BlackBerry OS":        "BlackBerry",
	"BlackBerry Tablet OS": "BlackBerry",

	"PlayStation": "Gaming Console",
	"Nintendo":    "Gaming Console",

	"Java ME": "Real-time OS",
	"Tizen":   "Tizen",
	"webOS":   "webOS",
}

// desktopFamilies are the families that imply a desktop device when no
// explicit device rule matched and no mobile signal was seen.
var desktopFamilies = map[string]struct{}{
	"AmigaOS":   {},
	"IBM":       {},
	"GNU/Linux": {},
	"Mac":       {},
	"Unix":      {},
	"Windows":   {},
	"BeOS":      {},
	"Chrome OS": {},
}

// appleOSNames gate the Apple brand inference.
var appleOSNames = map[string]struct{}{
	"iOS":     {},
	"iPadOS":  {},
	"tvOS":    {},
	"watchOS": {},
	"Mac":     {},
}

// osFamily returns the family for an OS name, or "".
func osFamily(name string) string { return osFamilies[name] }

// isDesktopFamily reports whether family implies a desktop device.
func isDesktopFamily(family string) bool {
	_, ok := desktopFamilies[family]
	return ok
}

// brandCodes resolves the short brand codes used by device rules to their
// canonical brand names. Unknown codes pass through unresolved.
var brandCodes = map[string]string{
	"AC": "Acer",
	"AM": "Amazon",
	"AP": "Apple",
	"AR": "Archos",
	"AS": "Asus",
	"BB": "BlackBerry",
	"DE": "Dell",
	"FU": "Fujitsu",
	"GO": "Google",
	"HP": "HP",
	"HT": "HTC",
	"HU": "Huawei",
	"LE": "Lenovo",
	"LG": "LG",
	"MO": "Motorola",
	"MS": "Microsoft",
	"NI": "Nintendo",
	"NO": "Nokia",
	"ON": "OnePlus",
	"OP": "OPPO",
	"PA": "Panasonic",
	"PH": "Philips",
	"RE": "Realme",
	"SA": "Samsung",
	"SH": "Sharp",
	"SO": "Sony",
	"TC": "TCL",
	"TO": "Toshiba",
	"VI": "Vivo",
	"WI": "Wiko",
	"XI": "Xiaomi",
	"ZT": "ZTE",
}

// resolveBrand maps a brand short code to its canonical name; anything not in
// the table is already a literal brand name and passes through.
func resolveBrand(code string) string {
	if name, ok := brandCodes[code]; ok {
		return name
	}
	return code
}

// tvClientNames are client names that identify a TV platform regardless of
// device rules.
var tvClientNames = map[string]struct{}{
	"Kylo":               {},
	"Espial TV Browser":  {},
	"LUJO TV Browser":    {},
	"LogicUI TV Browser": {},
	"Open TV Browser":    {},
	"Seraphic Sraf":      {},
	"Opera Devices":      {},
	"Crow Browser":       {},
	"Vewd Browser":       {},
	"TiviMate":           {},
	"Quick Search TV":    {},
	"QJY TV Browser":     {},
	"TV Bro":             {},
	"Redline":            {},
}
