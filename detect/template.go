package detect

import "strings"

// Template resolution substitutes $1..$9 with capture groups and normalizes
// the result. It never fails: out-of-range placeholders resolve to nothing
// and the output degrades to whatever text survives.

func isSeparator(c byte) bool {
	return c == '.' || c == '_' || c == ' '
}

// substitute replaces $N placeholders with caps[N] (caps[0] is the full
// match and is never referenced by corpus templates).
func substitute(template string, caps []string) string {
	if !strings.Contains(template, "$") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c == '$' && i+1 < len(template) && template[i+1] >= '0' && template[i+1] <= '9' {
			n := int(template[i+1] - '0')
			if n < len(caps) {
				b.WriteString(caps[n])
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalize trims trailing separator characters and collapses runs of
// repeated separators down to their first character.
func normalize(s string) string {
	end := len(s)
	for end > 0 && isSeparator(s[end-1]) {
		end--
	}
	s = s[:end]

	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSeparator(c) {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// resolveName renders a name/model template.
func resolveName(template string, caps []string) string {
	return normalize(substitute(template, caps))
}

// resolveVersion renders a version template; surviving underscores become
// dots ("14_6" -> "14.6").
func resolveVersion(template string, caps []string) string {
	return strings.ReplaceAll(normalize(substitute(template, caps)), "_", ".")
}

// captureOrEmpty returns the n-th capture group or "".
func captureOrEmpty(caps []string, n int) string {
	if n < len(caps) {
		return caps[n]
	}
	return ""
}
