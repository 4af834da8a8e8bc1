package detect

import (
	"strconv"
	"strings"
)

// CompareVersions orders two dot-separated version strings. Components are
// compared numerically when both sides parse as integers, lexicographically
// otherwise. A missing component is lower than any present one, so
// "10" < "10.1". Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	as := splitVersion(a)
	bs := splitVersion(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(as):
			if nonZero(bs[i:]) {
				return -1
			}
			return 0
		case i >= len(bs):
			if nonZero(as[i:]) {
				return 1
			}
			return 0
		}
		if c := compareComponent(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func splitVersion(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

// nonZero reports whether any remaining component is not numerically zero.
func nonZero(rest []string) bool {
	for _, c := range rest {
		if n, err := strconv.Atoi(c); err == nil {
			if n != 0 {
				return true
			}
			continue
		}
		if c != "" {
			return true
		}
	}
	return false
}

func compareComponent(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// versionLT reports a < b.
func versionLT(a, b string) bool { return CompareVersions(a, b) < 0 }

// versionGE reports a >= b.
func versionGE(a, b string) bool { return CompareVersions(a, b) >= 0 }
