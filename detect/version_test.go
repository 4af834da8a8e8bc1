package detect

import "testing"

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "2.0", -1},
		{"2.0", "1.9", 1},
		{"4.4", "4.4", 0},
		{"10", "9", 1},        // numeric, not lexicographic
		{"4.10", "4.9", 1},    // component-wise numeric
		{"10", "10.0", 0},     // trailing zeros do not matter
		{"10", "10.0.0", 0},
		{"10", "10.1", -1},    // missing component is lower
		{"8.1", "8", 1},
		{"", "1", -1},
		{"", "", 0},
		{"4.4b", "4.4a", 1},   // non-numeric falls back to lexicographic
	}
	for _, c := range cases {
		if got := CompareVersions(c.a, c.b); got != c.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestVersionBounds(t *testing.T) {
	if !versionLT("1.5", "2.0") {
		t.Fatal("1.5 should be below 2.0")
	}
	if !versionGE("3.2.1", "3.0") {
		t.Fatal("3.2.1 should be at least 3.0")
	}
	if versionGE("2.3", "3.0") {
		t.Fatal("2.3 should not be at least 3.0")
	}
}
