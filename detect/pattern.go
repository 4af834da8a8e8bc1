package detect

import (
	"github.com/dlclark/regexp2"
)

// boundaryPrefix is prepended to every rule pattern. It anchors matches to
// the start of the input or to a non-identifier boundary, plus the two vendor
// prefixes the rule corpus was authored against. Changing it breaks fixture
// compatibility.
const boundaryPrefix = `(?:^|[^A-Z0-9_\-]|[^A-Z0-9\-]_|sprd\-|MZ\-)`

// pattern wraps one compiled rule regex. The corpus dialect needs
// backreferences and lookaround, so matching goes through a backtracking
// engine rather than the stdlib RE2 engine. Catastrophic backtracking is a
// latent hazard inherited from the corpus, not bounded here.
type pattern struct {
	re *regexp2.Regexp
}

// compilePattern compiles expr with the boundary prefix and case folding.
func compilePattern(expr string) (*pattern, error) {
	re, err := regexp2.Compile(boundaryPrefix+"(?:"+expr+")", regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	return &pattern{re: re}, nil
}

// compileRawPattern compiles expr without the boundary prefix. Used for
// partition marker patterns that carry their own anchoring.
func compileRawPattern(expr string) (*pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	return &pattern{re: re}, nil
}

// captures runs the pattern against input and returns the capture groups at
// the first match position. Index 0 is the full match; groups are 1-indexed;
// an unmatched optional group yields the empty string.
func (p *pattern) captures(input string) ([]string, bool) {
	m, err := p.re.FindStringMatch(input)
	if err != nil || m == nil {
		return nil, false
	}
	caps := make([]string, m.GroupCount())
	for i := range caps {
		g := m.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		caps[i] = g.Captures[len(g.Captures)-1].String()
	}
	return caps, true
}

// matches reports whether the pattern matches input anywhere.
func (p *pattern) matches(input string) bool {
	ok, err := p.re.MatchString(input)
	return err == nil && ok
}
