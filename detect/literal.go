package detect

import (
	"regexp/syntax"
	"strings"
)

const (
	// minLiteralLen is the shortest literal worth indexing. A rule whose
	// prefix set contains anything shorter is kept as an always-candidate
	// instead, because dropping a short prefix would admit false negatives.
	minLiteralLen = 3
	// maxLiterals bounds the per-rule prefix set; larger sets bail out.
	maxLiterals = 64
	// maxLiteralLen caps indexed literal length; longer prefixes are
	// truncated, which keeps them valid as prefixes.
	maxLiteralLen = 32
)

// litSet is a set of known prefixes covering every match of a sub-pattern:
// each possible match starts with one of lits. exact means lits are the
// complete match strings, allowing concatenation to extend them.
type litSet struct {
	lits  []string
	exact bool
}

// extractLiterals derives the literal prefix set of a rule pattern for the
// pre-filter index. The return is sound, never merely likely: if it is
// non-empty, every input matched by the pattern contains at least one of the
// returned literals (ASCII case-insensitively). Patterns the stdlib parser
// cannot handle (backreferences, lookaround) and patterns without a usable
// bounded prefix set return nil, marking the rule as an always-candidate.
func extractLiterals(pattern string) []string {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	set := prefixSet(re)
	if set == nil || len(set.lits) == 0 {
		return nil
	}

	out := make([]string, 0, len(set.lits))
	seen := make(map[string]struct{}, len(set.lits))
	for _, lit := range set.lits {
		if len(lit) < minLiteralLen {
			return nil
		}
		lower := strings.ToLower(lit)
		if !isASCII(lower) {
			// The automaton folds case per ASCII byte only; a non-ASCII
			// literal could be matched in another case and be missed.
			return nil
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, lower)
	}
	return out
}

// prefixSet walks the parsed pattern and returns its prefix literal set, or
// nil when no bounded set exists.
func prefixSet(re *syntax.Regexp) *litSet {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return &litSet{lits: []string{""}, exact: true}

	case syntax.OpLiteral:
		lit := string(re.Rune)
		if len(lit) > maxLiteralLen {
			return &litSet{lits: []string{lit[:maxLiteralLen]}, exact: false}
		}
		return &litSet{lits: []string{lit}, exact: true}

	case syntax.OpCharClass:
		var runes []rune
		for i := 0; i+1 < len(re.Rune); i += 2 {
			lo, hi := re.Rune[i], re.Rune[i+1]
			if hi-lo >= 8 || len(runes) > 8 {
				return nil
			}
			for r := lo; r <= hi; r++ {
				runes = append(runes, r)
			}
		}
		if len(runes) == 0 || len(runes) > 8 {
			return nil
		}
		set := &litSet{exact: true}
		for _, r := range runes {
			set.lits = append(set.lits, string(r))
		}
		return set

	case syntax.OpCapture:
		return prefixSet(re.Sub[0])

	case syntax.OpConcat:
		cur := &litSet{lits: []string{""}, exact: true}
		for _, sub := range re.Sub {
			if !cur.exact {
				break
			}
			ps := prefixSet(sub)
			if ps == nil {
				cur.exact = false
				break
			}
			cur = crossSets(cur, ps)
		}
		return cur

	case syntax.OpAlternate:
		set := &litSet{exact: true}
		for _, sub := range re.Sub {
			ps := prefixSet(sub)
			if ps == nil {
				return nil
			}
			set.lits = append(set.lits, ps.lits...)
			set.exact = set.exact && ps.exact
			if len(set.lits) > maxLiterals {
				return nil
			}
		}
		return set

	case syntax.OpQuest, syntax.OpStar:
		// Matches the empty string, so the only universally valid prefix
		// is empty. Callers treat that as unusable after length filtering.
		return &litSet{lits: []string{""}, exact: false}

	case syntax.OpPlus:
		ps := prefixSet(re.Sub[0])
		if ps == nil {
			return nil
		}
		return &litSet{lits: ps.lits, exact: false}

	case syntax.OpRepeat:
		if re.Min == 0 {
			return &litSet{lits: []string{""}, exact: false}
		}
		ps := prefixSet(re.Sub[0])
		if ps == nil {
			return nil
		}
		return &litSet{lits: ps.lits, exact: false}
	}

	return nil
}

// crossSets concatenates every literal in a with every literal in b.
// Oversized products degrade to a marked inexact, which is still a valid
// prefix set for the concatenation.
func crossSets(a, b *litSet) *litSet {
	if len(a.lits)*len(b.lits) > maxLiterals {
		a.exact = false
		return a
	}
	out := &litSet{
		lits:  make([]string, 0, len(a.lits)*len(b.lits)),
		exact: a.exact && b.exact,
	}
	for _, x := range a.lits {
		for _, y := range b.lits {
			lit := x + y
			if len(lit) > maxLiteralLen {
				lit = lit[:maxLiteralLen]
				out.exact = false
			}
			out.lits = append(out.lits, lit)
		}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
