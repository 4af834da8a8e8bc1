package detect

import (
	"sort"
	"testing"
)

func sorted(xs []string) []string {
	out := append([]string(nil), xs...)
	sort.Strings(out)
	return out
}

func TestExtractLiteralsSimple(t *testing.T) {
	lits := extractLiterals(`Googlebot/(\d+)`)
	if len(lits) != 1 || lits[0] != "googlebot/" {
		t.Fatalf("unexpected literals: %v", lits)
	}
}

func TestExtractLiteralsAlternation(t *testing.T) {
	lits := sorted(extractLiterals(`(?:iPhone|iPad|iPod)`))
	want := []string{"ipad", "iphone", "ipod"}
	if len(lits) != len(want) {
		t.Fatalf("unexpected literals: %v", lits)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Fatalf("unexpected literals: %v", lits)
		}
	}
}

func TestExtractLiteralsShortPrefix(t *testing.T) {
	// Any prefix below the minimum length poisons the whole set. Returning a
	// partial set here would drop matches, so the rule must stay an
	// always-candidate.
	if lits := extractLiterals(`ab|Chrome`); lits != nil {
		t.Fatalf("expected nil for short alternative, got %v", lits)
	}
	if lits := extractLiterals(`\d+ Firefox`); lits != nil {
		t.Fatalf("expected nil for leading digit class, got %v", lits)
	}
}

func TestExtractLiteralsUnparseable(t *testing.T) {
	// Backreferences and lookaround are not RE2 syntax; such rules are
	// always-candidates.
	if lits := extractLiterals(`(ab)c\1`); lits != nil {
		t.Fatalf("expected nil for backreference, got %v", lits)
	}
	if lits := extractLiterals(`Tablet(?! PC)`); lits != nil {
		t.Fatalf("expected nil for lookahead, got %v", lits)
	}
}

func TestExtractLiteralsNonASCII(t *testing.T) {
	if lits := extractLiterals(`Ω-browser`); lits != nil {
		t.Fatalf("expected nil for non-ASCII literal, got %v", lits)
	}
}

func TestExtractLiteralsOptionalHead(t *testing.T) {
	// A leading optional element means the match may start anywhere, so no
	// bounded prefix set exists.
	if lits := extractLiterals(`(?:Mobile )?Safari`); lits != nil {
		t.Fatalf("expected nil, got %v", lits)
	}
}

func TestExtractLiteralsCharClassExpansion(t *testing.T) {
	lits := sorted(extractLiterals(`[HS]bbTV`))
	if len(lits) != 2 || lits[0] != "hbbtv" || lits[1] != "sbbtv" {
		t.Fatalf("unexpected literals: %v", lits)
	}
}

func TestExtractLiteralsCaseFolded(t *testing.T) {
	lits := extractLiterals(`FireFox`)
	if len(lits) != 1 || lits[0] != "firefox" {
		t.Fatalf("unexpected literals: %v", lits)
	}
}
