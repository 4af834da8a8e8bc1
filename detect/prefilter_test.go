package detect

import "testing"

func TestCandidatesOrderedAndDeduped(t *testing.T) {
	ix := buildLiteralIndex([]string{
		`Safari/(\d+)`,   // 0
		`Chrome/(\d+)`,   // 1
		`(ab)\1`,         // 2: backreference, always-candidate
		`Mobile Safari`,  // 3
	})
	got := ix.candidates("Mozilla/5.0 Mobile Safari/604.1")
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates = %v, want %v", got, want)
		}
	}
}

func TestCandidatesCaseInsensitive(t *testing.T) {
	ix := buildLiteralIndex([]string{`firefox`})
	if got := ix.candidates("Mozilla/5.0 FIREFOX/99.0"); len(got) != 1 || got[0] != 0 {
		t.Fatalf("candidates = %v", got)
	}
}

func TestCandidatesEmptyInput(t *testing.T) {
	ix := buildLiteralIndex([]string{`Chrome`, `(a)\1`})
	got := ix.candidates("")
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected only the always-candidate, got %v", got)
	}
}

// TestPrefilterSoundness cross-checks the index against direct matching: every
// rule whose pattern matches the input must appear among the candidates.
// Missing one would silently drop detections, so this is the core guarantee.
func TestPrefilterSoundness(t *testing.T) {
	patterns := []string{
		`Googlebot/(\d+[.\d]*)`,
		`(?:iPhone|iPad|iPod)`,
		`Android[ /]?(\d+[.\d]*)?`,
		`Windows NT (\d+[.\d]*)`,
		`Opera[ /](\d+[.\d]*)`,
		`(?:Mobile|Tablet) Safari`,
		`HbbTV/([1-9][.\d]*)`,
		`(ab)c\1`,
		`[HS]amsung`,
		`Darwin/([\d.]+)`,
	}
	inputs := []string{
		"",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X)",
		"Mozilla/5.0 (Linux; Android 11; SM-G991B) Mobile Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		"Opera/9.80 (Windows NT 6.1) Presto/2.12.388",
		"HbbTV/1.1.1 (;Samsung;SmartTV2013;T-FXPDEUC-1102.2;;)",
		"abcab",
		"curl/7.79.1",
		"SAMSUNG-GT-S5253/S5253 Dolfin/2.0",
		"googlebot/2.1 (+http://www.google.com/bot.html)",
	}

	compiled := make([]*pattern, len(patterns))
	for i, p := range patterns {
		pat, err := compilePattern(p)
		if err != nil {
			t.Fatalf("compile %q: %v", p, err)
		}
		compiled[i] = pat
	}
	ix := buildLiteralIndex(patterns)

	for _, in := range inputs {
		cands := make(map[int]bool)
		for _, c := range ix.candidates(in) {
			cands[c] = true
		}
		for i, pat := range compiled {
			if pat.matches(in) && !cands[i] {
				t.Errorf("input %q: rule %d (%s) matches but was filtered out", in, i, patterns[i])
			}
		}
	}
}

func TestIndexCounts(t *testing.T) {
	ix := buildLiteralIndex([]string{`Chrome`, `Safari`, `(x)\1`})
	if ix.ruleCount != 3 {
		t.Fatalf("ruleCount = %d", ix.ruleCount)
	}
	if ix.litCount != 2 {
		t.Fatalf("litCount = %d", ix.litCount)
	}
	if len(ix.always) != 1 || ix.always[0] != 2 {
		t.Fatalf("always = %v", ix.always)
	}
}
