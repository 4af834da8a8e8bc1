package detect

import (
	"fmt"
	"testing"
)

func TestClassifyAllPreservesOrder(t *testing.T) {
	inputs := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 Version/14.1.1 Safari/604.1",
		"Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 Chrome/92.0.4515.159 Mobile Safari/537.36",
		"",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0",
		"curl/7.79.1",
	}

	for _, workers := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			d := newTestDetector(t, WithWorkers(workers))
			serial := make([]Result, len(inputs))
			for i, ua := range inputs {
				serial[i] = d.Classify(ua)
			}
			got := d.ClassifyAll(inputs)
			if len(got) != len(inputs) {
				t.Fatalf("expected %d results, got %d", len(inputs), len(got))
			}
			for i := range got {
				if !sameResult(got[i], serial[i]) {
					t.Errorf("slot %d diverged: %+v vs %+v", i, got[i], serial[i])
				}
			}
		})
	}
}

func TestClassifyAllEmpty(t *testing.T) {
	d := newTestDetector(t)
	if got := d.ClassifyAll(nil); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestClassifyAllMoreWorkersThanInputs(t *testing.T) {
	d := newTestDetector(t, WithWorkers(64))
	got := d.ClassifyAll([]string{"curl/7.79.1"})
	if len(got) != 1 || got[0].Bot == nil || got[0].Bot.Name != "curl" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func sameResult(a, b Result) bool {
	switch {
	case (a.Bot == nil) != (b.Bot == nil),
		(a.OS == nil) != (b.OS == nil),
		(a.Client == nil) != (b.Client == nil),
		(a.Device == nil) != (b.Device == nil):
		return false
	}
	if a.Bot != nil && *a.Bot != *b.Bot {
		return false
	}
	if a.OS != nil && *a.OS != *b.OS {
		return false
	}
	if a.Client != nil && *a.Client != *b.Client {
		return false
	}
	if a.Device != nil && *a.Device != *b.Device {
		return false
	}
	return true
}
