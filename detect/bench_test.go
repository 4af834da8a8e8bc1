package detect

import "testing"

var benchUAs = []string{
	"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 Version/14.1.1 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 Chrome/92.0.4515.159 Mobile Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0",
	"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	"HbbTV/1.1.1 (;Samsung;SmartTV2013;T-FXPDEUC-1102.2;;) WebKit",
	"curl/7.79.1",
}

func newBenchDetector(b *testing.B) *Detector {
	b.Helper()
	db, err := Load(fixtureRecords())
	if err != nil {
		b.Fatalf("load fixture: %v", err)
	}
	d, err := New(db)
	if err != nil {
		b.Fatalf("new detector: %v", err)
	}
	return d
}

func BenchmarkClassify(b *testing.B) {
	d := newBenchDetector(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Classify(benchUAs[i%len(benchUAs)])
	}
}

func BenchmarkClassifyAll(b *testing.B) {
	d := newBenchDetector(b)
	batch := make([]string, 0, 1024)
	for len(batch) < cap(batch) {
		batch = append(batch, benchUAs[len(batch)%len(benchUAs)])
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.ClassifyAll(batch)
	}
}

func BenchmarkCandidates(b *testing.B) {
	db, err := Load(fixtureRecords())
	if err != nil {
		b.Fatalf("load fixture: %v", err)
	}
	ua := benchUAs[0]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = db.bots.index.candidates(ua)
	}
}
