package ruleload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uascan/uascan/detect"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func minimalCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "bots.yml", `
- regex: 'Googlebot/(\d+[.\d]*)'
  name: 'Googlebot'
  category: 'Search bot'
  url: 'http://www.google.com/bot.html'
  producer:
    name: 'Google Inc.'
    url: 'http://www.google.com'
`)
	writeFixture(t, dir, "oss.yml", `
- regex: 'Android[ /](\d+[.\d]*)'
  name: 'Android'
  version: '$1'
- regex: 'Windows NT 10\.0'
  name: 'Windows'
  version: '10'
`)
	return dir
}

func TestFromDirMinimal(t *testing.T) {
	dir := minimalCorpus(t)
	b, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Records.Bots) != 1 || b.Records.Bots[0].Name != "Googlebot" {
		t.Fatalf("unexpected bots: %+v", b.Records.Bots)
	}
	if b.Records.Bots[0].BotProducer != "Google Inc." {
		t.Fatalf("producer not carried: %+v", b.Records.Bots[0])
	}
	if len(b.Records.OS) != 2 || b.Records.OS[1].Version != "10" {
		t.Fatalf("unexpected oss: %+v", b.Records.OS)
	}
	if b.Files != 2 || b.Rules != 3 {
		t.Fatalf("counts off: files=%d rules=%d", b.Files, b.Rules)
	}
	if len(b.SHA256) != 64 {
		t.Fatalf("bad fingerprint: %q", b.SHA256)
	}
}

func TestFromDirMissingMandatoryFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "bots.yml", "[]\n")
	if _, err := FromDir(dir); err == nil {
		t.Fatal("expected an error for missing oss.yml")
	}
}

func TestFromDirRejectsEntryWithoutRegex(t *testing.T) {
	dir := minimalCorpus(t)
	writeFixture(t, dir, filepath.Join("client", "browsers.yml"), `
- name: 'No Pattern Browser'
  version: '$1'
`)
	if _, err := FromDir(dir); err == nil {
		t.Fatal("expected an error for a client entry without regex")
	}
}

func TestFromDirClientEngines(t *testing.T) {
	dir := minimalCorpus(t)
	writeFixture(t, dir, filepath.Join("client", "browsers.yml"), `
- regex: 'Chrome/(\d+[.\d]*)'
  name: 'Chrome'
  version: '$1'
  engine:
    default: 'WebKit'
    versions:
      28: 'Blink'
      '100': 'Blink2'
`)
	b, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	browsers := b.Records.Clients[detect.ClientBrowser]
	if len(browsers) != 1 {
		t.Fatalf("unexpected browsers: %+v", browsers)
	}
	rec := browsers[0]
	if rec.Engine != "WebKit" {
		t.Fatalf("default engine lost: %+v", rec)
	}
	if len(rec.EngineVersions) != 2 ||
		rec.EngineVersions[0].MinVersion != "28" || rec.EngineVersions[0].Name != "Blink" ||
		rec.EngineVersions[1].MinVersion != "100" || rec.EngineVersions[1].Name != "Blink2" {
		t.Fatalf("threshold order lost: %+v", rec.EngineVersions)
	}
}

func TestFromDirDeviceOrderAndModels(t *testing.T) {
	dir := minimalCorpus(t)
	writeFixture(t, dir, filepath.Join("device", "mobiles.yml"), `
Zebra:
  regex: 'Zebra'
  device: 'smartphone'
  model: 'Z'
Apple:
  regex: '(?:iPhone|iPad)'
  device: 'smartphone'
  models:
    - regex: 'iPad'
      device: 'tablet'
      model: 'iPad'
    - regex: 'iPhone'
      model: 'iPhone'
Samsung:
  regex: 'SM-(\w+)'
  device: 'smartphone'
  model: 'Galaxy $1'
`)
	b, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var mobiles *detect.DevicePartition
	for i := range b.Records.Devices {
		if b.Records.Devices[i].Name == "mobile" {
			mobiles = &b.Records.Devices[i]
		}
	}
	if mobiles == nil {
		t.Fatal("mobile partition missing")
	}
	if mobiles.Mode != detect.PrefilterNone || mobiles.Kind != detect.DeviceSmartphone {
		t.Fatalf("unexpected partition config: %+v", mobiles)
	}
	// YAML document order, not key order, drives rule precedence.
	if len(mobiles.Brands) != 3 ||
		mobiles.Brands[0].Name != "Zebra" ||
		mobiles.Brands[1].Name != "Apple" ||
		mobiles.Brands[2].Name != "Samsung" {
		t.Fatalf("brand order lost: %+v", mobiles.Brands)
	}
	apple := mobiles.Brands[1]
	if len(apple.SubRules) != 2 || apple.SubRules[0].Model != "iPad" || apple.SubRules[0].Kind != "tablet" {
		t.Fatalf("model sub-rules lost: %+v", apple.SubRules)
	}
}

func TestFromDirVendorFragments(t *testing.T) {
	dir := minimalCorpus(t)
	writeFixture(t, dir, "vendorfragments.yml", `
Huawei:
  - 'HUAWEI'
ZTE:
  - 'ZTE'
  - 'Blade'
`)
	b, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Records.VendorFragments) != 3 {
		t.Fatalf("unexpected fragments: %+v", b.Records.VendorFragments)
	}
	first := b.Records.VendorFragments[0]
	if first.Name != "Huawei" || first.Pattern != `HUAWEI[^a-z0-9]+` {
		t.Fatalf("fragment guard missing: %+v", first)
	}
}

func TestFromDirFingerprintTracksContent(t *testing.T) {
	dir := minimalCorpus(t)
	b1, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b2, err := FromDir(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b1.SHA256 != b2.SHA256 {
		t.Fatal("fingerprint must be deterministic")
	}
	writeFixture(t, dir, "bots.yml", `
- regex: 'Bingbot/(\d+[.\d]*)'
  name: 'Bingbot'
`)
	b3, err := FromDir(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b3.SHA256 == b1.SHA256 {
		t.Fatal("fingerprint must change with the rule content")
	}
}

func TestFromDirEndToEnd(t *testing.T) {
	dir := minimalCorpus(t)
	writeFixture(t, dir, filepath.Join("client", "browsers.yml"), `
- regex: 'Chrome/(\d+[.\d]*)'
  name: 'Chrome'
  version: '$1'
  engine:
    default: 'Blink'
`)
	writeFixture(t, dir, filepath.Join("device", "mobiles.yml"), `
Samsung:
  regex: 'SM-(\w+)'
  device: 'smartphone'
  model: 'Galaxy $1'
`)
	b, err := FromDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	db, err := detect.Load(b.Records)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d, err := detect.New(db)
	if err != nil {
		t.Fatalf("detector: %v", err)
	}
	res := d.Classify("Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 Chrome/92.0.4515.159 Mobile Safari/537.36")
	if res.OS == nil || res.OS.Name != "Android" || res.OS.Version != "11" {
		t.Fatalf("unexpected OS: %+v", res.OS)
	}
	if res.Client == nil || res.Client.Name != "Chrome" || res.Client.Engine != "Blink" {
		t.Fatalf("unexpected client: %+v", res.Client)
	}
	if res.Device == nil || res.Device.Brand != "Samsung" || res.Device.Model != "Galaxy G991B" {
		t.Fatalf("unexpected device: %+v", res.Device)
	}
}
