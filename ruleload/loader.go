// Package ruleload reads a device-detection rule corpus from a directory of
// YAML files and turns it into the structured records the detect package
// compiles. The on-disk layout follows the upstream corpus convention:
//
//	bots.yml
//	oss.yml
//	vendorfragments.yml
//	client/browsers.yml, client/browser_engine.yml, client/feed_readers.yml, ...
//	device/televisions.yml, device/mobiles.yml, ...
//
// Only bots.yml and oss.yml are mandatory; every other file is optional so a
// trimmed corpus (say, bots plus browsers) still loads.
package ruleload

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/uascan/uascan/detect"
)

// Bundle is one fully parsed rule corpus. SHA256 fingerprints the raw file
// contents, so two bundles with equal fingerprints compile to identical
// databases.
type Bundle struct {
	Records detect.RecordSet
	SHA256  string
	Files   int
	Rules   int
}

var clientFiles = []struct {
	file string
	kind detect.ClientType
}{
	{"browsers.yml", detect.ClientBrowser},
	{"feed_readers.yml", detect.ClientFeedReader},
	{"mobile_apps.yml", detect.ClientMobileApp},
	{"libraries.yml", detect.ClientLibrary},
	{"mediaplayers.yml", detect.ClientMediaPlayer},
	{"pim.yml", detect.ClientPIM},
}

// devicePartitions fixes the scan order and prefilter policy per device file.
// Order is semantic: the first partition that matches or claims its kind wins.
var devicePartitions = []struct {
	file    string
	name    string
	kind    detect.DeviceType
	mode    detect.PrefilterMode
	pattern string
	claims  bool
}{
	{"shell_tv.yml", "shelltv", detect.DeviceTV, detect.PrefilterPattern, `[a-z]+[ _]Shell[ _]\w{6}|tclwebkit(\d+[\.\d]*)`, true},
	{"televisions.yml", "tv", detect.DeviceTV, detect.PrefilterPattern, `(?:[HS]bbTV|SmartTvA)/([1-9]{1}(?:\.[0-9]{1,2}){1,2})`, true},
	{"consoles.yml", "console", detect.DeviceConsole, detect.PrefilterOverall, "", false},
	{"car_browsers.yml", "car", detect.DeviceCarBrowser, detect.PrefilterOverall, "", false},
	{"cameras.yml", "camera", detect.DeviceCamera, detect.PrefilterOverall, "", false},
	{"portable_media_player.yml", "portablemediaplayer", detect.DevicePortableMediaPlayer, detect.PrefilterOverall, "", false},
	{"notebooks.yml", "notebook", detect.DeviceNotebook, detect.PrefilterPattern, `FBMD/`, false},
	{"mobiles.yml", "mobile", detect.DeviceSmartphone, detect.PrefilterNone, "", false},
}

// FromDir loads the rule corpus rooted at dir.
func FromDir(dir string) (*Bundle, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("rule directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rule directory: %s is not a directory", dir)
	}

	b := &Bundle{}
	b.Records.Clients = make(map[detect.ClientType][]detect.Record)
	h := sha256.New()

	if err := b.loadBots(filepath.Join(dir, "bots.yml"), h); err != nil {
		return nil, err
	}
	if err := b.loadOS(filepath.Join(dir, "oss.yml"), h); err != nil {
		return nil, err
	}
	for _, cf := range clientFiles {
		if err := b.loadClients(filepath.Join(dir, "client", cf.file), cf.kind, h); err != nil {
			return nil, err
		}
	}
	if err := b.loadEngines(filepath.Join(dir, "client", "browser_engine.yml"), h); err != nil {
		return nil, err
	}
	if err := b.loadVendorFragments(filepath.Join(dir, "vendorfragments.yml"), h); err != nil {
		return nil, err
	}
	for _, dp := range devicePartitions {
		if err := b.loadDevices(filepath.Join(dir, "device", dp.file), dp.name, dp.kind, dp.mode, dp.pattern, dp.claims, h); err != nil {
			return nil, err
		}
	}

	b.SHA256 = hex.EncodeToString(h.Sum(nil))
	return b, nil
}

// readRuleFile returns the file contents and feeds name plus contents into the
// bundle fingerprint. A missing file yields (nil, nil) when optional.
func (b *Bundle) readRuleFile(path string, optional bool, h hash.Hash) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rules: %w", err)
	}
	h.Write([]byte(filepath.Base(path)))
	h.Write([]byte{0})
	h.Write(data)
	h.Write([]byte{0})
	b.Files++
	return data, nil
}

func (b *Bundle) loadBots(path string, h hash.Hash) error {
	data, err := b.readRuleFile(path, false, h)
	if err != nil {
		return err
	}
	var entries []botEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for i, e := range entries {
		if e.Regex == "" {
			return fmt.Errorf("parse %s: entry %d has no regex", filepath.Base(path), i)
		}
		b.Records.Bots = append(b.Records.Bots, detect.Record{
			Pattern:     e.Regex,
			Name:        e.Name,
			BotCategory: e.Category,
			BotURL:      e.URL,
			BotProducer: e.Producer.Name,
		})
		b.Rules++
	}
	return nil
}

func (b *Bundle) loadOS(path string, h hash.Hash) error {
	data, err := b.readRuleFile(path, false, h)
	if err != nil {
		return err
	}
	var entries []osEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for i, e := range entries {
		if e.Regex == "" {
			return fmt.Errorf("parse %s: entry %d has no regex", filepath.Base(path), i)
		}
		b.Records.OS = append(b.Records.OS, detect.Record{
			Pattern: e.Regex,
			Name:    e.Name,
			Version: e.Version,
		})
		b.Rules++
	}
	return nil
}

func (b *Bundle) loadClients(path string, kind detect.ClientType, h hash.Hash) error {
	data, err := b.readRuleFile(path, true, h)
	if err != nil || data == nil {
		return err
	}
	var entries []clientEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse client/%s: %w", filepath.Base(path), err)
	}
	for i, e := range entries {
		if e.Regex == "" {
			return fmt.Errorf("parse client/%s: entry %d has no regex", filepath.Base(path), i)
		}
		rec := detect.Record{
			Pattern: e.Regex,
			Name:    e.Name,
			Version: e.Version,
		}
		if e.Engine != nil {
			rec.Engine = e.Engine.Default
			thresholds, err := engineThresholds(&e.Engine.Versions)
			if err != nil {
				return fmt.Errorf("parse client/%s: entry %d: %w", filepath.Base(path), i, err)
			}
			rec.EngineVersions = thresholds
		}
		b.Records.Clients[kind] = append(b.Records.Clients[kind], rec)
		b.Rules++
	}
	return nil
}

// engineThresholds flattens the versions mapping in document order.
func engineThresholds(node *yaml.Node) ([]detect.EngineThreshold, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("engine versions: expected a mapping, got %s", node.Tag)
	}
	var out []detect.EngineThreshold
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, detect.EngineThreshold{
			MinVersion: node.Content[i].Value,
			Name:       node.Content[i+1].Value,
		})
	}
	return out, nil
}

func (b *Bundle) loadEngines(path string, h hash.Hash) error {
	data, err := b.readRuleFile(path, true, h)
	if err != nil || data == nil {
		return err
	}
	var entries []engineEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse client/browser_engine.yml: %w", err)
	}
	for i, e := range entries {
		if e.Regex == "" {
			return fmt.Errorf("parse client/browser_engine.yml: entry %d has no regex", i)
		}
		b.Records.Engines = append(b.Records.Engines, detect.Record{
			Pattern: e.Regex,
			Name:    e.Name,
		})
		b.Rules++
	}
	return nil
}

// loadVendorFragments reads the brand-keyed fragment lists. Each fragment
// pattern gets a trailing [^a-z0-9]+ guard so "ZTE" does not fire inside
// "ZTEnterprise".
func (b *Bundle) loadVendorFragments(path string, h hash.Hash) error {
	data, err := b.readRuleFile(path, true, h)
	if err != nil || data == nil {
		return err
	}
	root, err := mappingRoot(data)
	if err != nil {
		return fmt.Errorf("parse vendorfragments.yml: %w", err)
	}
	if root == nil {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		brand := root.Content[i].Value
		var fragments []string
		if err := root.Content[i+1].Decode(&fragments); err != nil {
			return fmt.Errorf("parse vendorfragments.yml: brand %q: %w", brand, err)
		}
		for _, frag := range fragments {
			b.Records.VendorFragments = append(b.Records.VendorFragments, detect.Record{
				Pattern: frag + `[^a-z0-9]+`,
				Name:    brand,
			})
			b.Rules++
		}
	}
	return nil
}

func (b *Bundle) loadDevices(path, name string, kind detect.DeviceType, mode detect.PrefilterMode, pattern string, claims bool, h hash.Hash) error {
	data, err := b.readRuleFile(path, true, h)
	if err != nil || data == nil {
		return err
	}
	root, err := mappingRoot(data)
	if err != nil {
		return fmt.Errorf("parse device/%s: %w", filepath.Base(path), err)
	}
	part := detect.DevicePartition{
		Name:       name,
		Kind:       kind,
		Mode:       mode,
		Pattern:    pattern,
		ClaimsKind: claims,
	}
	if root != nil {
		for i := 0; i+1 < len(root.Content); i += 2 {
			brand := root.Content[i].Value
			var entry deviceEntry
			if err := root.Content[i+1].Decode(&entry); err != nil {
				return fmt.Errorf("parse device/%s: brand %q: %w", filepath.Base(path), brand, err)
			}
			if entry.Regex == "" {
				return fmt.Errorf("parse device/%s: brand %q has no regex", filepath.Base(path), brand)
			}
			rec := detect.Record{
				Pattern: entry.Regex,
				Name:    brand,
				Model:   entry.Model,
				Kind:    entry.Device,
			}
			for _, m := range entry.Models {
				if m.Regex == "" {
					return fmt.Errorf("parse device/%s: brand %q has a model rule without regex", filepath.Base(path), brand)
				}
				rec.SubRules = append(rec.SubRules, detect.Record{
					Pattern: m.Regex,
					Name:    m.Brand,
					Model:   m.Model,
					Kind:    m.Device,
				})
			}
			part.Brands = append(part.Brands, rec)
			b.Rules++
		}
	}
	b.Records.Devices = append(b.Records.Devices, part)
	return nil
}

// mappingRoot unwraps a YAML document down to its top-level mapping node.
// Returns nil for an empty document.
func mappingRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at the document root, got %s", node.Tag)
	}
	return node, nil
}

// SortedBrands lists every brand that appears in the bundle's device rules,
// deduplicated and sorted. Diagnostic helper for corpus inspection tools.
func (b *Bundle) SortedBrands() []string {
	seen := make(map[string]struct{})
	for _, part := range b.Records.Devices {
		for _, brand := range part.Brands {
			seen[brand.Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
