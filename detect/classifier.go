package detect

import (
	"strings"
	"time"
)

// Detector runs the four-stage classification cascade against an immutable
// RuleDatabase. Safe for concurrent use: all state is read-only after New.
type Detector struct {
	db      *RuleDatabase
	heur    *heuristics
	inst    *instruments
	workers int
}

// Option configures a Detector.
type Option func(*Detector)

// WithWorkers sets the worker count used by ClassifyAll.
func WithWorkers(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.workers = n
		}
	}
}

// New builds a Detector over db.
func New(db *RuleDatabase, opts ...Option) (*Detector, error) {
	heur, err := compileHeuristics()
	if err != nil {
		return nil, err
	}
	d := &Detector{
		db:      db,
		heur:    heur,
		inst:    newInstruments(),
		workers: defaultWorkers(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Classify runs the cascade on one input. It never fails: unrecognized,
// empty or garbage input yields an all-absent Result.
func (d *Detector) Classify(ua string) Result {
	start := time.Now()
	res := d.classify(ua)
	d.inst.record(time.Since(start), res)
	return res
}

func (d *Detector) classify(ua string) Result {
	// Stage 1: bots are terminal. A hit skips every other stage.
	if rule, caps, ok := d.db.bots.matchFirst(ua); ok {
		return Result{Bot: &Bot{
			Name:     resolveName(rule.name, caps),
			Category: rule.botCategory,
			URL:      rule.botURL,
			Producer: rule.botProducer,
		}}
	}

	// Stage 2: OS. A miss leaves OS absent but never blocks later stages.
	var os *OS
	if rule, caps, ok := d.db.os.matchFirst(ua); ok {
		name := resolveName(rule.name, caps)
		version := rule.version
		if version == "" {
			version = "$1"
		}
		os = &OS{
			Name:    name,
			Version: resolveVersion(version, caps),
			Family:  osFamily(name),
		}
	}

	// Stage 3: client, first match across sub-types in priority order.
	client := d.detectClient(ua)

	// Stage 4: device rules, then fallback inference.
	device := d.detectDevice(ua, os, client)

	return Result{OS: os, Client: client, Device: device}
}

func (d *Detector) detectClient(ua string) *Client {
	for _, crs := range d.db.clients {
		rule, caps, ok := crs.set.matchFirst(ua)
		if !ok {
			continue
		}
		version := rule.version
		if version == "" {
			version = "$1"
		}
		c := &Client{
			Type:    crs.kind,
			Name:    resolveName(rule.name, caps),
			Version: resolveVersion(version, caps),
		}
		c.Engine, c.EngineVersion = d.resolveEngine(ua, rule, c.Version)
		return c
	}
	return nil
}

// resolveEngine picks the browser engine: the rule's default, adjusted by
// version-threshold overrides (last satisfied threshold wins), then the
// engine RuleSet supplies the engine version when the names agree.
func (d *Detector) resolveEngine(ua string, rule *compiledRule, clientVersion string) (string, string) {
	name := rule.engine
	if clientVersion != "" {
		for _, th := range rule.engineVersions {
			if versionGE(clientVersion, th.MinVersion) {
				name = th.Name
			}
		}
	}

	if name != "" {
		if erule, caps, ok := d.db.engines.matchFirst(ua); ok && strings.EqualFold(erule.name, name) {
			return erule.name, resolveVersion("$1", caps)
		}
		return name, ""
	}

	if erule, caps, ok := d.db.engines.matchFirst(ua); ok {
		return erule.name, resolveVersion("$1", caps)
	}
	return "", ""
}

func (d *Detector) detectDevice(ua string, os *OS, client *Client) *Device {
	var kind DeviceType
	var brand, model string

	if dev := d.matchDeviceRules(ua); dev != nil {
		kind, brand, model = dev.Kind, dev.Brand, dev.Model
	}

	// The corpus uses "Unknown" as an explicit no-brand marker.
	if brand == "Unknown" {
		brand = ""
	}

	// Vendor fragment fallback fills in a brand the device rules missed.
	if brand == "" {
		if rule, _, ok := d.db.vendorFragments.matchFirst(ua); ok {
			brand = rule.name
		}
	}

	// Apple inference: the brand and the OS must agree.
	appleOS := false
	if os != nil {
		_, appleOS = appleOSNames[os.Name]
	}
	if brand == "Apple" && !appleOS {
		kind, brand, model = "", "", ""
	}
	if brand == "" && appleOS {
		brand = "Apple"
	}

	d.heur.inferDeviceType(ua, os, client, &kind, &brand)

	if kind == "" && brand == "" {
		return nil
	}
	return &Device{Kind: kind, Brand: brand, Model: model}
}

// matchDeviceRules scans the device partitions in order. Within a partition
// the first matching brand gate wins; its model sub-rules are then tried in
// order, scoped to that brand only.
func (d *Detector) matchDeviceRules(ua string) *Device {
	for i := range d.db.devices {
		part := &d.db.devices[i]
		if part.pre != nil && !part.pre.matches(ua) {
			continue
		}

		matched := false
		for bi := range part.brands {
			b := &part.brands[bi]
			bcaps, ok := b.pat.captures(ua)
			if !ok {
				continue
			}
			matched = true

			for mi := range b.models {
				m := &b.models[mi]
				mcaps, ok := m.pat.captures(ua)
				if !ok {
					continue
				}
				dev := &Device{Kind: b.kind, Brand: b.brand}
				if m.kind != "" {
					dev.Kind = m.kind
				}
				if m.brand != "" {
					dev.Brand = m.brand
				}
				if m.model != "" {
					dev.Model = resolveName(m.model, mcaps)
				}
				return dev
			}

			// Brand gate matched with no specific model.
			dev := &Device{Kind: b.kind, Brand: b.brand}
			if b.model != "" {
				dev.Model = resolveName(b.model, bcaps)
			}
			return dev
		}

		// A claiming partition whose marker fired owns the device type
		// even without a brand, stopping later partitions from producing
		// false positives.
		if !matched && part.claims {
			return &Device{Kind: part.kind}
		}
	}
	return nil
}
