package detect

import (
	"strconv"
	"strings"
)

// compiledRule is one pattern rule plus the data templates it carries.
type compiledRule struct {
	pat     *pattern
	name    string
	version string

	botCategory string
	botURL      string
	botProducer string

	engine         string
	engineVersions []EngineThreshold
}

// ruleSet is an ordered rule list with its literal pre-filter index.
// The cascade stops at the first matching rule; source order is preserved
// exactly, so a ruleSet is always a slice, never a map.
type ruleSet struct {
	rules []compiledRule
	index *literalIndex
}

// matchFirst returns the earliest rule matching input plus its captures.
func (rs *ruleSet) matchFirst(input string) (*compiledRule, []string, bool) {
	for _, idx := range rs.index.candidates(input) {
		if caps, ok := rs.rules[idx].pat.captures(input); ok {
			return &rs.rules[idx], caps, true
		}
	}
	return nil, nil, false
}

// compiledModel is a model sub-rule under a device brand rule.
type compiledModel struct {
	pat   *pattern
	brand string // optional brand override (canonical name)
	model string // model template
	kind  DeviceType
}

// compiledBrand is a device brand gate with its brand-scoped model rules.
type compiledBrand struct {
	pat    *pattern
	brand  string
	model  string // brand-level model template
	kind   DeviceType
	models []compiledModel
}

// devicePartition is a prefiltered group of brand rules.
type devicePartition struct {
	name   string
	kind   DeviceType
	claims bool
	pre    *pattern // nil means always run
	brands []compiledBrand
}

// RuleDatabase is the immutable compiled rule corpus. Built once by Load and
// shared read-only across all classification calls; no field mutates after
// construction, so no locking is needed.
type RuleDatabase struct {
	bots            *ruleSet
	os              *ruleSet
	clients         []clientRuleSet
	engines         *ruleSet
	vendorFragments *ruleSet
	devices         []devicePartition
}

type clientRuleSet struct {
	kind ClientType
	set  *ruleSet
}

// Load compiles already-parsed rule records into a RuleDatabase.
// Construction is all-or-nothing: the first structurally invalid record
// aborts with a *MalformedRuleError.
func Load(records RecordSet) (*RuleDatabase, error) {
	db := &RuleDatabase{}

	var err error
	if db.bots, err = compileRuleSet(CategoryBot, "", records.Bots); err != nil {
		return nil, err
	}
	if db.os, err = compileRuleSet(CategoryOS, "", records.OS); err != nil {
		return nil, err
	}

	for _, kind := range clientTypePriority {
		recs, ok := records.Clients[kind]
		if !ok {
			continue
		}
		set, err := compileRuleSet(CategoryClient, string(kind), recs)
		if err != nil {
			return nil, err
		}
		db.clients = append(db.clients, clientRuleSet{kind: kind, set: set})
	}

	if db.engines, err = compileRuleSet(CategoryClient, "engine", records.Engines); err != nil {
		return nil, err
	}
	if db.vendorFragments, err = compileRuleSet(CategoryDevice, "vendor fragment", records.VendorFragments); err != nil {
		return nil, err
	}

	for _, part := range records.Devices {
		compiled, err := compileDevicePartition(part)
		if err != nil {
			return nil, err
		}
		db.devices = append(db.devices, compiled)
	}

	return db, nil
}

func compileRuleSet(cat Category, subtype string, records []Record) (*ruleSet, error) {
	rs := &ruleSet{rules: make([]compiledRule, 0, len(records))}
	patterns := make([]string, 0, len(records))

	for i, rec := range records {
		if rec.Pattern == "" {
			return nil, &MalformedRuleError{Category: cat, Subtype: subtype, Index: i, Reason: "missing pattern"}
		}
		pat, err := compilePattern(rec.Pattern)
		if err != nil {
			return nil, &MalformedRuleError{Category: cat, Subtype: subtype, Index: i, Reason: "uncompilable pattern", Err: err}
		}
		rs.rules = append(rs.rules, compiledRule{
			pat:            pat,
			name:           rec.Name,
			version:        rec.Version,
			botCategory:    rec.BotCategory,
			botURL:         rec.BotURL,
			botProducer:    rec.BotProducer,
			engine:         rec.Engine,
			engineVersions: rec.EngineVersions,
		})
		patterns = append(patterns, rec.Pattern)
	}

	rs.index = buildLiteralIndex(patterns)
	return rs, nil
}

func compileDevicePartition(part DevicePartition) (devicePartition, error) {
	out := devicePartition{name: part.Name, kind: part.Kind, claims: part.ClaimsKind}

	for i, rec := range part.Brands {
		if rec.Pattern == "" {
			return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "missing pattern"}
		}
		pat, err := compilePattern(rec.Pattern)
		if err != nil {
			return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "uncompilable pattern", Err: err}
		}

		brand := compiledBrand{
			pat:   pat,
			brand: resolveBrand(rec.Name),
			model: rec.Model,
			kind:  part.Kind,
		}
		if rec.Kind != "" {
			kind, ok := ParseDeviceType(rec.Kind)
			if !ok {
				return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "unknown device type " + rec.Kind}
			}
			brand.kind = kind
		}

		for j, sub := range rec.SubRules {
			if sub.Pattern == "" {
				return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "model sub-rule missing pattern"}
			}
			mpat, err := compilePattern(sub.Pattern)
			if err != nil {
				return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "uncompilable model sub-rule", Err: err}
			}
			model := compiledModel{pat: mpat, model: sub.Model}
			if sub.Name != "" {
				model.brand = resolveBrand(sub.Name)
			}
			if sub.Kind != "" {
				kind, ok := ParseDeviceType(sub.Kind)
				if !ok {
					return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: i, Reason: "unknown device type in model sub-rule " + strconv.Itoa(j)}
				}
				model.kind = kind
			}
			brand.models = append(brand.models, model)
		}

		out.brands = append(out.brands, brand)
	}

	switch part.Mode {
	case PrefilterNone:
		// run on every input
	case PrefilterPattern:
		if part.Pattern == "" {
			return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: -1, Reason: "prefilter pattern missing"}
		}
		pre, err := compileRawPattern(part.Pattern)
		if err != nil {
			return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: -1, Reason: "uncompilable prefilter pattern", Err: err}
		}
		out.pre = pre
	case PrefilterOverall:
		// OR all brand patterns into one alternation: if the combined
		// pattern misses, no individual brand pattern can hit.
		if len(part.Brands) > 0 {
			alts := make([]string, 0, len(part.Brands))
			for _, rec := range part.Brands {
				alts = append(alts, rec.Pattern)
			}
			pre, err := compilePattern(strings.Join(alts, "|"))
			if err != nil {
				return out, &MalformedRuleError{Category: CategoryDevice, Subtype: part.Name, Index: -1, Reason: "uncompilable overall prefilter", Err: err}
			}
			out.pre = pre
		}
	}

	return out, nil
}

// RuleView is the read-only projection of one loaded rule.
type RuleView struct {
	Pattern string
	Name    string
}

// RulesFor exposes the ordered rules of one category/sub-type, for
// diagnostics and tests. Sub-type is the client type for CategoryClient, the
// partition name for CategoryDevice, and ignored otherwise.
func (db *RuleDatabase) RulesFor(cat Category, subtype string) []RuleView {
	switch cat {
	case CategoryBot:
		return viewRuleSet(db.bots)
	case CategoryOS:
		return viewRuleSet(db.os)
	case CategoryClient:
		for _, crs := range db.clients {
			if string(crs.kind) == subtype {
				return viewRuleSet(crs.set)
			}
		}
	case CategoryDevice:
		for _, part := range db.devices {
			if part.name != subtype {
				continue
			}
			out := make([]RuleView, 0, len(part.brands))
			for _, b := range part.brands {
				out = append(out, RuleView{Pattern: b.pat.re.String(), Name: b.brand})
			}
			return out
		}
	}
	return nil
}

func viewRuleSet(rs *ruleSet) []RuleView {
	if rs == nil {
		return nil
	}
	out := make([]RuleView, 0, len(rs.rules))
	for _, r := range rs.rules {
		out = append(out, RuleView{Pattern: r.pat.re.String(), Name: r.name})
	}
	return out
}
