package ruleload

import "gopkg.in/yaml.v3"

// YAML schemas for the rule-definition corpus. Flat-list files (bots, oss,
// client/*) decode straight into slices; brand-keyed files (device/*,
// vendorfragments) go through yaml.Node so document order survives, because
// rule order is first-match-wins semantics, not presentation.

type botEntry struct {
	Regex    string `yaml:"regex"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	URL      string `yaml:"url"`
	Producer struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"producer"`
}

type osEntry struct {
	Regex   string `yaml:"regex"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type clientEntry struct {
	Regex   string     `yaml:"regex"`
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Engine  *engineRef `yaml:"engine"`
}

// engineRef carries the default engine plus ordered version thresholds.
// Versions stays a yaml.Node: a plain map would scramble threshold order.
type engineRef struct {
	Default  string    `yaml:"default"`
	Versions yaml.Node `yaml:"versions"`
}

type engineEntry struct {
	Regex string `yaml:"regex"`
	Name  string `yaml:"name"`
}

type deviceEntry struct {
	Regex  string       `yaml:"regex"`
	Device string       `yaml:"device"`
	Model  string       `yaml:"model"`
	Models []modelEntry `yaml:"models"`
}

type modelEntry struct {
	Regex  string `yaml:"regex"`
	Model  string `yaml:"model"`
	Device string `yaml:"device"`
	Brand  string `yaml:"brand"`
}
