package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of generated config files.
const yamlIndent = 2

// ToYAML encodes the configuration as YAML. A nil Config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader encodes the configuration after a comment header,
// separated by a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return slices.Concat([]byte(strings.TrimRight(header, "\n")+"\n\n"), body), nil
}

// FromYAML decodes a configuration. Inspections is never nil on success.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if cfg.Inspections == nil {
		cfg.Inspections = make(map[string]InspectionConfig)
	}
	return &cfg, nil
}

// Clone returns a deep copy of c. Option values that are themselves maps or
// slices are shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableInspections = slices.Clone(c.EnableInspections)
	out.DisableInspections = slices.Clone(c.DisableInspections)
	out.Project.SourceRoots = slices.Clone(c.Project.SourceRoots)
	out.Fixes.Families = slices.Clone(c.Fixes.Families)

	if c.Inspections != nil {
		out.Inspections = make(map[string]InspectionConfig, len(c.Inspections))
		for k, v := range c.Inspections {
			v.Enabled = clonePtr(v.Enabled)
			v.Severity = clonePtr(v.Severity)
			v.AutoFix = clonePtr(v.AutoFix)
			v.Options = maps.Clone(v.Options)
			out.Inspections[k] = v
		}
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
