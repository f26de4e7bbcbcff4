// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"carvel.dev/cfnschema/pkg/groups"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRegion is generated when no region is configured.
	DefaultRegion = "us-east-2"
	// DefaultOutput is the directory documents are written to.
	DefaultOutput = "schemas"
)

//go:embed config.yml
var bundledConfig []byte

type Config struct {
	// Specifications maps a region to the location of its catalog.
	Specifications map[string]string      `yaml:"specifications,omitempty" toml:"specifications,omitempty"`
	Settings       Settings               `yaml:"settings,omitempty" toml:"settings,omitempty"`
	Groups         map[string]groups.Spec `yaml:"groups,omitempty" toml:"groups,omitempty"`
}

// Settings fields left unset do not override other configuration when
// merged.
type Settings struct {
	Draft   schema.Draft `yaml:"draft,omitempty" toml:"draft,omitempty"`
	Regions []string     `yaml:"regions,omitempty" toml:"regions,omitempty"`
	Output  string       `yaml:"output,omitempty" toml:"output,omitempty"`
	Single  *bool        `yaml:"single,omitempty" toml:"single,omitempty"`

	IncludeIntrinsics *bool `yaml:"includeIntrinsics,omitempty" toml:"includeIntrinsics,omitempty"`
	// RequireCatalogVersion is a version constraint (e.g. ">= 10.0.0")
	// every loaded catalog has to satisfy.
	RequireCatalogVersion string `yaml:"requireCatalogVersion,omitempty" toml:"requireCatalogVersion,omitempty"`
	// IDBaseURL, when set, is the prefix of each document's $id.
	IDBaseURL string `yaml:"idBaseURL,omitempty" toml:"idBaseURL,omitempty"`
}

// Bundled returns the configuration shipped with the binary.
func Bundled() (*Config, error) {
	cfg, err := Parse("config.yml", bundledConfig)
	if err != nil {
		return nil, fmt.Errorf("Parsing bundled configuration: %s", err)
	}
	return cfg, nil
}

// LoadFile reads a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading configuration file '%s': %s", path, err)
	}
	cfg, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("Parsing configuration file '%s': %s", path, err)
	}
	return cfg, nil
}

// Parse decodes data as TOML when name ends in .toml and as YAML
// otherwise. Unknown keys are rejected.
func Parse(name string, data []byte) (*Config, error) {
	cfg := &Config{}

	if strings.EqualFold(filepath.Ext(name), ".toml") {
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("Unknown configuration key '%s'", undecoded[0])
		}
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// AsYAML is used to show the effective configuration.
func (c *Config) AsYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(c)
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeepCopy returns a copy sharing no maps or slices with c.
func (c *Config) DeepCopy() *Config {
	result := &Config{
		Specifications: map[string]string{},
		Settings:       c.Settings.deepCopy(),
		Groups:         map[string]groups.Spec{},
	}
	for region, location := range c.Specifications {
		result.Specifications[region] = location
	}
	for name, spec := range c.Groups {
		result.Groups[name] = groups.Spec{
			Includes: append([]string(nil), spec.Includes...),
			Excludes: append([]string(nil), spec.Excludes...),
		}
	}
	return result
}

func (s Settings) deepCopy() Settings {
	result := s
	result.Regions = append([]string(nil), s.Regions...)
	if s.Single != nil {
		single := *s.Single
		result.Single = &single
	}
	if s.IncludeIntrinsics != nil {
		intrinsics := *s.IncludeIntrinsics
		result.IncludeIntrinsics = &intrinsics
	}
	return result
}
