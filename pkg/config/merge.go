// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sort"
	"strings"

	"carvel.dev/cfnschema/pkg/schema"
)

type MergeMode string

const (
	// MergeModeMerge lays the file's entries over the bundled ones.
	MergeModeMerge MergeMode = "merge"
	// MergeModeOverride replaces the bundled section.
	MergeModeOverride MergeMode = "override"
)

const (
	SettingsSection       = "settings"
	SpecificationsSection = "specifications"
	GroupsSection         = "groups"
)

// MergeModes picks a mode per configuration section.
type MergeModes map[string]MergeMode

func DefaultMergeModes() MergeModes {
	return MergeModes{
		SettingsSection:       MergeModeMerge,
		SpecificationsSection: MergeModeMerge,
		GroupsSection:         MergeModeMerge,
	}
}

// ParseMergeModes reads section=mode pairs, keeping the default for
// sections that are not mentioned.
func ParseMergeModes(pairs map[string]string) (MergeModes, error) {
	modes := DefaultMergeModes()

	var sections []string
	for section := range pairs {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for _, section := range sections {
		if _, found := modes[section]; !found {
			return nil, fmt.Errorf("Expected merge section to be one of '%s', but was '%s'",
				strings.Join([]string{SettingsSection, SpecificationsSection, GroupsSection}, "', '"), section)
		}
		mode := MergeMode(pairs[section])
		switch mode {
		case MergeModeMerge, MergeModeOverride:
			modes[section] = mode
		default:
			return nil, fmt.Errorf("Expected merge mode of section '%s' to be '%s' or '%s', but was '%s'",
				section, MergeModeMerge, MergeModeOverride, mode)
		}
	}
	return modes, nil
}

func (m MergeModes) modeOf(section string) MergeMode {
	if mode, found := m[section]; found {
		return mode
	}
	return MergeModeMerge
}

// Merge combines base (typically the bundled configuration) with other.
// Neither argument is modified.
func Merge(base, other *Config, modes MergeModes) *Config {
	result := base.DeepCopy()
	if other == nil {
		return result
	}
	other = other.DeepCopy()

	switch modes.modeOf(SettingsSection) {
	case MergeModeOverride:
		result.Settings = other.Settings
	default:
		result.Settings = result.Settings.mergeOverride(other.Settings)
	}

	switch modes.modeOf(SpecificationsSection) {
	case MergeModeOverride:
		result.Specifications = other.Specifications
	default:
		for region, location := range other.Specifications {
			result.Specifications[region] = location
		}
	}

	switch modes.modeOf(GroupsSection) {
	case MergeModeOverride:
		result.Groups = other.Groups
	default:
		for name, spec := range other.Groups {
			result.Groups[name] = spec
		}
	}

	return result
}

// mergeOverride takes every field that is set in other.
func (s Settings) mergeOverride(other Settings) Settings {
	if other.Draft != "" {
		s.Draft = other.Draft
	}
	if len(other.Regions) > 0 {
		s.Regions = other.Regions
	}
	if other.Output != "" {
		s.Output = other.Output
	}
	if other.Single != nil {
		s.Single = other.Single
	}
	if other.IncludeIntrinsics != nil {
		s.IncludeIntrinsics = other.IncludeIntrinsics
	}
	if other.RequireCatalogVersion != "" {
		s.RequireCatalogVersion = other.RequireCatalogVersion
	}
	if other.IDBaseURL != "" {
		s.IDBaseURL = other.IDBaseURL
	}
	return s
}

// Overrides are settings given on the command line.
type Overrides struct {
	// Region replaces the configured regions. When SpecLocation is also
	// set, it becomes the region's catalog location.
	Region            string
	SpecLocation      string
	Draft             schema.Draft
	Output            string
	Single            *bool
	IncludeIntrinsics *bool
}

// ApplyOverrides returns a copy of c with overrides applied.
func (c *Config) ApplyOverrides(overrides Overrides) *Config {
	result := c.DeepCopy()

	if overrides.SpecLocation != "" {
		region := overrides.Region
		if region == "" {
			region = DefaultRegion
		}
		result.Specifications[region] = overrides.SpecLocation
		result.Settings.Regions = []string{region}
	}
	if overrides.Region != "" {
		result.Settings.Regions = []string{overrides.Region}
	}
	result.Settings = result.Settings.mergeOverride(Settings{
		Draft:             overrides.Draft,
		Output:            overrides.Output,
		Single:            overrides.Single,
		IncludeIntrinsics: overrides.IncludeIntrinsics,
	})
	return result
}
