// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sort"
	"strings"

	"carvel.dev/cfnschema/pkg/groups"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/hashicorp/go-version"
)

// Region is a selected region and the location of its catalog.
type Region struct {
	Name     string
	Location string
}

// Materialized is a fully resolved configuration.
type Materialized struct {
	Draft             schema.Draft
	IncludeIntrinsics bool
	Single            bool
	Output            string
	IDBaseURL         string

	Groups  groups.Groups
	Regions []Region

	// CatalogVersion is nil when any catalog version is accepted.
	CatalogVersion version.Constraints
}

// Materialize compiles groups and selects every configured region that
// starts with one of the requested regions.
func (c *Config) Materialize() (*Materialized, error) {
	result := &Materialized{
		Draft:     c.Settings.Draft,
		Output:    c.Settings.Output,
		IDBaseURL: c.Settings.IDBaseURL,
	}
	if result.Draft == "" {
		result.Draft = schema.DefaultDraft
	}
	if result.Output == "" {
		result.Output = DefaultOutput
	}
	if c.Settings.Single != nil {
		result.Single = *c.Settings.Single
	}
	if c.Settings.IncludeIntrinsics != nil {
		result.IncludeIntrinsics = *c.Settings.IncludeIntrinsics
	}

	if len(c.Settings.RequireCatalogVersion) > 0 {
		constraint, err := version.NewConstraint(c.Settings.RequireCatalogVersion)
		if err != nil {
			return nil, fmt.Errorf("Parsing catalog version constraint '%s': %s", c.Settings.RequireCatalogVersion, err)
		}
		result.CatalogVersion = constraint
	}

	regions, err := c.selectRegions()
	if err != nil {
		return nil, err
	}
	result.Regions = regions

	result.Groups, err = groups.Materialize(c.Groups)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Config) selectRegions() ([]Region, error) {
	requested := c.Settings.Regions
	if len(requested) == 0 {
		requested = []string{DefaultRegion}
	}

	var names []string
	for name := range c.Specifications {
		names = append(names, name)
	}
	sort.Strings(names)

	selected := map[string]struct{}{}
	var result []Region

	for _, prefix := range requested {
		matched := false
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			matched = true
			if _, found := selected[name]; !found {
				selected[name] = struct{}{}
				result = append(result, Region{Name: name, Location: c.Specifications[name]})
			}
		}
		if !matched {
			return nil, fmt.Errorf("No region mapping was found for region '%s'", prefix)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// CheckCatalogVersion succeeds when no constraint is configured or the
// given catalog version satisfies it.
func (m *Materialized) CheckCatalogVersion(catalogVersion string) error {
	if m.CatalogVersion == nil {
		return nil
	}
	ver, err := version.NewVersion(catalogVersion)
	if err != nil {
		return fmt.Errorf("Parsing catalog version '%s': %s", catalogVersion, err)
	}
	if !m.CatalogVersion.Check(ver) {
		return fmt.Errorf("Expected catalog version '%s' to satisfy '%s'", catalogVersion, m.CatalogVersion)
	}
	return nil
}
