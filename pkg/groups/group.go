// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"fmt"
	"regexp"
	"sort"
)

const (
	// DefaultName is the reserved group whose patterns are merged into
	// every other group.
	DefaultName = "default"
	// AllName is the group created when no groups are configured.
	AllName = "all"
)

var (
	allIncludes      = []string{"AWS.*"}
	baselineIncludes = []string{"Tag.*"}
)

// Spec is a group as written in configuration.
type Spec struct {
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty"`
	Excludes []string `json:"excludes,omitempty" yaml:"excludes,omitempty" toml:"excludes,omitempty"`
}

func IncludesOnly(includes ...string) Spec { return Spec{Includes: includes} }
func ExcludesOnly(excludes ...string) Spec { return Spec{Excludes: excludes} }

// Compile anchors every pattern so that only whole names match.
func (s Spec) Compile(name string) (*Group, error) {
	includes, err := compilePatterns(name, s.Includes)
	if err != nil {
		return nil, err
	}
	excludes, err := compilePatterns(name, s.Excludes)
	if err != nil {
		return nil, err
	}
	return &Group{name: name, spec: s, includes: includes, excludes: excludes}, nil
}

func compilePatterns(group string, patterns []string) ([]*regexp.Regexp, error) {
	var result []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("Compiling pattern '%s' of group '%s': %s", pattern, group, err)
		}
		result = append(result, re)
	}
	return result, nil
}

// Group is a compiled Spec.
type Group struct {
	name     string
	spec     Spec
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
}

func (g *Group) Name() string { return g.name }

// Spec returns the merged patterns the group was compiled from.
func (g *Group) Spec() Spec { return g.spec }

// IsIncluded reports whether name fully matches an include pattern and no
// exclude pattern.
func (g *Group) IsIncluded(name string) bool {
	included := false
	for _, re := range g.includes {
		if re.MatchString(name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, re := range g.excludes {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}

// Groups is a set of compiled groups sorted by name.
type Groups []*Group

func (gs Groups) Names() []string {
	var names []string
	for _, g := range gs {
		names = append(names, g.name)
	}
	return names
}

func (gs Groups) Get(name string) (*Group, bool) {
	for _, g := range gs {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// Materialize merges the default group into every other group and compiles
// them. The input is not modified.
func Materialize(specs map[string]Spec) (Groups, error) {
	merged := map[string]Spec{}
	for name, spec := range specs {
		merged[name] = spec
	}

	baseline, hasDefault := merged[DefaultName]
	if hasDefault {
		delete(merged, DefaultName)
	} else {
		baseline = IncludesOnly(baselineIncludes...)
	}

	if len(merged) == 0 {
		merged[AllName] = IncludesOnly(allIncludes...)
	}

	var names []string
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	var result Groups
	for _, name := range names {
		spec := merged[name]
		spec = Spec{
			Includes: union(spec.Includes, baseline.Includes),
			Excludes: union(spec.Excludes, baseline.Excludes),
		}
		group, err := spec.Compile(name)
		if err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, nil
}

func union(own, inherited []string) []string {
	seen := map[string]struct{}{}
	var result []string
	for _, list := range [][]string{own, inherited} {
		for _, item := range list {
			if _, found := seen[item]; found {
				continue
			}
			seen[item] = struct{}{}
			result = append(result, item)
		}
	}
	return result
}
