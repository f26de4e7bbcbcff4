// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"strings"
)

const (
	// NamespaceSeparator separates an owning resource from an inner property
	// type name in property type keys (e.g. AWS::S3::Bucket.LifecycleConfiguration).
	NamespaceSeparator = "."
	providerSeparator  = "::"
)

// TypeDefinition describes both resource types and property types.
// Attributes are only present on resource types.
type TypeDefinition struct {
	Documentation string                        `json:"Documentation,omitempty"`
	Attributes    map[string]TypeDescriptor     `json:"Attributes,omitempty"`
	Properties    map[string]PropertyDescriptor `json:"Properties,omitempty"`
}

// SortedPropertyNames returns property names in lexicographic order.
func (t TypeDefinition) SortedPropertyNames() []string {
	return sortedKeys(t.Properties)
}

func (t TypeDefinition) Equal(other TypeDefinition) bool {
	if t.Documentation != other.Documentation {
		return false
	}
	if len(t.Attributes) != len(other.Attributes) || len(t.Properties) != len(other.Properties) {
		return false
	}
	for name, attr := range t.Attributes {
		otherAttr, found := other.Attributes[name]
		if !found || attr != otherAttr {
			return false
		}
	}
	for name, prop := range t.Properties {
		otherProp, found := other.Properties[name]
		if !found || !prop.Equal(otherProp) {
			return false
		}
	}
	return true
}

type Catalog struct {
	Version       string                    `json:"ResourceSpecificationVersion"`
	PropertyTypes map[string]TypeDefinition `json:"PropertyTypes"`
	ResourceTypes map[string]TypeDefinition `json:"ResourceTypes"`
}

func (c *Catalog) SortedResourceTypeNames() []string { return sortedKeys(c.ResourceTypes) }
func (c *Catalog) SortedPropertyTypeNames() []string { return sortedKeys(c.PropertyTypes) }

// PropertyTypeTable returns the property type table with visibility resolved
// against this catalog's resource types.
func (c *Catalog) PropertyTypeTable() *PropertyTypeTable {
	return NewPropertyTypeTable(c.PropertyTypes, c.ResourceTypes)
}

// SingleResourceCatalog is the specification format that carries exactly
// one resource type. Property type references are by bare name.
type SingleResourceCatalog struct {
	Version       string                    `json:"ResourceSpecificationVersion"`
	PropertyTypes map[string]TypeDefinition `json:"PropertyTypes"`
	ResourceType  map[string]TypeDefinition `json:"ResourceType"`
}

// ResourceName returns the name of the only resource type.
func (s *SingleResourceCatalog) ResourceName() string {
	for name := range s.ResourceType {
		return name
	}
	return ""
}

// AsCatalog converts to a Catalog, scoping bare property type names under
// the single resource so that they travel with it.
func (s *SingleResourceCatalog) AsCatalog() *Catalog {
	owner := s.ResourceName()
	result := &Catalog{
		Version:       s.Version,
		PropertyTypes: map[string]TypeDefinition{},
		ResourceTypes: map[string]TypeDefinition{},
	}
	for name, def := range s.ResourceType {
		result.ResourceTypes[name] = def
	}
	for name, def := range s.PropertyTypes {
		if !strings.HasPrefix(name, owner+NamespaceSeparator) {
			name = owner + NamespaceSeparator + name
		}
		result.PropertyTypes[name] = def
	}
	return result
}

type Visibility int

const (
	// Global property types are shared by all resources (e.g. Tag).
	Global Visibility = iota
	// Scoped property types belong to a single owning resource.
	Scoped
)

func (v Visibility) String() string {
	if v == Scoped {
		return "scoped"
	}
	return "global"
}

type PropertyTypeEntry struct {
	Key        string
	Visibility Visibility
	// Owner and Inner are only set for Scoped entries.
	Owner      string
	Inner      string
	Definition TypeDefinition
}

// GroupingName is the name used to decide group membership: scoped
// property types travel with their owning resource.
func (e PropertyTypeEntry) GroupingName() string {
	if e.Visibility == Scoped {
		return e.Owner
	}
	return e.Key
}

// PropertyTypeTable indexes property types by their catalog key.
type PropertyTypeTable struct {
	entries map[string]PropertyTypeEntry
	keys    []string
}

// NewPropertyTypeTable classifies each key: a key is Scoped when the part
// before the first separator is a provider namespaced name (contains "::")
// or names a known resource type, Global otherwise. Namespaced owners are
// scoped even when the owning resource is absent from the catalog.
func NewPropertyTypeTable(propertyTypes, resourceTypes map[string]TypeDefinition) *PropertyTypeTable {
	table := &PropertyTypeTable{
		entries: map[string]PropertyTypeEntry{},
		keys:    sortedKeys(propertyTypes),
	}
	for key, def := range propertyTypes {
		entry := PropertyTypeEntry{Key: key, Visibility: Global, Definition: def}
		if owner, inner, found := strings.Cut(key, NamespaceSeparator); found {
			_, isResource := resourceTypes[owner]
			if isResource || strings.Contains(owner, providerSeparator) {
				entry.Visibility = Scoped
				entry.Owner = owner
				entry.Inner = inner
			}
		}
		table.entries[key] = entry
	}
	return table
}

func (t *PropertyTypeTable) Has(key string) bool {
	_, found := t.entries[key]
	return found
}

func (t *PropertyTypeTable) Lookup(key string) (PropertyTypeEntry, bool) {
	entry, found := t.entries[key]
	return entry, found
}

// Entries returns all entries sorted by key.
func (t *PropertyTypeTable) Entries() []PropertyTypeEntry {
	result := make([]PropertyTypeEntry, 0, len(t.keys))
	for _, key := range t.keys {
		result = append(result, t.entries[key])
	}
	return result
}

func (t *PropertyTypeTable) Len() int { return len(t.keys) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
