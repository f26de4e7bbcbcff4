// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
)

// Validate checks that every property referring to a property type can be
// resolved either as "<owner>.<name>" or as the bare "<name>". The first
// failure is returned.
func (c *Catalog) Validate() error {
	table := c.PropertyTypeTable()

	for _, name := range c.SortedResourceTypeNames() {
		err := validateProperties(name, name, c.ResourceTypes[name], c.hasPropertyType)
		if err != nil {
			return err
		}
	}

	for _, entry := range table.Entries() {
		err := validateProperties(entry.Key, entry.Owner, entry.Definition, c.hasPropertyType)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Catalog) hasPropertyType(key string) bool {
	_, found := c.PropertyTypes[key]
	return found
}

// Validate checks the single resource and its property types, resolving
// references by bare name only.
func (s *SingleResourceCatalog) Validate() error {
	if len(s.ResourceType) != 1 {
		return fmt.Errorf("Expected exactly one resource type, but found %d", len(s.ResourceType))
	}

	hasBare := func(ref string) bool {
		_, found := s.PropertyTypes[ref]
		return found
	}

	name := s.ResourceName()
	err := validateProperties(name, "", s.ResourceType[name], hasBare)
	if err != nil {
		return err
	}

	for _, key := range sortedKeys(s.PropertyTypes) {
		err := validateProperties(key, "", s.PropertyTypes[key], hasBare)
		if err != nil {
			return err
		}
	}
	return nil
}

// validateProperties resolves references of one type. An empty
// lookupOwner restricts resolution to bare names.
func validateProperties(typeName, lookupOwner string, def TypeDefinition, has func(string) bool) error {
	for _, propName := range def.SortedPropertyNames() {
		prop := def.Properties[propName]

		_, err := prop.Shape()
		if err != nil {
			return &DescriptorError{Owner: typeName, Property: propName, Err: err}
		}

		ref, isComplex := prop.ComplexTypeName()
		if !isComplex {
			continue
		}

		var candidates []string
		if lookupOwner != "" {
			candidates = append(candidates, lookupOwner+NamespaceSeparator+ref)
		}
		candidates = append(candidates, ref)

		resolved := false
		for _, candidate := range candidates {
			if has(candidate) {
				resolved = true
				break
			}
		}
		if !resolved {
			return &ReferenceError{
				Owner:      typeName,
				Property:   propName,
				Reference:  ref,
				Candidates: candidates,
			}
		}
	}
	return nil
}
