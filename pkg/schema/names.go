// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strings"

	"carvel.dev/cfnschema/pkg/catalog"
)

const (
	providerSeparator = "::"
	idSeparator       = "_"

	definitionsPointer = "#/definitions/"
)

// Resolver turns catalog names into definition identifiers.
type Resolver struct {
	propertyTypes *catalog.PropertyTypeTable
}

func NewResolver(propertyTypes *catalog.PropertyTypeTable) *Resolver {
	return &Resolver{propertyTypes}
}

// DefinitionID returns the identifier a resource type or property type is
// registered under.
func (r *Resolver) DefinitionID(qualifiedName string) string {
	if entry, found := r.propertyTypes.Lookup(qualifiedName); found {
		return r.propertyTypeID(entry)
	}
	return sanitize(qualifiedName)
}

func (r *Resolver) propertyTypeID(entry catalog.PropertyTypeEntry) string {
	if entry.Visibility == catalog.Scoped {
		return sanitize(entry.Owner) + idSeparator + entry.Inner
	}
	return sanitize(entry.Key)
}

// OwnerID is the identifier that unqualified references made from within
// the given type are resolved against.
func (r *Resolver) OwnerID(qualifiedName string) string {
	if entry, found := r.propertyTypes.Lookup(qualifiedName); found && entry.Visibility == catalog.Scoped {
		return sanitize(entry.Owner)
	}
	return sanitize(qualifiedName)
}

// ReferenceTarget keeps names of shared property types as is and scopes
// every other name under the owner.
func (r *Resolver) ReferenceTarget(ownerID, innerName string) string {
	if r.propertyTypes.Has(innerName) {
		return innerName
	}
	return ownerID + idSeparator + innerName
}

// Ref returns the JSON reference to a definition identifier.
func Ref(id string) string { return definitionsPointer + id }

func sanitize(name string) string {
	return strings.ReplaceAll(name, providerSeparator, idSeparator)
}
