// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
)

const (
	ListKind = "List"
	MapKind  = "Map"
	JSONKind = "Json"
)

// TypeDescriptor is the typing information shared by properties and
// resource attributes.
type TypeDescriptor struct {
	Type              string `json:"Type,omitempty"`
	ItemType          string `json:"ItemType,omitempty"`
	PrimitiveType     string `json:"PrimitiveType,omitempty"`
	PrimitiveItemType string `json:"PrimitiveItemType,omitempty"`
}

// IsPrimitive reports whether the descriptor is a scalar. Json appears in
// Type but is treated as a primitive.
func (d TypeDescriptor) IsPrimitive() bool {
	return d.PrimitiveType != "" || d.Type == JSONKind
}

func (d TypeDescriptor) IsCollection() bool {
	return !d.IsPrimitive() && d.Type == ListKind
}

func (d TypeDescriptor) IsMap() bool {
	return !d.IsPrimitive() && d.Type == MapKind
}

func (d TypeDescriptor) IsContainer() bool {
	return d.Type == ListKind || d.Type == MapKind
}

func (d TypeDescriptor) IsObjectReference() bool {
	return !d.IsContainer() && !d.IsPrimitive() && d.Type != ""
}

func (d TypeDescriptor) HasPrimitiveContainerItems() bool {
	return d.IsContainer() && d.PrimitiveItemType != ""
}

// ComplexTypeName returns the name of the property type this descriptor
// refers to, if any.
func (d TypeDescriptor) ComplexTypeName() (string, bool) {
	switch d.Type {
	case ListKind, MapKind:
		return d.ItemType, d.ItemType != ""
	case JSONKind:
		return "", false
	default:
		return d.Type, d.Type != ""
	}
}

// Shape classifies the descriptor into exactly one variant.
func (d TypeDescriptor) Shape() (Shape, error) {
	switch {
	case d.IsPrimitive():
		kind := d.PrimitiveType
		if kind == "" {
			kind = JSONKind
		}
		return Primitive{Kind: kind}, nil

	case d.IsContainer():
		item, err := d.itemShape()
		if err != nil {
			return nil, err
		}
		if d.Type == ListKind {
			return List{Item: item}, nil
		}
		return Map{Item: item}, nil

	case d.IsObjectReference():
		return ObjectRef{Name: d.Type}, nil

	default:
		return nil, fmt.Errorf("Expected descriptor to have either a type or a primitive type")
	}
}

func (d TypeDescriptor) itemShape() (ItemShape, error) {
	if d.PrimitiveItemType != "" {
		return Primitive{Kind: d.PrimitiveItemType}, nil
	}
	if d.ItemType != "" {
		return ObjectRef{Name: d.ItemType}, nil
	}
	return nil, fmt.Errorf("Expected %s to have an item type or a primitive item type", d.Type)
}

// PropertyDescriptor describes a single property of a resource or property type.
type PropertyDescriptor struct {
	TypeDescriptor

	Documentation     string `json:"Documentation,omitempty"`
	DuplicatesAllowed *bool  `json:"DuplicatesAllowed,omitempty"`
	Required          *bool  `json:"Required,omitempty"`
	UpdateType        string `json:"UpdateType,omitempty"`
}

// IsRequired is true only when Required is explicitly set to true.
func (p PropertyDescriptor) IsRequired() bool {
	return p.Required != nil && *p.Required
}

// IsUnique is true only when DuplicatesAllowed is explicitly set to false.
func (p PropertyDescriptor) IsUnique() bool {
	return p.DuplicatesAllowed != nil && !*p.DuplicatesAllowed
}

func (p PropertyDescriptor) Equal(other PropertyDescriptor) bool {
	return p.TypeDescriptor == other.TypeDescriptor &&
		p.Documentation == other.Documentation &&
		p.UpdateType == other.UpdateType &&
		boolPtrEqual(p.DuplicatesAllowed, other.DuplicatesAllowed) &&
		boolPtrEqual(p.Required, other.Required)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
