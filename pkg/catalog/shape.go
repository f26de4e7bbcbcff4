// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

var _ []ItemShape = []ItemShape{Primitive{}, ObjectRef{}}
var _ []Shape = []Shape{List{}, Map{}}

// Shape is one of Primitive, ObjectRef, List or Map.
type Shape interface {
	isShape()
}

// ItemShape is the subset of shapes allowed inside a List or a Map.
type ItemShape interface {
	Shape
	isItemShape()
}

type Primitive struct {
	Kind string
}

type ObjectRef struct {
	Name string
}

type List struct {
	Item ItemShape
}

type Map struct {
	Item ItemShape
}

func (Primitive) isShape()     {}
func (Primitive) isItemShape() {}
func (ObjectRef) isShape()     {}
func (ObjectRef) isItemShape() {}
func (List) isShape()          {}
func (Map) isShape()           {}
