// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"carvel.dev/cfnschema/pkg/orderedmap"
)

const (
	CustomResourceID = "altCustomResource"
	ResourcesID      = "resources"

	customResourceTypePattern   = "Custom::[A-Za-z0-9]+"
	customResourceTypeMaxLength = 60

	resourceNamePattern = "^[a-zA-Z0-9]{1,255}$"
	minResources        = 1
	maxResources        = 200
)

// addDependsOn accepts either a single logical name or a list of them.
func addDependsOn(props *orderedmap.Map) {
	dependsOn := props.PutMap("DependsOn")
	dependsOn.Set("type", []interface{}{stringType, "array"})
	dependsOn.PutMap("items").Set("type", stringType)
}

// CustomResourceNode is offered alongside every concrete resource: its Type
// is any Custom:: name and its Properties are unconstrained.
func CustomResourceNode() *orderedmap.Map {
	node := orderedmap.NewMap()
	node.Set("type", objectType)

	props := node.PutMap("properties")

	typeProp := props.PutMap("Type")
	typeProp.Set("type", stringType)
	typeProp.Set("pattern", customResourceTypePattern)
	typeProp.Set("maxLength", customResourceTypeMaxLength)

	props.PutMap("Properties").Set("type", objectType)
	addDependsOn(props)

	node.Set("required", []interface{}{"Type", "Properties"})
	node.Set("additionalProperties", false)
	return node
}

// ResourcesNode describes the template's resources section: logical names
// mapping to one of the given resource definitions or a custom resource.
func ResourcesNode(resourceIDs []string) *orderedmap.Map {
	oneOf := []interface{}{refNode(CustomResourceID)}
	for _, id := range resourceIDs {
		oneOf = append(oneOf, refNode(id))
	}

	node := orderedmap.NewMap()
	node.Set("type", objectType)
	node.Set("additionalProperties", false)
	node.Set("maxProperties", maxResources)
	node.Set("minProperties", minResources)
	node.PutMap("patternProperties").PutMap(resourceNamePattern).Set("oneOf", oneOf)
	return node
}

func refNode(id string) *orderedmap.Map {
	return orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: "$ref", Value: Ref(id)}})
}
