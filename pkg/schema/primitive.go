// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"carvel.dev/cfnschema/pkg/orderedmap"
)

const (
	expressionID = "Expression"
	objectType   = "object"
	stringType   = "string"
)

var primitiveTypes = map[string]string{
	"String":    "string",
	"Number":    "integer",
	"Integer":   "integer",
	"Long":      "integer",
	"Float":     "number",
	"Double":    "number",
	"Boolean":   "boolean",
	"Timestamp": "string",
	"Json":      "object",
}

// PrimitiveType maps a catalog primitive to a JSON Schema type.
func PrimitiveType(kind string) (string, error) {
	jsonType, found := primitiveTypes[kind]
	if !found {
		return "", fmt.Errorf("Unknown primitive type '%s'", kind)
	}
	return jsonType, nil
}

// addPrimitive writes the schema of a primitive into node. Only draft-07
// widens types or refers to intrinsic expressions.
func (e *Emitter) addPrimitive(node *orderedmap.Map, kind string) error {
	jsonType, err := PrimitiveType(kind)
	if err != nil {
		return err
	}

	if e.opts.Draft != Draft07 {
		node.Set("type", jsonType)
		return nil
	}

	if e.opts.IncludeIntrinsics {
		if jsonType == stringType {
			node.Set("$ref", Ref(expressionID))
			return nil
		}
		node.Set("anyOf", []interface{}{
			orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: "type", Value: jsonType}}),
			orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: "$ref", Value: Ref(expressionID)}}),
		})
		return nil
	}

	types := []interface{}{jsonType}
	if jsonType != objectType {
		types = append(types, objectType)
	}
	node.Set("type", types)
	return nil
}
