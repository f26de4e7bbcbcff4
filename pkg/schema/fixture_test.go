// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"encoding/json"
	"testing"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/orderedmap"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func primitive(kind string) catalog.PropertyDescriptor {
	return catalog.PropertyDescriptor{TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: kind}}
}

func fixtureCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Version: "10.2.0",
		ResourceTypes: map[string]catalog.TypeDefinition{
			"AWS::S3::Bucket": {
				Documentation: "bucket",
				Attributes: map[string]catalog.TypeDescriptor{
					"Arn": {PrimitiveType: "String"},
				},
				Properties: map[string]catalog.PropertyDescriptor{
					"BucketName": {
						TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"},
						Documentation:  "bucket name",
						Required:       boolPtr(false),
					},
					"Tags": {
						TypeDescriptor:    catalog.TypeDescriptor{Type: "List", ItemType: "Tag"},
						DuplicatesAllowed: boolPtr(true),
					},
					"LifecycleConfiguration": {
						TypeDescriptor: catalog.TypeDescriptor{Type: "LifecycleConfiguration"},
						Documentation:  "not emitted for references",
					},
				},
			},
			"AWS::EC2::VPC": {
				Documentation: "vpc",
				Properties: map[string]catalog.PropertyDescriptor{
					"CidrBlock": {
						TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"},
						Required:       boolPtr(true),
					},
					"EnableDnsHostnames": primitive("Boolean"),
				},
			},
		},
		PropertyTypes: map[string]catalog.TypeDefinition{
			"AWS::S3::Bucket.LifecycleConfiguration": {
				Properties: map[string]catalog.PropertyDescriptor{
					"Rules": {
						TypeDescriptor:    catalog.TypeDescriptor{Type: "List", ItemType: "Rule"},
						DuplicatesAllowed: boolPtr(false),
						Required:          boolPtr(true),
					},
				},
			},
			"AWS::S3::Bucket.Rule": {
				Properties: map[string]catalog.PropertyDescriptor{
					"ExpirationInDays": primitive("Integer"),
					"Filter":           primitive("Json"),
					"Labels": {
						TypeDescriptor: catalog.TypeDescriptor{Type: "Map", PrimitiveItemType: "String"},
					},
					"Status": {
						TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"},
						Required:       boolPtr(true),
					},
					"Transitions": {
						TypeDescriptor: catalog.TypeDescriptor{Type: "Map", ItemType: "Transition"},
					},
				},
			},
			"AWS::S3::Bucket.Transition": {
				Properties: map[string]catalog.PropertyDescriptor{
					"StorageClass": primitive("String"),
				},
			},
			"Tag": {
				Properties: map[string]catalog.PropertyDescriptor{
					"Key":   {TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"}, Required: boolPtr(true)},
					"Value": {TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"}, Required: boolPtr(true)},
				},
			},
		},
	}
}

func emit(t *testing.T, cat *catalog.Catalog, opts schema.Options) []schema.Definition {
	require.NoError(t, cat.Validate())
	defs, err := schema.NewEmitter(opts).Emit(cat)
	require.NoError(t, err)
	return defs
}

func findDefinition(t *testing.T, defs []schema.Definition, id string) schema.Definition {
	for _, def := range defs {
		if def.ID == id {
			return def
		}
	}
	require.FailNow(t, "definition not found", id)
	return schema.Definition{}
}

// nodeJSON marshals the node found by following keys from root.
func nodeJSON(t *testing.T, root *orderedmap.Map, keys ...string) string {
	node := root
	for _, key := range keys {
		child, found := node.GetMap(key)
		require.True(t, found, "key %s in %v", key, keys)
		node = child
	}
	out, err := json.Marshal(node)
	require.NoError(t, err)
	return string(out)
}
