// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog_test

import (
	"testing"

	"carvel.dev/cfnschema/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	newCatalog := func(version, bucketDoc string) *catalog.Catalog {
		yes := true
		return &catalog.Catalog{
			Version: version,
			ResourceTypes: map[string]catalog.TypeDefinition{
				"AWS::S3::Bucket": {
					Documentation: bucketDoc,
					Attributes: map[string]catalog.TypeDescriptor{
						"Arn": {PrimitiveType: "String"},
					},
					Properties: map[string]catalog.PropertyDescriptor{
						"BucketName": {
							TypeDescriptor: catalog.TypeDescriptor{PrimitiveType: "String"},
							Required:       &yes,
						},
					},
				},
				"AWS::SNS::Topic": {Documentation: "topic"},
			},
		}
	}

	t.Run("reports only changed shared types", func(t *testing.T) {
		from := newCatalog("1.0.0", "old docs")
		to := newCatalog("2.0.0", "new docs")

		diffs := from.Diff(to)
		require.Len(t, diffs, 1)
		require.Equal(t, "AWS::S3::Bucket", diffs[0].Name)
		require.Equal(t, "1.0.0", diffs[0].FromVersion)
		require.Equal(t, "2.0.0", diffs[0].ToVersion)
		require.Equal(t, from.ResourceTypes["AWS::S3::Bucket"], diffs[0].FromType)
		require.Equal(t, to.ResourceTypes["AWS::S3::Bucket"], diffs[0].ToType)
	})

	t.Run("identical catalogs have no differences", func(t *testing.T) {
		require.Empty(t, newCatalog("1.0.0", "docs").Diff(newCatalog("2.0.0", "docs")))
	})

	t.Run("ignores added and removed types", func(t *testing.T) {
		from := newCatalog("1.0.0", "docs")
		to := newCatalog("2.0.0", "docs")
		delete(to.ResourceTypes, "AWS::SNS::Topic")
		to.ResourceTypes["AWS::SQS::Queue"] = catalog.TypeDefinition{}

		require.Empty(t, from.Diff(to))
	})

	t.Run("compares nested descriptor fields by value", func(t *testing.T) {
		from := newCatalog("1.0.0", "docs")
		to := newCatalog("2.0.0", "docs")
		no := false
		prop := to.ResourceTypes["AWS::S3::Bucket"].Properties["BucketName"]
		prop.Required = &no
		to.ResourceTypes["AWS::S3::Bucket"].Properties["BucketName"] = prop

		require.Len(t, from.Diff(to), 1)
	})

	t.Run("treats missing and empty maps as equal", func(t *testing.T) {
		from := &catalog.Catalog{ResourceTypes: map[string]catalog.TypeDefinition{
			"AWS::SNS::Topic": {Properties: map[string]catalog.PropertyDescriptor{}},
		}}
		to := &catalog.Catalog{ResourceTypes: map[string]catalog.TypeDefinition{
			"AWS::SNS::Topic": {},
		}}
		require.Empty(t, from.Diff(to))
	})
}
