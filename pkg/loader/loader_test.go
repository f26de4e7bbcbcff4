// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package loader_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/loader"
	"github.com/stretchr/testify/require"
)

const specJSON = `{
  "ResourceSpecificationVersion": "10.2.0",
  "PropertyTypes": {
    "AWS::S3::Bucket.LifecycleConfiguration": {
      "Properties": {
        "Rules": {"Type": "List", "ItemType": "Rule", "Required": true, "UpdateType": "Mutable"}
      }
    },
    "AWS::S3::Bucket.Rule": {
      "Properties": {
        "Status": {"PrimitiveType": "String", "Required": true}
      }
    },
    "Tag": {
      "Properties": {
        "Key": {"PrimitiveType": "String", "Required": true},
        "Value": {"PrimitiveType": "String", "Required": true}
      }
    }
  },
  "ResourceTypes": {
    "AWS::S3::Bucket": {
      "Documentation": "http://docs.aws.amazon.com/bucket.html",
      "Attributes": {"Arn": {"PrimitiveType": "String"}},
      "Properties": {
        "LifecycleConfiguration": {"Type": "LifecycleConfiguration"},
        "Tags": {"Type": "List", "ItemType": "Tag", "DuplicatesAllowed": true}
      },
      "AdditionalKey": "ignored"
    }
  }
}`

const singleSpecJSON = `{
  "ResourceSpecificationVersion": "10.2.0",
  "PropertyTypes": {
    "Rule": {"Properties": {"Status": {"PrimitiveType": "String"}}}
  },
  "ResourceType": {
    "AWS::S3::Bucket": {
      "Properties": {"Rules": {"Type": "List", "ItemType": "Rule"}}
    }
  }
}`

func gzipped(t *testing.T, data string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, entries ...string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, data := range entries {
		entry, err := w.Create([]string{"spec.json", "other.json"}[i])
		require.NoError(t, err)
		_, err = entry.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	cases := map[string][]byte{
		"plain": []byte(specJSON),
		"gzip":  gzipped(t, specJSON),
		"zip":   zipped(t, specJSON, `not json`),
	}

	for desc, data := range cases {
		t.Run(desc, func(t *testing.T) {
			cat, err := loader.Load(files.NewBytesSource("spec.json", data))
			require.NoError(t, err)

			require.Equal(t, "10.2.0", cat.Version)
			require.Equal(t, []string{"AWS::S3::Bucket"}, cat.SortedResourceTypeNames())
			require.Len(t, cat.PropertyTypes, 3)

			bucket := cat.ResourceTypes["AWS::S3::Bucket"]
			require.Equal(t, "http://docs.aws.amazon.com/bucket.html", bucket.Documentation)
			require.Equal(t, "String", bucket.Attributes["Arn"].PrimitiveType)
			require.False(t, bucket.Properties["Tags"].IsUnique())

			rules := cat.PropertyTypes["AWS::S3::Bucket.LifecycleConfiguration"].Properties["Rules"]
			require.True(t, rules.IsRequired())
			require.Equal(t, "Mutable", rules.UpdateType)
		})
	}
}

func TestLoad_errors(t *testing.T) {
	t.Run("short stream", func(t *testing.T) {
		_, err := loader.Load(files.NewBytesSource("spec.json", []byte("{}")))
		require.EqualError(t, err, "Reading specification from spec.json: Can not read stream")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := loader.Load(files.NewBytesSource("spec.json", []byte("{not json}")))
		require.ErrorContains(t, err, "Unmarshaling specification from spec.json: ")
	})

	t.Run("truncated gzip", func(t *testing.T) {
		data := gzipped(t, specJSON)
		_, err := loader.Load(files.NewBytesSource("spec.json", data[:len(data)/2]))
		require.ErrorContains(t, err, "Reading specification from spec.json: Reading gzip stream: ")
	})

	t.Run("dangling reference", func(t *testing.T) {
		data := []byte(`{"ResourceTypes": {"AWS::S3::Bucket": {"Properties": {"Rules": {"Type": "List", "ItemType": "Rule"}}}}}`)
		_, err := loader.Load(files.NewBytesSource("spec.json", data))

		var refErr *catalog.ReferenceError
		require.True(t, errors.As(err, &refErr))
		require.Equal(t, "Rule", refErr.Reference)
	})
}

func TestLoadSingle(t *testing.T) {
	for desc, data := range map[string][]byte{"plain": []byte(singleSpecJSON), "gzip": gzipped(t, singleSpecJSON)} {
		t.Run(desc, func(t *testing.T) {
			single, err := loader.LoadSingle(files.NewBytesSource("spec.json", data))
			require.NoError(t, err)
			require.Equal(t, "AWS::S3::Bucket", single.ResourceName())

			cat, err := loader.LoadAny(files.NewBytesSource("spec.json", data), true)
			require.NoError(t, err)
			require.Equal(t, []string{"AWS::S3::Bucket.Rule"}, cat.SortedPropertyTypeNames())
		})
	}

	t.Run("multiple resources", func(t *testing.T) {
		data := []byte(`{"ResourceType": {"AWS::S3::Bucket": {}, "AWS::SNS::Topic": {}}}`)
		_, err := loader.LoadSingle(files.NewBytesSource("spec.json", data))
		require.EqualError(t, err, "Validating specification from spec.json: Expected exactly one resource type, but found 2")
	})
}
