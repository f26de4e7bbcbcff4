// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/cfnschema/pkg/cmd/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const specJSON = `{
  "ResourceSpecificationVersion": "10.2.0",
  "PropertyTypes": {
    "AWS::S3::Bucket.VersioningConfiguration": {
      "Properties": {"Status": {"PrimitiveType": "String", "Required": true}}
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
      "Documentation": "bucket",
      "Properties": {
        "BucketName": {"PrimitiveType": "String"},
        "Tags": {"Type": "List", "ItemType": "Tag", "DuplicatesAllowed": true},
        "VersioningConfiguration": {"Type": "VersioningConfiguration"}
      }
    },
    "AWS::EC2::VPC": {
      "Properties": {"CidrBlock": {"PrimitiveType": "String", "Required": true}}
    }
  }
}`

func init() {
	color.NoColor = true
}

type testUI struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func (u *testUI) TTY() ui.TTY { return ui.NewCustomWriterTTY(false, &u.stdout, &u.stderr) }

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}
