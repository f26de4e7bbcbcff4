// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codegen_test

import (
	"fmt"
	"testing"

	"carvel.dev/cfnschema/pkg/codegen"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/stretchr/testify/require"
)

func renderAll(t *testing.T, opts codegen.Opts) files.OutputFile {
	gen := codegen.NewGenerator(opts)
	result, err := gen.Compile(loadCatalog(t))
	require.NoError(t, err)

	outputs, err := gen.Render("us-east-2", result)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	return outputs[0]
}

func TestCheck(t *testing.T) {
	for _, draft := range []schema.Draft{schema.Draft04, schema.Draft07} {
		for _, intrinsics := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s intrinsics=%t", draft, intrinsics), func(t *testing.T) {
				output := renderAll(t, codegen.Opts{Draft: draft, IncludeIntrinsics: intrinsics, IDBaseURL: "https://example.com/"})
				_, err := codegen.Check(output)
				require.NoError(t, err)
			})
		}
	}

	t.Run("rejects invalid documents", func(t *testing.T) {
		output := files.NewOutputFile("us-east-2/bad-spec.json",
			[]byte(`{"$schema": "http://json-schema.org/draft-07/schema#", "type": 7}`))
		_, err := codegen.Check(output)
		require.ErrorContains(t, err, "Checking 'us-east-2/bad-spec.json': ")
	})
}

func TestValidateTemplate(t *testing.T) {
	output := renderAll(t, codegen.Opts{Draft: schema.Draft07, IncludeIntrinsics: true})

	t.Run("valid", func(t *testing.T) {
		err := codegen.ValidateTemplate(output, []byte(`{
  "AWSTemplateFormatVersion": "2010-09-09",
  "Resources": {
    "Network": {
      "Type": "AWS::EC2::VPC",
      "Properties": {"CidrBlock": {"Ref": "Cidr"}, "EnableDnsSupport": true}
    },
    "Logs": {
      "Type": "AWS::S3::Bucket",
      "DependsOn": "Network",
      "Properties": {
        "BucketName": {"Fn::Sub": "logs-${AWS::Region}"},
        "LifecycleConfiguration": {"Rules": [{"Status": "Enabled", "ExpirationInDays": 30}]},
        "Tags": [{"Key": "team", "Value": "infra"}]
      }
    },
    "Hook": {"Type": "Custom::Hook", "Properties": {"Anything": [1, 2]}}
  }
}`))
		require.NoError(t, err)
	})

	invalid := map[string]string{
		"missing resources":         `{"AWSTemplateFormatVersion": "2010-09-09"}`,
		"missing required property": `{"Resources": {"Network": {"Type": "AWS::EC2::VPC", "Properties": {}}}}`,
		"unknown property":          `{"Resources": {"Network": {"Type": "AWS::EC2::VPC", "Properties": {"CidrBlock": "x", "Cidr": "y"}}}}`,
		"unknown resource type":     `{"Resources": {"Queue": {"Type": "AWS::SQS::Queue", "Properties": {}}}}`,
		"duplicate unique items": `{"Resources": {"Logs": {"Type": "AWS::S3::Bucket", "Properties": {
			"LifecycleConfiguration": {"Rules": [{"Status": "Enabled"}, {"Status": "Enabled"}]}}}}}`,
	}
	for desc, template := range invalid {
		t.Run(desc, func(t *testing.T) {
			err := codegen.ValidateTemplate(output, []byte(template))
			require.ErrorContains(t, err, "Validating template against 'us-east-2/all-spec.json': ")
		})
	}
}
