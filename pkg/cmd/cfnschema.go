// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/cfnschema/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type CfnSchemaOptions struct{}

func NewDefaultCfnSchemaOptions() *CfnSchemaOptions {
	return &CfnSchemaOptions{}
}

func NewDefaultCfnSchemaCmd() *cobra.Command {
	return NewCfnSchemaCmd(NewDefaultCfnSchemaOptions())
}

func NewCfnSchemaCmd(o *CfnSchemaOptions) *cobra.Command {
	cmd := NewGenerateCmd(NewGenerateOptions())

	cmd.Use = "cfnschema"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "cfnschema generates JSON schemas for CloudFormation templates"
	cmd.Long = `cfnschema generates JSON schemas for CloudFormation templates from
CloudFormation resource specifications.

One schema document is generated per region and group:
<output-dir>/<region>/<group>-spec.json`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewGenerateCmd(NewGenerateOptions()))
	cmd.AddCommand(NewValidateCmd(NewValidateOptions()))
	cmd.AddCommand(NewDiffCmd(NewDiffOptions()))
	cmd.AddCommand(NewServeCmd(NewServeOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
