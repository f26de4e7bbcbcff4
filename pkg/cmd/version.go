// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/cfnschema/pkg/cmd/ui"
	"carvel.dev/cfnschema/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	UI ui.UI
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *VersionOptions) Run() error {
	tty := o.UI
	if tty == nil {
		tty = ui.NewTTY(false)
	}
	tty.Printf("cfnschema version %s\n", version.Version)

	return nil
}
