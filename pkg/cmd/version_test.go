// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"testing"

	"carvel.dev/cfnschema/pkg/cmd"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	testUI := &testUI{}
	opts := cmd.NewVersionOptions()
	opts.UI = testUI.TTY()

	require.NoError(t, execute(cmd.NewVersionCmd(opts)))
	require.Equal(t, "cfnschema version develop\n", testUI.stdout.String())
}

func TestCfnSchemaCmd(t *testing.T) {
	root := cmd.NewDefaultCfnSchemaCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	require.Subset(t, names, []string{"diff", "generate", "serve", "validate", "version"})

	for _, flag := range []string{"config-file", "region", "spec-url", "draft", "output-dir", "check"} {
		require.NotNil(t, root.Flags().Lookup(flag), flag)
	}
}
