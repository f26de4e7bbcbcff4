// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/cmd/ui"
	"carvel.dev/cfnschema/pkg/codegen"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/loader"
	"github.com/fatih/color"
	"github.com/hashicorp/go-version"
	"github.com/k14s/difflib"
	"github.com/spf13/cobra"
)

type DiffOptions struct {
	From      string
	To        string
	Single    bool
	NamesOnly bool

	UI ui.UI
}

func NewDiffOptions() *DiffOptions {
	return &DiffOptions{}
}

func NewDiffCmd(o *DiffOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show resource types that changed between two specifications",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.From, "from", "", "Older specification (ie local path, HTTP URL, -)")
	cmd.Flags().StringVar(&o.To, "to", "", "Newer specification (ie local path, HTTP URL, -)")
	cmd.Flags().BoolVar(&o.Single, "single", false, "Specifications describe a single resource type")
	cmd.Flags().BoolVar(&o.NamesOnly, "names-only", false, "Only print names of changed resource types")
	return cmd
}

func (o *DiffOptions) Run() error {
	tty := o.UI
	if tty == nil {
		tty = ui.NewTTY(false)
	}

	from, err := o.load("--from", o.From)
	if err != nil {
		return err
	}
	to, err := o.load("--to", o.To)
	if err != nil {
		return err
	}

	if isOlder(to.Version, from.Version) {
		tty.Warnf("Warning: Specification version %s of --to is older than version %s of --from\n", to.Version, from.Version)
	}

	diffs := from.Diff(to)
	if len(diffs) == 0 {
		tty.Printf("No resource types changed between %s and %s\n", from.Version, to.Version)
		return nil
	}

	for _, diff := range diffs {
		if o.NamesOnly {
			tty.Printf("%s\n", diff.Name)
			continue
		}

		var buf bytes.Buffer
		err := WriteDifference(&buf, diff)
		if err != nil {
			return err
		}
		tty.Printf("%s", buf.String())
	}

	return nil
}

func (o *DiffOptions) load(flag, location string) (*catalog.Catalog, error) {
	if location == "" {
		return nil, fmt.Errorf("Expected %s to be specified", flag)
	}
	src, err := files.NewSourceFromLocation(location)
	if err != nil {
		return nil, err
	}
	return loader.LoadAny(src, o.Single)
}

// isOlder is false when either version can not be parsed.
func isOlder(ver, than string) bool {
	parsedVer, err := version.NewVersion(ver)
	if err != nil {
		return false
	}
	parsedThan, err := version.NewVersion(than)
	if err != nil {
		return false
	}
	return parsedVer.LessThan(parsedThan)
}

// WriteDifference writes a line diff of the JSON form of both definitions.
func WriteDifference(w io.Writer, diff catalog.Difference) error {
	fromBytes, err := codegen.Marshal(diff.FromType)
	if err != nil {
		return err
	}
	toBytes, err := codegen.Marshal(diff.ToType)
	if err != nil {
		return err
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Fprintf(w, "--- %s (%s)\n", diff.Name, diff.FromVersion)
	cyan.Fprintf(w, "+++ %s (%s)\n", diff.Name, diff.ToVersion)

	fromLines := strings.Split(strings.TrimSuffix(string(fromBytes), "\n"), "\n")
	toLines := strings.Split(strings.TrimSuffix(string(toBytes), "\n"), "\n")

	for _, record := range difflib.Diff(fromLines, toLines) {
		switch record.Delta {
		case difflib.LeftOnly:
			red.Fprintf(w, "- %s\n", record.Payload)
		case difflib.RightOnly:
			green.Fprintf(w, "+ %s\n", record.Payload)
		default:
			fmt.Fprintf(w, "  %s\n", record.Payload)
		}
	}
	return nil
}
