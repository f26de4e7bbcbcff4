// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"carvel.dev/cfnschema/pkg/cmd/ui"
	"carvel.dev/cfnschema/pkg/codegen"
	"carvel.dev/cfnschema/pkg/config"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/loader"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type GenerateOptions struct {
	ConfigFlags ConfigFlags
	Check       bool
	Debug       bool
	Parallelism int

	// UI defaults to a TTY
	UI ui.UI
}

func NewGenerateOptions() *GenerateOptions {
	return &GenerateOptions{}
}

func NewGenerateCmd(o *GenerateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate JSON schemas for each selected region and group",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().BoolVar(&o.Check, "check", false, "Compile each generated document as a JSON schema before writing it")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().IntVar(&o.Parallelism, "parallelism", 4, "Number of regions to generate concurrently")
	o.ConfigFlags.Set(cmd)
	return cmd
}

func (o *GenerateOptions) Run() error {
	tty := o.UI
	if tty == nil {
		tty = ui.NewTTY(o.Debug)
	}
	t1 := time.Now()

	defer func() {
		tty.Debugf("total: %s\n", time.Since(t1))
	}()

	cfg, err := o.ConfigFlags.Config()
	if err != nil {
		return err
	}

	if cfgBytes, err := cfg.AsYAML(); err == nil {
		tty.Debugf("### configuration\n%s", cfgBytes)
	}

	m, err := cfg.Materialize()
	if err != nil {
		return err
	}

	outputs, err := o.Generate(context.Background(), m, tty)
	if err != nil {
		return err
	}

	return files.NewOutputDirectory(m.Output, outputs, tty).Write()
}

// Generate compiles the catalog of every selected region concurrently.
// The first failure cancels regions that have not started yet.
func (o *GenerateOptions) Generate(ctx context.Context, m *config.Materialized, tty ui.UI) ([]files.OutputFile, error) {
	gen := codegen.NewGenerator(codegen.OptsFromConfig(m))
	results := make([][]files.OutputFile, len(m.Regions))

	group, ctx := errgroup.WithContext(ctx)
	if o.Parallelism > 0 {
		group.SetLimit(o.Parallelism)
	}

	for i, region := range m.Regions {
		i, region := i, region

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outputs, err := o.generateRegion(gen, region, m.Single, tty)
			if err != nil {
				return fmt.Errorf("Generating region '%s': %w", region.Name, err)
			}
			results[i] = outputs
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	var outputs []files.OutputFile
	for _, regionOutputs := range results {
		outputs = append(outputs, regionOutputs...)
	}
	return outputs, nil
}

func (o *GenerateOptions) generateRegion(gen *codegen.Generator, region config.Region,
	single bool, tty ui.UI) ([]files.OutputFile, error) {

	t1 := time.Now()

	src, err := files.NewSourceFromLocation(region.Location)
	if err != nil {
		return nil, err
	}

	cat, err := loader.LoadAny(files.NewCachedSource(src), single)
	if err != nil {
		return nil, err
	}
	tty.Debugf("region %s: loaded specification %s from %s (%s)\n",
		region.Name, cat.Version, src.Description(), time.Since(t1))

	result, err := gen.Compile(cat)
	if err != nil {
		return nil, err
	}

	outputs, err := gen.Render(region.Name, result)
	if err != nil {
		return nil, err
	}

	if o.Check {
		for _, output := range outputs {
			_, err := codegen.Check(output)
			if err != nil {
				return nil, err
			}
		}
	}

	tty.Debugf("region %s: generated %d documents (%s)\n", region.Name, len(outputs), time.Since(t1))
	return outputs, nil
}
