// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/cfnschema/pkg/config"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/spf13/cobra"
)

// ConfigFlags builds the effective configuration from the bundled one,
// an optional configuration file and command line overrides.
type ConfigFlags struct {
	ConfigFile string
	Merge      map[string]string

	Region     string
	SpecURL    string
	Draft      schema.Draft
	Output     string
	Single     bool
	Intrinsics bool

	changed func(string) bool
}

func (s *ConfigFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.ConfigFile, "config-file", "c", "", "Configuration file (YAML, or TOML when ending in .toml)")
	cmd.Flags().StringToStringVar(&s.Merge, "merge", nil,
		"Merge mode of a configuration section with the bundled configuration (e.g. groups=override) (can be specified multiple times)")
	cmd.Flags().StringVar(&s.Region, "region", "", "Region (or region prefix) to generate (e.g. us-east-2)")
	cmd.Flags().StringVar(&s.SpecURL, "spec-url", "", "Specification location of --region (ie local path, HTTP URL, -)")
	cmd.Flags().Var(&s.Draft, "draft", "JSON Schema draft (draft04, draft07)")
	cmd.Flags().StringVarP(&s.Output, "output-dir", "o", "", "Directory for output; documents are written to <dir>/<region>/<group>-spec.json")
	cmd.Flags().BoolVar(&s.Single, "single", false, "Specifications describe a single resource type")
	cmd.Flags().BoolVar(&s.Intrinsics, "intrinsics", false, "Accept intrinsic functions wherever a primitive value is expected (draft07)")
	s.changed = cmd.Flags().Changed
}

// SetSchemaFlags registers only the flags that shape compiled documents.
func (s *ConfigFlags) SetSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.ConfigFile, "config-file", "c", "", "Configuration file (YAML, or TOML when ending in .toml)")
	cmd.Flags().StringToStringVar(&s.Merge, "merge", nil,
		"Merge mode of a configuration section with the bundled configuration (e.g. groups=override) (can be specified multiple times)")
	cmd.Flags().Var(&s.Draft, "draft", "JSON Schema draft (draft04, draft07)")
	cmd.Flags().BoolVar(&s.Intrinsics, "intrinsics", false, "Accept intrinsic functions wherever a primitive value is expected (draft07)")
	s.changed = cmd.Flags().Changed
}

func (s *ConfigFlags) isChanged(name string) bool {
	return s.changed != nil && s.changed(name)
}

func (s *ConfigFlags) Config() (*config.Config, error) {
	bundled, err := config.Bundled()
	if err != nil {
		return nil, err
	}

	var fromFile *config.Config
	if len(s.ConfigFile) > 0 {
		fromFile, err = config.LoadFile(s.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	modes, err := config.ParseMergeModes(s.Merge)
	if err != nil {
		return nil, err
	}

	overrides := config.Overrides{
		Region:       s.Region,
		SpecLocation: s.SpecURL,
		Draft:        s.Draft,
		Output:       s.Output,
	}
	if s.isChanged("single") {
		overrides.Single = &s.Single
	}
	if s.isChanged("intrinsics") {
		overrides.IncludeIntrinsics = &s.Intrinsics
	}

	return config.Merge(bundled, fromFile, modes).ApplyOverrides(overrides), nil
}
