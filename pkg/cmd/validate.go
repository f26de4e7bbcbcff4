// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/cmd/ui"
	"carvel.dev/cfnschema/pkg/codegen"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/groups"
	"carvel.dev/cfnschema/pkg/loader"
	"carvel.dev/cfnschema/pkg/schema"
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	File      string
	Single    bool
	Templates []string
	Group     string

	ConfigFlags ConfigFlags

	UI ui.UI
}

func NewValidateOptions() *ValidateOptions {
	return &ValidateOptions{}
}

func NewValidateCmd(o *ValidateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check referential integrity of a specification",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Specification (ie local path, HTTP URL, -)")
	cmd.Flags().BoolVar(&o.Single, "single", false, "Specification describes a single resource type")
	cmd.Flags().StringSliceVarP(&o.Templates, "template", "t", nil,
		"Template to validate against the generated schema of --group (can be specified multiple times)")
	cmd.Flags().StringVarP(&o.Group, "group", "g", "",
		"Group whose schema templates are validated against (defaults to the only configured group, or 'all')")
	o.ConfigFlags.SetSchemaFlags(cmd)
	return cmd
}

func (o *ValidateOptions) Run() error {
	tty := o.UI
	if tty == nil {
		tty = ui.NewTTY(false)
	}

	src, err := files.NewSourceFromLocation(o.File)
	if err != nil {
		return err
	}

	cat, err := loader.LoadAny(src, o.Single)
	if err != nil {
		return err
	}

	table := cat.PropertyTypeTable()
	scoped := 0
	for _, entry := range table.Entries() {
		if entry.Visibility == catalog.Scoped {
			scoped++
		}
	}

	tty.Printf("Specification %s from %s is valid: %d resource types, %d property types (%d shared)\n",
		cat.Version, src.Description(), len(cat.ResourceTypes), table.Len(), table.Len()-scoped)

	if len(o.Templates) == 0 {
		return nil
	}
	return o.validateTemplates(cat, tty)
}

func (o *ValidateOptions) validateTemplates(cat *catalog.Catalog, tty ui.UI) error {
	cfg, err := o.ConfigFlags.Config()
	if err != nil {
		return err
	}

	m, err := cfg.Materialize()
	if err != nil {
		return err
	}

	gen := codegen.NewGenerator(codegen.OptsFromConfig(m))

	groupName, err := o.templateGroup(gen.Opts().Groups)
	if err != nil {
		return err
	}

	result, err := gen.Compile(cat)
	if err != nil {
		return err
	}

	doc, err := result.Document(groupName)
	if err != nil {
		return err
	}
	result.Documents = []*schema.Document{doc}

	region := DefaultServeRegion
	if len(m.Regions) > 0 {
		region = m.Regions[0].Name
	}

	outputs, err := gen.Render(region, result)
	if err != nil {
		return err
	}

	for _, path := range o.Templates {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("Reading template '%s': %s", path, err)
		}
		err = codegen.ValidateTemplate(outputs[0], data)
		if err != nil {
			return fmt.Errorf("Template '%s': %s", path, err)
		}
		tty.Printf("Template %s is valid\n", path)
	}
	return nil
}

func (o *ValidateOptions) templateGroup(gs groups.Groups) (string, error) {
	if o.Group != "" {
		return o.Group, nil
	}
	names := gs.Names()
	if len(names) == 1 {
		return names[0], nil
	}
	if _, found := gs.Get(groups.AllName); found {
		return groups.AllName, nil
	}
	return "", fmt.Errorf("Expected --group to be one of '%s'", strings.Join(names, "', '"))
}
