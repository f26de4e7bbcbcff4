// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/config"
	"carvel.dev/cfnschema/pkg/groups"
	"carvel.dev/cfnschema/pkg/orderedmap"
	"carvel.dev/cfnschema/pkg/schema"
)

type Opts struct {
	Draft             schema.Draft
	IncludeIntrinsics bool
	Groups            groups.Groups
	// IDBaseURL prefixes the $id of rendered documents; no $id is
	// rendered when empty.
	IDBaseURL string
	// Intrinsics defaults to the bundled definitions.
	Intrinsics *orderedmap.Map
	// CheckCatalogVersion, when set, is called with each catalog's version
	// before compiling.
	CheckCatalogVersion func(string) error
}

// OptsFromConfig picks generator options out of a resolved configuration.
func OptsFromConfig(m *config.Materialized) Opts {
	return Opts{
		Draft:               m.Draft,
		IncludeIntrinsics:   m.IncludeIntrinsics,
		Groups:              m.Groups,
		IDBaseURL:           m.IDBaseURL,
		CheckCatalogVersion: m.CheckCatalogVersion,
	}
}

type Generator struct {
	opts    Opts
	emitter *schema.Emitter
}

func NewGenerator(opts Opts) *Generator {
	emitter := schema.NewEmitter(schema.Options{Draft: opts.Draft, IncludeIntrinsics: opts.IncludeIntrinsics})
	opts.Draft = emitter.Options().Draft

	if opts.IncludeIntrinsics && opts.Intrinsics == nil {
		opts.Intrinsics = schema.DefaultIntrinsics()
	}
	if len(opts.Groups) == 0 {
		// nil specs always materialize
		opts.Groups, _ = groups.Materialize(nil)
	}
	return &Generator{opts, emitter}
}

func (g *Generator) Opts() Opts { return g.opts }

// Result is the compiled form of one catalog.
type Result struct {
	CatalogVersion string
	Definitions    []schema.Definition
	Documents      []*schema.Document
}

// Compile validates cat and builds the documents of every group. It does
// not modify cat.
func (g *Generator) Compile(cat *catalog.Catalog) (*Result, error) {
	err := cat.Validate()
	if err != nil {
		return nil, err
	}

	if g.opts.CheckCatalogVersion != nil {
		err := g.opts.CheckCatalogVersion(cat.Version)
		if err != nil {
			return nil, err
		}
	}

	defs, err := g.emitter.Emit(cat)
	if err != nil {
		return nil, err
	}

	assembleOpts := schema.AssembleOpts{}
	if g.opts.IncludeIntrinsics {
		assembleOpts.Intrinsics = g.opts.Intrinsics
	}

	docs, err := schema.Assemble(defs, g.opts.Groups, assembleOpts)
	if err != nil {
		return nil, err
	}

	return &Result{CatalogVersion: cat.Version, Definitions: defs, Documents: docs}, nil
}

// Document returns the compiled document of a group.
func (r *Result) Document(group string) (*schema.Document, error) {
	for _, doc := range r.Documents {
		if doc.Group == group {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("Expected group '%s' to be configured", group)
}
