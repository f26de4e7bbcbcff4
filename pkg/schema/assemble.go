// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"carvel.dev/cfnschema/pkg/groups"
	"carvel.dev/cfnschema/pkg/orderedmap"
)

// Document is the set of definitions that make up one group's schema.
type Document struct {
	Group       string
	Definitions *orderedmap.Map
	// ResourceIDs lists the resource definitions offered under resources.
	ResourceIDs []string
}

type AssembleOpts struct {
	// Intrinsics are merged into every document when non-nil.
	Intrinsics *orderedmap.Map
}

// Assemble builds one Document per group holding exactly the definitions
// whose grouping name the group includes. Nodes are shared between
// documents and must not be mutated afterwards.
func Assemble(defs []Definition, gs groups.Groups, opts AssembleOpts) ([]*Document, error) {
	var result []*Document

	for _, group := range gs {
		doc := &Document{Group: group.Name(), Definitions: orderedmap.NewMap()}

		if opts.Intrinsics != nil {
			opts.Intrinsics.Iterate(func(k string, v interface{}) {
				doc.Definitions.Set(k, v)
			})
		}

		for _, def := range defs {
			if !group.IsIncluded(def.GroupingName) {
				continue
			}
			if doc.Definitions.Has(def.ID) {
				return nil, fmt.Errorf("Definition '%s' of '%s' conflicts with an existing definition in group '%s'",
					def.ID, def.QualifiedName, group.Name())
			}
			doc.Definitions.Set(def.ID, def.Node)
			if def.Resource {
				doc.ResourceIDs = append(doc.ResourceIDs, def.ID)
			}
		}

		for _, reserved := range []string{CustomResourceID, ResourcesID} {
			if doc.Definitions.Has(reserved) {
				return nil, fmt.Errorf("Definition '%s' is reserved (group '%s')", reserved, group.Name())
			}
		}

		doc.Definitions.Set(CustomResourceID, CustomResourceNode())
		doc.Definitions.Set(ResourcesID, ResourcesNode(doc.ResourceIDs))

		result = append(result, doc)
	}

	return result, nil
}
