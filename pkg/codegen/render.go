// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/orderedmap"
	"carvel.dev/cfnschema/pkg/schema"
)

const (
	templateFormatVersion = "2010-09-09"
	maxTemplateSection    = 200
	maxDescriptionLength  = 1024
	outputFileSuffix      = "-spec.json"
)

// OutputPath is where a group's document of a region is written, relative
// to the output directory.
func OutputPath(region, group string) string {
	return path.Join(region, group+outputFileSuffix)
}

// Render serializes every document of result.
func (g *Generator) Render(region string, result *Result) ([]files.OutputFile, error) {
	var outputs []files.OutputFile

	for _, doc := range result.Documents {
		relPath := OutputPath(region, doc.Group)

		data, err := Marshal(g.TemplateDocument(relPath, result.CatalogVersion, doc))
		if err != nil {
			return nil, fmt.Errorf("Rendering group '%s' of region '%s': %s", doc.Group, region, err)
		}
		outputs = append(outputs, files.NewOutputFile(relPath, data))
	}

	return outputs, nil
}

// TemplateDocument describes a whole template whose resources are those of
// doc. relPath is only used to derive $id.
func (g *Generator) TemplateDocument(relPath, catalogVersion string, doc *schema.Document) *orderedmap.Map {
	root := orderedmap.NewMap()
	root.Set("$schema", g.opts.Draft.Location())
	if g.opts.IDBaseURL != "" {
		root.Set("$id", strings.TrimSuffix(g.opts.IDBaseURL, "/")+"/"+relPath)
	}
	root.Set("description", "CFN JSON specification generated from version "+catalogVersion)
	root.Set("type", "object")

	props := root.PutMap("properties")

	formatVersion := props.PutMap("AWSTemplateFormatVersion")
	formatVersion.Set("type", "string")
	formatVersion.Set("enum", []interface{}{templateFormatVersion})

	description := props.PutMap("Description")
	description.Set("type", "string")
	description.Set("maxLength", maxDescriptionLength)

	props.PutMap("Metadata").Set("type", "object")

	for _, section := range []string{"Parameters", "Mappings"} {
		node := props.PutMap(section)
		node.Set("type", "object")
		node.Set("maxProperties", maxTemplateSection)
	}

	props.PutMap("Conditions").Set("type", "object")

	transform := props.PutMap("Transform")
	transform.Set("type", []interface{}{"string", "array"})
	transform.PutMap("items").Set("type", "string")

	outputs := props.PutMap("Outputs")
	outputs.Set("type", "object")
	outputs.Set("maxProperties", maxTemplateSection)

	props.PutMap("Resources").Set("$ref", schema.Ref(schema.ResourcesID))

	root.Set("required", []interface{}{"Resources"})
	root.Set("additionalProperties", false)
	root.Set("definitions", doc.Definitions)
	return root
}

// Marshal writes JSON indented with two spaces and a trailing newline.
func Marshal(val interface{}) ([]byte, error) {
	compact, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = json.Indent(&buf, compact, "", "  ")
	if err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
