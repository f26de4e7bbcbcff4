// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"

	"carvel.dev/cfnschema/pkg/files"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const checkURLPrefix = "mem:///"

// Check compiles a rendered document, which also validates it against its
// draft's meta-schema.
func Check(file files.OutputFile) (*jsonschema.Schema, error) {
	url := checkURLPrefix + file.RelativePath()

	compiler := jsonschema.NewCompiler()
	err := compiler.AddResource(url, bytes.NewReader(file.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("Checking '%s': %s", file.RelativePath(), err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("Checking '%s': %s", file.RelativePath(), err)
	}
	return compiled, nil
}

// ValidateTemplate checks a JSON template against a rendered document.
func ValidateTemplate(file files.OutputFile, template []byte) error {
	compiled, err := Check(file)
	if err != nil {
		return err
	}

	var val interface{}
	dec := json.NewDecoder(bytes.NewReader(template))
	dec.UseNumber()

	err = dec.Decode(&val)
	if err != nil {
		return fmt.Errorf("Unmarshaling template: %s", err)
	}

	err = compiled.Validate(val)
	if err != nil {
		return fmt.Errorf("Validating template against '%s': %s", file.RelativePath(), err)
	}
	return nil
}
