// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"carvel.dev/cfnschema/pkg/orderedmap"
)

//go:embed intrinsics.json
var defaultIntrinsics []byte

// DefaultIntrinsics returns the bundled intrinsic function definitions,
// including Expression.
func DefaultIntrinsics() *orderedmap.Map {
	defs, err := ParseIntrinsics(defaultIntrinsics)
	if err != nil {
		panic(fmt.Sprintf("Parsing bundled intrinsics: %s", err))
	}
	return defs
}

// ParseIntrinsics reads a JSON object of definitions. It must define
// Expression since emitted nodes refer to it.
func ParseIntrinsics(data []byte) (*orderedmap.Map, error) {
	var decoded map[string]interface{}
	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling intrinsics: %s", err)
	}
	if _, found := decoded[expressionID]; !found {
		return nil, fmt.Errorf("Expected intrinsics to define '%s'", expressionID)
	}
	return orderedmap.Conversion{Object: decoded}.FromUnorderedMaps().(*orderedmap.Map), nil
}
