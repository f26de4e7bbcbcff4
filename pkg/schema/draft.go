// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// Draft selects the JSON Schema specification the output targets.
type Draft string

const (
	Draft04 Draft = "draft04"
	Draft07 Draft = "draft07"

	DefaultDraft = Draft07
)

var draftLocations = map[Draft]string{
	Draft04: "http://json-schema.org/draft-04/schema#",
	Draft07: "http://json-schema.org/draft-07/schema#",
}

// Location is the draft's published meta-schema URI.
func (d Draft) Location() string { return draftLocations[d] }

func (d Draft) String() string { return string(d) }

func ParseDraft(val string) (Draft, error) {
	draft := Draft(strings.ToLower(strings.TrimSpace(val)))
	if _, found := draftLocations[draft]; !found {
		return "", fmt.Errorf("Expected schema draft to be one of '%s', '%s', but was '%s'", Draft04, Draft07, val)
	}
	return draft, nil
}

// Set and Type make Draft usable as a command line flag.
func (d *Draft) Set(val string) error {
	parsed, err := ParseDraft(val)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Draft) Type() string { return "draft" }

func (d *Draft) UnmarshalText(text []byte) error { return d.Set(string(text)) }

func (d Draft) MarshalText() ([]byte, error) { return []byte(d), nil }
