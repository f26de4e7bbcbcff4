// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"carvel.dev/cfnschema/pkg/catalog"
	"carvel.dev/cfnschema/pkg/files"
)

const minStreamLen = 4

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
)

// Load reads and validates a catalog holding any number of resource types.
func Load(src files.Source) (*catalog.Catalog, error) {
	var cat catalog.Catalog

	err := decode(src, &cat)
	if err != nil {
		return nil, err
	}

	err = cat.Validate()
	if err != nil {
		return nil, fmt.Errorf("Validating specification from %s: %w", src.Description(), err)
	}
	return &cat, nil
}

// LoadSingle reads and validates a catalog holding exactly one resource type.
func LoadSingle(src files.Source) (*catalog.SingleResourceCatalog, error) {
	var cat catalog.SingleResourceCatalog

	err := decode(src, &cat)
	if err != nil {
		return nil, err
	}

	err = cat.Validate()
	if err != nil {
		return nil, fmt.Errorf("Validating specification from %s: %w", src.Description(), err)
	}
	return &cat, nil
}

// LoadAny reads a catalog in either format, converting single resource
// catalogs to regular ones.
func LoadAny(src files.Source, single bool) (*catalog.Catalog, error) {
	if !single {
		return Load(src)
	}
	cat, err := LoadSingle(src)
	if err != nil {
		return nil, err
	}
	return cat.AsCatalog(), nil
}

func decode(src files.Source, out interface{}) error {
	data, err := src.Bytes()
	if err != nil {
		return err
	}

	data, err = Decompress(data)
	if err != nil {
		return fmt.Errorf("Reading specification from %s: %s", src.Description(), err)
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("Unmarshaling specification from %s: %s", src.Description(), err)
	}
	return nil
}

// Decompress returns the JSON payload of data, unwrapping gzip or zip
// when their magic numbers are present.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < minStreamLen {
		return nil, fmt.Errorf("Can not read stream")
	}

	switch {
	case bytes.HasPrefix(data, gzipMagic):
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("Opening gzip stream: %s", err)
		}
		defer reader.Close()

		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("Reading gzip stream: %s", err)
		}
		return result, nil

	case bytes.HasPrefix(data, zipMagic):
		archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("Opening zip archive: %s", err)
		}
		if len(archive.File) == 0 {
			return nil, fmt.Errorf("Expected zip archive to contain at least one entry")
		}

		entry, err := archive.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("Opening zip entry '%s': %s", archive.File[0].Name, err)
		}
		defer entry.Close()

		result, err := io.ReadAll(entry)
		if err != nil {
			return nil, fmt.Errorf("Reading zip entry '%s': %s", archive.File[0].Name, err)
		}
		return result, nil

	default:
		return data, nil
	}
}
