// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes() ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, &StdinSource{},
	LocalSource{}, HTTPSource{}, &CachedSource{}}

const (
	stdinLocation = "-"
	fileScheme    = "file://"
)

// NewSourceFromLocation picks a Source based on the shape of location.
func NewSourceFromLocation(location string) (Source, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("Expected specification location to be non-empty")

	case location == stdinLocation:
		return &StdinSource{}, nil

	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location), nil

	case strings.HasPrefix(location, fileScheme):
		parsed, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("Parsing location '%s': %s", location, err)
		}
		return NewLocalSource(parsed.Path), nil

	default:
		return NewLocalSource(location), nil
	}
}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }
func (s BytesSource) Bytes() ([]byte, error)        { return s.data, nil }

// StdinSource reads standard input on first use.
type StdinSource struct {
	read  bool
	bytes []byte
	err   error
}

func (s *StdinSource) Description() string           { return "stdin" }
func (s *StdinSource) RelativePath() (string, error) { return "stdin.json", nil }

func (s *StdinSource) Bytes() ([]byte, error) {
	if !s.read {
		s.read = true
		s.bytes, s.err = ReadStdin()
	}
	return s.bytes, s.err
}

type LocalSource struct {
	path string
}

func NewLocalSource(path string) LocalSource { return LocalSource{path} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

func (s LocalSource) RelativePath() (string, error) { return filepath.Base(s.path), nil }

func (s LocalSource) Bytes() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("Reading file '%s': %s", s.path, err)
	}
	return data, nil
}

type HTTPSource struct {
	url string
	// Client defaults to http.DefaultClient
	Client *http.Client
}

func NewHTTPSource(path string) HTTPSource { return HTTPSource{url: path} }

func (s HTTPSource) Description() string {
	return fmt.Sprintf("HTTP URL '%s'", s.url)
}

func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

func (s HTTPSource) Bytes() ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Reading URL '%s': %s", s.url, err)
	}

	return result, nil
}

// CachedSource fetches its underlying source at most once.
type CachedSource struct {
	src Source

	bytesFetched bool
	bytes        []byte
	bytesErr     error
}

func NewCachedSource(src Source) *CachedSource { return &CachedSource{src: src} }

func (s *CachedSource) Description() string           { return s.src.Description() }
func (s *CachedSource) RelativePath() (string, error) { return s.src.RelativePath() }

func (s *CachedSource) Bytes() ([]byte, error) {
	if s.bytesFetched {
		return s.bytes, s.bytesErr
	}

	s.bytesFetched = true
	s.bytes, s.bytesErr = s.src.Bytes()

	return s.bytes, s.bytesErr
}
