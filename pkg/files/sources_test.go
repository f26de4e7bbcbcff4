// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/cfnschema/pkg/files"
	"github.com/stretchr/testify/require"
)

func TestHTTPFileSources(t *testing.T) {
	url := "http://example.com/some/path"

	client := NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusOK,
			// Send response to be tested
			Body: io.NopCloser(bytes.NewBufferString(`OK`)),
			// Must be set to non-nil value or it panics
			Header: make(http.Header),
		}
	})

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = client
	body, err := fileSource.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("OK"), body)

	// 2xx Status Codes
	client = NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusIMUsed,
			Body:       io.NopCloser(bytes.NewBufferString(`OK`)),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	body, err = fileSource.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("OK"), body)

	// Non-OK HTTP Status Code
	status := "404 Not Found"
	client = NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     status,
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	_, err = fileSource.Bytes()
	require.EqualError(t, err, fmt.Sprintf("Requesting URL '%s': %s", url, status))
}

func TestNewSourceFromLocation(t *testing.T) {
	cases := []struct {
		location    string
		description string
	}{
		{"-", "stdin"},
		{"https://example.com/us-east-2/spec.json", "HTTP URL 'https://example.com/us-east-2/spec.json'"},
		{"http://example.com/spec.json", "HTTP URL 'http://example.com/spec.json'"},
		{"file:///tmp/spec.json", "file '/tmp/spec.json'"},
		{"specs/spec.json", "file 'specs/spec.json'"},
	}

	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			src, err := files.NewSourceFromLocation(tc.location)
			require.NoError(t, err)
			require.Equal(t, tc.description, src.Description())
		})
	}

	_, err := files.NewSourceFromLocation("")
	require.EqualError(t, err, "Expected specification location to be non-empty")
}

func TestLocalSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	src := files.NewLocalSource(path)
	body, err := src.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte(`{}`), body)

	relPath, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "spec.json", relPath)

	_, err = files.NewLocalSource(filepath.Join(dir, "missing.json")).Bytes()
	require.ErrorContains(t, err, "Reading file '"+filepath.Join(dir, "missing.json")+"'")
}

func TestCachedSource(t *testing.T) {
	calls := 0
	client := NewTestClient(func(req *http.Request) *http.Response {
		calls++
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
			Header:     make(http.Header),
		}
	})

	httpSrc := files.NewHTTPSource("http://example.com/spec.json")
	httpSrc.Client = client
	src := files.NewCachedSource(httpSrc)

	for i := 0; i < 3; i++ {
		body, err := src.Bytes()
		require.NoError(t, err)
		require.Equal(t, []byte(`{}`), body)
	}
	require.Equal(t, 1, calls)
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}
