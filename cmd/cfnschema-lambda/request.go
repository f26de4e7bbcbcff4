// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// CustomHostVariable is the name of the environment variable that contains
// the custom hostname for the request. If this variable is not set the framework
// reverts to `DefaultServerAddress`. The value for a custom host should include
// a protocol: http://my-custom.host.com
const CustomHostVariable = "GO_API_HOST"

// DefaultServerAddress is prepended to the path of each incoming request
const DefaultServerAddress = "https://aws-serverless-go-api.com"

type RequestAccessor struct {
	stripBasePath string
}

func (r *RequestAccessor) ProxyEventToHTTPRequest(req events.ALBTargetGroupRequest) (*http.Request, error) {
	decodedBody := []byte(req.Body)
	if req.IsBase64Encoded {
		base64Body, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		decodedBody = base64Body
	}

	path := req.Path
	if len(r.stripBasePath) > 1 {
		path = strings.TrimPrefix(path, r.stripBasePath)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	serverAddress := DefaultServerAddress
	if customAddress, ok := os.LookupEnv(CustomHostVariable); ok {
		serverAddress = customAddress
	}
	path = serverAddress + path

	if query := queryString(req); len(query) > 0 {
		path += "?" + query
	}

	httpRequest, err := http.NewRequest(strings.ToUpper(req.HTTPMethod), path, bytes.NewReader(decodedBody))
	if err != nil {
		return nil, err
	}

	for h := range req.Headers {
		httpRequest.Header.Add(h, req.Headers[h])
	}

	for hk, hvs := range req.MultiValueHeaders {
		for _, hv := range hvs {
			httpRequest.Header.Add(hk, hv)
		}
	}

	return httpRequest, nil
}

// queryString prefers multi value parameters; ALB only sends one of both
// forms depending on the target group configuration. ALB passes values
// already URL encoded.
func queryString(req events.ALBTargetGroupRequest) string {
	values := req.MultiValueQueryStringParameters
	if len(values) == 0 {
		values = map[string][]string{}
		for k, v := range req.QueryStringParameters {
			values[k] = []string{v}
		}
	}

	var keys []string
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, v := range values[k] {
			parts = append(parts, unescaped(k)+"="+unescaped(v))
		}
	}
	return strings.Join(parts, "&")
}

func unescaped(val string) string {
	if decoded, err := url.QueryUnescape(val); err == nil {
		return url.QueryEscape(decoded)
	}
	return url.QueryEscape(val)
}
