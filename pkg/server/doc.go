// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package server exposes catalog compilation over HTTP.

	POST /compile?group=<name>&region=<name>&single=true

takes a specification catalog as the request body (plain, gzip or zip) and
responds with a JSON object mapping each group to its schema document.
*/
package server
