// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"carvel.dev/cfnschema/pkg/codegen"
	"carvel.dev/cfnschema/pkg/config"
	"carvel.dev/cfnschema/pkg/files"
	"carvel.dev/cfnschema/pkg/loader"
	"carvel.dev/cfnschema/pkg/orderedmap"
	"carvel.dev/cfnschema/pkg/schema"
	"carvel.dev/cfnschema/pkg/server"
	"github.com/spf13/cobra"
)

// DefaultServeRegion names rendered documents when a request does not
// name a region.
const DefaultServeRegion = config.DefaultRegion

type ServeOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
	ConfigFlags     ConfigFlags
}

func NewServeOptions() *ServeOptions {
	return &ServeOptions{}
}

func NewServeCmd(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server compiling posted specifications",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", false, "Reject requests not forwarded over HTTPS")
	o.ConfigFlags.Set(cmd)
	return cmd
}

// Server builds the server from the effective configuration. Regions and
// specification locations of the configuration are not used.
func (o *ServeOptions) Server() (*server.Server, error) {
	cfg, err := o.ConfigFlags.Config()
	if err != nil {
		return nil, err
	}
	m, err := cfg.Materialize()
	if err != nil {
		return nil, err
	}

	gen := codegen.NewGenerator(codegen.OptsFromConfig(m))

	opts := server.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		CompileFunc:     func(req server.CompileRequest) ([]byte, error) { return compileRequest(gen, req) },
	}
	return server.NewServer(opts), nil
}

func (o *ServeOptions) Run() error {
	srv, err := o.Server()
	if err != nil {
		return err
	}
	return srv.Run()
}

func compileRequest(gen *codegen.Generator, req server.CompileRequest) ([]byte, error) {
	cat, err := loader.LoadAny(files.NewBytesSource("request body", req.Catalog), req.Single)
	if err != nil {
		return nil, err
	}

	result, err := gen.Compile(cat)
	if err != nil {
		return nil, err
	}

	if req.Group != "" {
		doc, err := result.Document(req.Group)
		if err != nil {
			return nil, err
		}
		result.Documents = []*schema.Document{doc}
	}

	region := req.Region
	if region == "" {
		region = DefaultServeRegion
	}

	outputs, err := gen.Render(region, result)
	if err != nil {
		return nil, err
	}

	resp := orderedmap.NewMap()
	for i, output := range outputs {
		resp.Set(result.Documents[i].Group, json.RawMessage(output.Bytes()))
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("Marshaling response: %s", err)
	}
	return respBytes, nil
}
