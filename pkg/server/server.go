// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"
)

// DefaultMaxRequestBytes bounds /compile request bodies.
const DefaultMaxRequestBytes = 64 << 20

// CompileRequest is a parsed /compile request.
type CompileRequest struct {
	Catalog []byte
	// Group limits the response to one group when non-empty.
	Group  string
	Region string
	Single bool
}

type ServerOpts struct {
	ListenAddr      string
	RedirectToHTTPS bool
	CompileFunc     func(CompileRequest) ([]byte, error)
	ErrorFunc       func(error) ([]byte, error)
	MaxRequestBytes int64
}

type Server struct {
	opts ServerOpts
}

func NewServer(opts ServerOpts) *Server {
	if opts.ErrorFunc == nil {
		opts.ErrorFunc = JSONError
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = DefaultMaxRequestBytes
	}
	return &Server{opts}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	// no need for caching as it's a POST
	mux.HandleFunc("/compile", s.redirectToHTTPS(s.corsHandler(s.compileHandler)))
	mux.HandleFunc("/health", s.noCacheHandler(s.healthHandler))
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("Listening on http://%s\n", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) compileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.logError(w, http.StatusMethodNotAllowed, fmt.Errorf("Expected POST request, but was %s", r.Method))
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.opts.MaxRequestBytes+1))
	if err != nil {
		s.logError(w, http.StatusBadRequest, err)
		return
	}
	if int64(len(data)) > s.opts.MaxRequestBytes {
		s.logError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("Expected request body to be at most %d bytes", s.opts.MaxRequestBytes))
		return
	}

	query := r.URL.Query()
	req := CompileRequest{
		Catalog: data,
		Group:   query.Get("group"),
		Region:  query.Get("region"),
	}
	if single := query.Get("single"); single != "" {
		req.Single, err = strconv.ParseBool(single)
		if err != nil {
			s.logError(w, http.StatusBadRequest, fmt.Errorf("Parsing query parameter 'single': %s", err))
			return
		}
	}

	resp, err := s.opts.CompileFunc(req)
	if err != nil {
		s.logError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	s.write(w, resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, []byte("ok"))
}

func (s *Server) logError(w http.ResponseWriter, status int, err error) {
	log.Print(err.Error())

	resp, err := s.opts.ErrorFunc(err)
	if err != nil {
		w.WriteHeader(status)
		fmt.Fprintf(w, "compilation error: %s", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, data []byte) {
	w.Write(data) // not fmt.Fprintf!
}

// JSONError renders err as {"errors": "<message>"}.
func JSONError(err error) ([]byte, error) {
	return json.Marshal(struct {
		Errors string `json:"errors"`
	}{err.Error()})
}

func (s *Server) redirectToHTTPS(wrappedFunc http.HandlerFunc) http.HandlerFunc {
	if !s.opts.RedirectToHTTPS {
		return wrappedFunc
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checkHTTPS := true
		clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && clientIP == "127.0.0.1" {
			checkHTTPS = false
		}

		if checkHTTPS && r.Header.Get("X-Forwarded-Proto") != "https" {
			// body may have been carried insecurely
			s.logError(w, http.StatusBadRequest, fmt.Errorf("Expected HTTPS connection"))
			return
		}

		wrappedFunc(w, r)
	}
}

var (
	noCacheHeaders = map[string]string{
		"Expires":         time.Unix(0, 0).Format(time.RFC1123),
		"Cache-Control":   "no-cache, private, max-age=0",
		"Pragma":          "no-cache",
		"X-Accel-Expires": "0",
	}
)

func (s *Server) noCacheHandler(wrappedFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}

		wrappedFunc(w, r)
	}
}

func (s *Server) corsHandler(wrappedFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		wrappedFunc(w, r)
	}
}
