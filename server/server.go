// Copyright © 2021 Io FinNet Group, Inc.

// Package server exposes the exchange engine as a JSON-over-HTTP API. Every request is
// self-contained; the server keeps no exchange state between calls.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/text/language"

	"github.com/iofinnet/dhlab/common"
	"github.com/iofinnet/dhlab/config"
	"github.com/iofinnet/dhlab/dh"
)

const maxBodyBytes = 1 << 16

type Server struct {
	cfg      *config.Config
	fallback language.Tag
	handler  http.Handler
}

type errorResponse struct {
	Error string       `json:"error"`
	Kind  dh.ErrorKind `json:"kind,omitempty"`
}

func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:      cfg,
		fallback: language.Make(cfg.Language),
	}
	mux := http.NewServeMux()
	mux.Handle("/set_base", s.post(s.handleSetBase))
	mux.Handle("/mix", s.post(s.handleMix))
	mux.Handle("/final", s.post(s.handleFinal))
	mux.Handle("/set_params", s.post(s.handleSetParams))
	mux.Handle("/public_key", s.post(s.handlePublicKey))
	mux.Handle("/shared_secret", s.post(s.handleSharedSecret))
	mux.Handle("/api/discrete_exp", s.post(s.handleDiscreteExp))
	mux.Handle("/api/discrete_log", s.post(s.handleDiscreteLog))
	mux.Handle("/api/suggest_params", s.post(s.handleSuggest))
	mux.HandleFunc("/healthz", s.handleHealth)
	s.handler = s.logRequests(s.recoverPanics(mux))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on the configured address until ctx is cancelled, then drains in-flight
// requests for at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	common.Logger.Infof("listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	common.Logger.Infof("shutting down, waiting up to %s for open requests", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) post(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			p := printerFor(r, s.fallback)
			s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: p.Sprintf(msgMethodNotAllowed)})
			return
		}
		h(w, r)
	})
}

// decode reads the JSON body regardless of Content-Type. It writes the 400 itself and
// reports false when the body is unusable.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		common.Logger.Debugf("%s: undecodable body: %v", r.URL.Path, err)
		p := printerFor(r, s.fallback)
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: p.Sprintf(msgBadBody), Kind: dh.KindInvalidFormat})
		return false
	}
	return true
}

// statusFor maps the input-error taxonomy to HTTP; anything outside it is a 500.
func statusFor(err error) int {
	switch dh.KindOf(err) {
	case dh.KindInvalidFormat, dh.KindTooLarge, dh.KindInvalidGroup, dh.KindModulusTooLarge:
		return http.StatusBadRequest
	case dh.KindNoSolutionFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	p := printerFor(r, s.fallback)
	if status == http.StatusInternalServerError {
		common.Logger.Errorf("%s: internal error: %+v", r.URL.Path, err)
		s.writeJSON(w, status, errorResponse{Error: p.Sprintf(msgInternal)})
		return
	}
	common.Logger.Debugf("%s: rejected: %v", r.URL.Path, err)
	s.writeJSON(w, status, errorResponse{Error: describe(p, r.URL.Path, err), Kind: dh.KindOf(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		common.Logger.Warnf("writing response: %v", err)
	}
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.writeError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		common.Logger.Debugf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
