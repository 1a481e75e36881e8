// Package server exposes the q-analogue calculator over HTTP.
//
// Endpoints:
//
//	GET /compute?function=q_binomial&args=4,2&q=2&algo=auto&verify=true
//	GET /health
//	GET /metrics
//
// /compute answers with the JSON encoding of calc.Result. Invalid requests
// get 400, computations exceeding the deadline 504 and anything else 500.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/qcalc/internal/calc"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/logging"
	"github.com/agbru/qcalc/internal/orchestration"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown.
const ShutdownTimeout = 10 * time.Second

// Config holds the server settings.
type Config struct {
	// Port is the TCP port to listen on; 0 picks a free one.
	Port int
	// Workers bounds the number of concurrent computations, counting those
	// still running after their request timed out.
	Workers int
	// Timeout is the deadline of a single computation.
	Timeout  time.Duration
	Security SecurityConfig
}

// Server serves /compute, /health and /metrics.
type Server struct {
	cfg     Config
	factory orchestration.CalculatorFactory
	metrics *Metrics
	logger  logging.Logger
	sem     chan struct{}
	started time.Time
}

// New returns a server computing with the calculators of factory.
func New(cfg Config, factory orchestration.CalculatorFactory, logger logging.Logger) *Server {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Server{
		cfg:     cfg,
		factory: factory,
		metrics: NewMetrics(),
		logger:  logger,
		sem:     make(chan struct{}, cfg.Workers),
		started: time.Now(),
	}
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(h))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/compute", wrap(s.handleCompute))
	mux.HandleFunc("/health", wrap(s.handleHealth))
	mux.HandleFunc("/metrics", wrap(s.handleMetrics))
	return mux
}

// ListenAndServe serves on cfg.Port until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			logging.String("addr", ln.Addr().String()),
			logging.Int("workers", s.cfg.Workers),
			logging.Int("max_n", s.cfg.Security.MaxNValue))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string   `json:"status"`
	Uptime      string   `json:"uptime"`
	Algorithms  []string `json:"algorithms"`
	Functions   []string `json:"functions"`
	MaxN        int      `json:"max_n"`
	Workers     int      `json:"workers"`
	ActiveSlots int      `json:"active_slots"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Uptime:      time.Since(s.started).Round(time.Second).String(),
		Algorithms:  s.factory.List(),
		Functions:   calc.Names(),
		MaxN:        s.cfg.Security.MaxNValue,
		Workers:     s.cfg.Workers,
		ActiveSlots: len(s.sem),
	})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	req, calculator, err := s.parseComputeRequest(r)
	if err != nil {
		s.fail(w, req.Function, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		s.fail(w, req.Function, apperrors.WrapError(ctx.Err(), "waiting for a worker"))
		return
	}

	// The slot is freed when the computation returns, not when the
	// request stops waiting for it.
	type computed struct {
		res calc.Result
		err error
	}
	done := make(chan computed, 1)
	go func() {
		defer func() { <-s.sem }()
		res, err := calculator.Calculate(context.WithoutCancel(ctx), nil, 0, req)
		done <- computed{res, err}
	}()

	var c computed
	select {
	case c = <-done:
	case <-ctx.Done():
		s.fail(w, req.Function, apperrors.WrapError(ctx.Err(), "%s", req.Function))
		return
	}
	res, err := c.res, c.err
	if err != nil {
		s.fail(w, req.Function, err)
		return
	}

	s.metrics.ObserveComputation(string(res.Function), "ok")
	s.logger.Debug("computed",
		logging.String("function", string(res.Function)),
		logging.String("ring", res.Ring),
		logging.String("algorithm", res.Algorithm),
		logging.Float64("duration_ms", float64(res.Duration.Microseconds())/1000))
	writeJSON(w, http.StatusOK, res)
}

// parseComputeRequest reads the query parameters. Arguments are given as
// args=4,2 or as repeated arg parameters.
func (s *Server) parseComputeRequest(r *http.Request) (calc.Request, orchestration.Calculator, error) {
	query := r.URL.Query()
	req := calc.Request{
		Function: strings.TrimSpace(query.Get("function")),
		Q:        query.Get("q"),
		MaxN:     s.cfg.Security.MaxNValue,
	}
	if req.Function == "" {
		return req, nil, apperrors.ValidationError{Field: "function", Message: "is required"}
	}
	for _, a := range strings.Split(query.Get("args"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			req.Args = append(req.Args, a)
		}
	}
	req.Args = append(req.Args, query["arg"]...)

	if v := query.Get("verify"); v != "" {
		verify, err := strconv.ParseBool(v)
		if err != nil {
			return req, nil, apperrors.ValidationError{Field: "verify", Message: "must be a boolean"}
		}
		req.Verify = verify
	}

	algo := query.Get("algo")
	if algo == "" {
		algo = "auto"
	}
	calculator, err := s.factory.Get(algo)
	if err != nil {
		return req, nil, apperrors.ValidationError{
			Field:   "algo",
			Message: fmt.Sprintf("must be one of %s", strings.Join(s.factory.List(), ", ")),
		}
	}
	return req, calculator, nil
}

// fail writes the error with the status matching its kind.
func (s *Server) fail(w http.ResponseWriter, function string, err error) {
	status, outcome := http.StatusInternalServerError, "error"
	switch apperrors.ExitCode(err) {
	case apperrors.ExitErrorInvalidArgument:
		status, outcome = http.StatusBadRequest, "invalid"
	case apperrors.ExitErrorTimeout:
		status, outcome = http.StatusGatewayTimeout, "timeout"
	case apperrors.ExitErrorCanceled:
		status, outcome = http.StatusServiceUnavailable, "canceled"
	}
	if fn, perr := calc.ParseFunction(function); perr == nil {
		function = string(fn)
	} else {
		function = "unknown"
	}
	s.metrics.ObserveComputation(function, outcome)
	if status == http.StatusInternalServerError {
		s.logger.Error("computation failed", err, logging.String("function", function))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
