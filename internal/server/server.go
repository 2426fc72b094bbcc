// Package server exposes the duplicate check over HTTP for the defect-creation form.
package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline"
	"github.com/luizchimenes/debugae/internal/similarity"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/valyala/fasthttp"
)

// checkTimeout bounds a /api/bugs/check request including the source fetch
const checkTimeout = 30 * time.Second

// MatchRequest is the body of /api/bugs/similar and /api/bugs/duplicates
type MatchRequest struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	ProjectID   string          `json:"projectId"`
	Candidates  []models.Defect `json:"candidates"`
	Threshold   *float64        `json:"threshold,omitempty"`
}

// MatchResponse lists the matching candidates in input order
type MatchResponse struct {
	Matches   []models.Defect `json:"matches"`
	Threshold float64         `json:"threshold"`
}

// CheckRequest is the body of /api/bugs/check
type CheckRequest struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	ProjectID   string `json:"projectId"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server handles check API requests
type Server struct {
	cfg     *config.ServerConfig
	matcher *similarity.Matcher
	checker *pipeline.Checker
	logger  logging.Logger
	http    *fasthttp.Server
}

// New creates a server. checker may be nil, in which case /api/bugs/check
// answers 503.
func New(cfg *config.ServerConfig, matcher *similarity.Matcher, checker *pipeline.Checker, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Server{
		cfg:     cfg,
		matcher: matcher,
		checker: checker,
		logger:  logger,
	}

	s.http = &fasthttp.Server{
		Handler:               s.Handler,
		Name:                  "debugae",
		ReadTimeout:           time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		MaxRequestBodySize:    cfg.MaxRequestBodyBytes,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	return s
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "address", addr)
		errCh <- s.http.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		if err := s.http.Shutdown(); err != nil {
			return err
		}
		<-errCh
		s.logger.Info("Server stopped")
		return nil
	}
}

// Handler is the fasthttp request handler
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealth(ctx)
	case "/api/bugs/similar":
		s.handleMatch(ctx, s.matcher.SimilarThreshold())
	case "/api/bugs/duplicates":
		s.handleMatch(ctx, s.matcher.DuplicateThreshold())
	case "/api/bugs/check":
		s.handleCheck(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleMatch(ctx *fasthttp.RequestCtx, preset float64) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req MatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	threshold := preset
	if req.Threshold != nil {
		threshold = *req.Threshold
		if threshold < 0 || threshold > 1 {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.writeJSONError(ctx, "threshold must be between 0 and 1")
			return
		}
	}

	draft := models.Draft{Summary: req.Summary, Description: req.Description, ProjectID: req.ProjectID}
	matches := s.matcher.FindSimilar(draft, req.Candidates, threshold)

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, MatchResponse{Matches: matches, Threshold: threshold})
}

func (s *Server) handleCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	if s.checker == nil {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		s.writeJSONError(ctx, "No candidate source configured")
		return
	}

	var req CheckRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	result, err := s.checker.Check(c, models.Draft{Summary: req.Summary, Description: req.Description, ProjectID: req.ProjectID})
	if err != nil {
		s.logger.Error("Check failed", "project", req.ProjectID, "error", err)
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		s.writeJSONError(ctx, "Check failed: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, result)
}

// writeJSONResponse writes a JSON response to the context
func (s *Server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
