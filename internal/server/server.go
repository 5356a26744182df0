// Package server provides the HTTP handlers and routing for the MCP server.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eagle-mcp/internal/eagle"
	"eagle-mcp/internal/logger"
	"eagle-mcp/internal/operation"
)

// Config contains HTTP transport settings.
type Config struct {
	Port  string
	Token string
}

// Server routes tool calls received over HTTP to the Eagle client.
type Server struct {
	cfg      Config
	router   *chi.Mux
	client   *eagle.Client
	registry *operation.Registry
	log      *slog.Logger
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, client *eagle.Client, reg *operation.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		client:   client,
		registry: reg,
		log:      logger.ForComponent("http"),
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.auth)
		for _, d := range reg.List() {
			r.Method(d.Method, d.Path, s.operationHandler(d))
		}
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	descs := s.registry.List()
	tools := make([]Tool, 0, len(descs))
	for _, d := range descs {
		tools = append(tools, Tool{
			Name:        d.Name,
			Title:       d.Title,
			Description: d.Description,
			InputSchema: d.Schema(),
			Annotations: d.Annotations(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	d, err := s.registry.Lookup(req.Name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, eagle.Failure("unknown tool: %s", req.Name))
		return
	}
	resp, ok := s.invoke(w, r, d, req.Args)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp.Envelope)
}

// operationHandler serves one operation at its Eagle path. GET reads arguments
// from the query string, POST from a JSON object body.
func (s *Server) operationHandler(d operation.Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var args map[string]any
		if r.Method == http.MethodGet {
			a, err := operation.ArgsFromQuery(d, r.URL.Query())
			if err != nil {
				s.writeValidation(w, err)
				return
			}
			args = a
		} else if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		resp, ok := s.invoke(w, r, d, args)
		if !ok {
			return
		}
		if d.Binary && resp.Envelope.OK() {
			if resp.ContentType != "" {
				w.Header().Set("Content-Type", resp.ContentType)
			}
			w.Header().Set("Content-Length", strconv.Itoa(len(resp.Content)))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(resp.Content)
			return
		}
		writeJSON(w, http.StatusOK, resp.Envelope)
	}
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request, d operation.Descriptor, args map[string]any) (eagle.Response, bool) {
	resp, err := operation.Invoke(r.Context(), s.client, d, args)
	if err != nil {
		s.writeValidation(w, err)
		return eagle.Response{}, false
	}
	if !resp.Envelope.OK() {
		s.log.Warn("operation failed", "tool", d.Name, "message", resp.Envelope.Message)
	}
	return resp, true
}

func (s *Server) writeValidation(w http.ResponseWriter, err error) {
	if errors.Is(err, operation.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, eagle.Failure("invalid arguments: %v", err))
		return
	}
	s.log.Error("operation error", "err", err)
	writeJSON(w, http.StatusInternalServerError, eagle.Failure("%v", err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
