// Package httpapi exposes the terminal over JSON/HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/nlterm/internal/application/builtins"
	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/pkg/logger"
	"github.com/doeshing/nlterm/internal/ports"
)

const (
	statusSuccess = "success"
	statusError   = "error"
	maxBodyBytes  = 1 << 20
)

// Server routes API requests to sessions in a Registry.
type Server struct {
	registry    *Registry
	logger      ports.Logger
	allowOrigin string
	now         func() time.Time
}

// NewServer builds the API. An empty allowOrigin means "*".
func NewServer(registry *Registry, log ports.Logger, allowOrigin string) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &Server{registry: registry, logger: log, allowOrigin: allowOrigin, now: time.Now}
}

type executeRequest struct {
	Command         string `json:"command"`
	NaturalLanguage bool   `json:"natural_language"`
}

type executeResponse struct {
	Status        string  `json:"status"`
	Command       string  `json:"command"`
	AITranslation *string `json:"ai_translation"`
	Output        string  `json:"output"`
	ExitCode      int     `json:"exit_code"`
	Error         *string `json:"error"`
	CurrentPath   string  `json:"current_path"`
	Timestamp     string  `json:"timestamp"`
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Status     string  `json:"status"`
	Original   string  `json:"original"`
	Translated *string `json:"translated"`
	Timestamp  string  `json:"timestamp"`
}

type terminalResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CurrentPath string `json:"current_path"`
	Timestamp   string `json:"timestamp"`
}

type helpResponse struct {
	Status   string `json:"status"`
	Help     string `json:"help"`
	ExitCode int    `json:"exit_code"`
}

type sessionResponse struct {
	Status      string `json:"status"`
	SessionID   string `json:"session_id"`
	CurrentPath string `json:"current_path"`
}

type errorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Handler returns the routed API with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/terminal", s.handleTerminal)
	mux.HandleFunc("GET /api/help", s.handleHelp)
	mux.HandleFunc("POST /api/execute", s.handleExecute)
	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/session", s.handleSession)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Status: statusError, Message: "Not found"})
	})
	return s.cors(s.logRequests(mux))
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.allowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+domain.SessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", map[string]interface{}{
			"method":  r.Method,
			"path":    r.URL.Path,
			"session": r.Header.Get(domain.SessionHeader),
			"elapsed": time.Since(start).String(),
		})
	})
}

func (s *Server) timestamp() string {
	return s.now().Format(domain.TimestampFormat)
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	var path string
	err := s.registry.With(r.Header.Get(domain.SessionHeader), func(svc *terminal.Service) {
		path = svc.CurrentPath()
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, terminalResponse{
		Status:      statusSuccess,
		Message:     "nlterm API",
		CurrentPath: path,
		Timestamp:   s.timestamp(),
	})
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, helpResponse{Status: statusSuccess, Help: builtins.HelpText})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !s.decode(w, r, &req) {
		return
	}
	var (
		res  domain.CommandResult
		path string
	)
	err := s.registry.With(r.Header.Get(domain.SessionHeader), func(svc *terminal.Service) {
		res = svc.Execute(r.Context(), req.Command, req.NaturalLanguage)
		path = svc.CurrentPath()
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, executeResponse{
		Status:        statusSuccess,
		Command:       req.Command,
		AITranslation: nullable(res.AITranslation),
		Output:        res.Output,
		ExitCode:      res.ExitCode,
		Error:         nullable(res.Error),
		CurrentPath:   path,
		Timestamp:     s.timestamp(),
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !s.decode(w, r, &req) {
		return
	}
	var translated *string
	err := s.registry.With(r.Header.Get(domain.SessionHeader), func(svc *terminal.Service) {
		if cmd, ok := svc.Translate(req.Text); ok {
			translated = &cmd
		}
	})
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, translateResponse{
		Status:     statusSuccess,
		Original:   req.Text,
		Translated: translated,
		Timestamp:  s.timestamp(),
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id, svc, err := s.registry.Create()
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{
		Status:      statusSuccess,
		SessionID:   id,
		CurrentPath: svc.CurrentPath(),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:    statusError,
			Message:   fmt.Sprintf("invalid JSON body: %v", err),
			Timestamp: s.timestamp(),
		})
		return false
	}
	return true
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionLimit):
		status = http.StatusTooManyRequests
	}
	s.writeJSON(w, status, errorResponse{Status: statusError, Message: err.Error(), Timestamp: s.timestamp()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", map[string]interface{}{"error": err.Error()})
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Serve runs handler on ln until ctx is cancelled, then shuts down within
// domain.DefaultShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log ports.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", map[string]interface{}{"addr": ln.Addr().String()})
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
