package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/runner"
	"github.com/aretw0/walkthrough/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes tours of one engine over HTTP.
type Server struct {
	Engine   *walkthrough.Engine
	Sessions *session.Manager
	Streams  *StreamManager

	logger     *slog.Logger
	metrics    http.Handler
	apiVersion string
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler replaces the default Prometheus handler served on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// StartRequest is the body of POST /tours.
type StartRequest struct {
	SessionID  string `json:"session_id,omitempty"`
	TotalSteps *int   `json:"total_steps,omitempty"`
}

// TourResponse carries the state after a command and the host effects it produced.
type TourResponse = runner.RichResponse

// TourView is the body of GET /tours/{id}.
type TourView struct {
	State       *domain.State     `json:"state"`
	Placement   *domain.Placement `json:"placement,omitempty"`
	Description string            `json:"description,omitempty"`
}

// TourUpdate is the payload of every SSE message.
type TourUpdate struct {
	Diff    *domain.StateDiff `json:"diff,omitempty"`
	Effects []domain.Effect   `json:"effects"`
}

// NewServer creates a server. The embedded OpenAPI document is validated once here.
func NewServer(engine *walkthrough.Engine, sessions *session.Manager, opts ...Option) (*Server, error) {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   slog.Default(),
		metrics:  promhttp.Handler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s.apiVersion = doc.Info.Version
	return s, nil
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine *walkthrough.Engine, sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, sessions, opts...)
	if err != nil {
		return nil, err
	}
	return s.Routes(), nil
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetSpec)
	r.Handle("/metrics", s.metrics)
	r.Get("/page", s.GetPage)

	r.Route("/tours", func(r chi.Router) {
		r.Get("/", s.ListTours)
		r.Post("/", s.StartTour)
		r.Get("/{id}", s.GetTour)
		r.Delete("/{id}", s.DeleteTour)
		r.Get("/{id}/events", s.SubscribeEvents)
		r.Post("/{id}/{command}", s.ApplyCommand)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "walkthrough-http",
		"version":     strings.TrimSpace(walkthrough.Version),
		"api_version": s.apiVersion,
		"page":        s.Engine.Name,
	})
}

// GetSpec serves the embedded OpenAPI document.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(RawSpec())
}

// GetPage handles the GET /page request.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	elements, err := s.Engine.Inspect()
	if err != nil {
		s.writeError(w, http.StatusNotImplemented, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"name":     s.Engine.Name,
		"steps":    s.Engine.CountSteps(),
		"elements": elements,
	})
}

// ListTours handles the GET /tours request.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.logger.Error("list sessions failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// StartTour handles the POST /tours request.
func (s *Server) StartTour(w http.ResponseWriter, r *http.Request) {
	var body StartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("StartTour: invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	id := body.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	total := s.Engine.CountSteps()
	if body.TotalSteps != nil {
		total = *body.TotalSteps
	}

	resp, loaded, err := runner.StartAndRecord(r.Context(), s.Engine, s.Sessions, id, total)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	s.publish(id, resp)

	status := http.StatusCreated
	if loaded {
		status = http.StatusOK
	}
	w.Header().Set("Location", "/tours/"+id)
	s.writeJSON(w, status, resp)
}

// GetTour handles the GET /tours/{id} request.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}

	view := TourView{State: state}
	if state.Active() {
		tour, err := s.Engine.Restore(state, nil)
		if err != nil {
			s.writeError(w, http.StatusConflict, err)
			return
		}
		// A target removed since the last command leaves the placement empty.
		if placement, step, err := tour.Current(r.Context()); err == nil {
			view.Placement = &placement
			view.Description = step.Description
		}
	}
	s.writeJSON(w, http.StatusOK, view)
}

// DeleteTour handles the DELETE /tours/{id} request.
func (s *Server) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyCommand handles the POST /tours/{id}/{command} request.
func (s *Server) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cmd, err := domain.ParseCommand(chi.URLParam(r, "command"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := runner.CommandAndRecord(r.Context(), s.Engine, s.Sessions, id, cmd)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	s.publish(id, resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// publish sends the diff and effects of a command to the SSE subscribers of the session.
func (s *Server) publish(id string, resp *TourResponse) {
	s.logger.Debug("tour updated", "session_id", id, "phase", resp.State.Phase, "step", resp.State.CurrentStep, "effects", len(resp.Effects))

	if resp.Diff == nil && len(resp.Effects) == 0 {
		return
	}
	b, err := json.Marshal(TourUpdate{Diff: resp.Diff, Effects: resp.Effects})
	if err != nil {
		s.logger.Error("SSE: update encode failed", "session_id", id, "err", err)
		return
	}
	s.Streams.Broadcast(id, string(b))
}

// SubscribeEvents handles the GET /tours/{id}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	id := chi.URLParam(r, "id")
	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: subscribed", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: update\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeSessionError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidState):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.logger.Error("session operation failed", "session_id", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}
