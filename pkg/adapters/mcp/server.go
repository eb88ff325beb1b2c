package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/runner"
	"github.com/aretw0/walkthrough/pkg/session"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PageURI is the resource exposing the elements of the page.
const PageURI = "walkthrough://page"

// TourResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type TourResponse = runner.RichResponse

// TourView is the result of tour_state.
type TourView struct {
	State       *domain.State     `json:"state" jsonschema_description:"The stored tour state"`
	Placement   *domain.Placement `json:"placement,omitempty" jsonschema_description:"Where the callout sits, when active"`
	Description string            `json:"description,omitempty" jsonschema_description:"Description of the focused step"`
}

// StartArgs are the arguments of tour_start.
type StartArgs struct {
	SessionID  string `json:"session_id,omitempty"`
	TotalSteps *int   `json:"total_steps,omitempty"`
}

// SessionArgs are the arguments of the navigation tools.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// Server wraps a walkthrough Engine and exposes its tours as an MCP Server.
type Server struct {
	engine    *walkthrough.Engine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *walkthrough.Engine, sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("walkthrough-mcp", strings.TrimSpace(walkthrough.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("tour_start",
		mcp.WithDescription("Activate a guided tour of the page. Returns the state and the callout to show."),
		mcp.WithString("session_id", mcp.Description("Session to create or reuse (a random one when omitted)")),
		mcp.WithNumber("total_steps", mcp.Description("Number of steps (defaults to the highest step index tagged on the page)")),
		mcp.WithOutputSchema[TourResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	commands := []struct {
		cmd         domain.Command
		description string
	}{
		{domain.CommandNext, "Advance to the next step, or finish the tour on the last one."},
		{domain.CommandBack, "Return to the previous step. Ignored on the first step."},
		{domain.CommandClose, "Dismiss the tour."},
	}
	for _, c := range commands {
		cmd := c.cmd
		s.mcpServer.AddTool(mcp.NewTool("tour_"+string(cmd),
			mcp.WithDescription(c.description),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by tour_start")),
			mcp.WithOutputSchema[TourResponse](),
		), mcp.NewStructuredToolHandler(func(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (TourResponse, error) {
			return s.handleCommand(ctx, args, cmd)
		}))
	}

	s.mcpServer.AddTool(mcp.NewTool("tour_state",
		mcp.WithDescription("Read the stored state of a tour and the current callout placement."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by tour_start")),
		mcp.WithOutputSchema[TourView](),
	), mcp.NewStructuredToolHandler(s.handleState))
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, args StartArgs) (TourResponse, error) {
	id := args.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	total := s.engine.CountSteps()
	if args.TotalSteps != nil {
		total = *args.TotalSteps
	}

	resp, _, err := runner.StartAndRecord(ctx, s.engine, s.sessions, id, total)
	if err != nil {
		s.logger.Error("MCP tour_start failed", "session_id", id, "err", err)
		return TourResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return *resp, nil
}

func (s *Server) handleCommand(ctx context.Context, args SessionArgs, cmd domain.Command) (TourResponse, error) {
	if args.SessionID == "" {
		return TourResponse{}, errors.New("session_id is required")
	}
	resp, err := runner.CommandAndRecord(ctx, s.engine, s.sessions, args.SessionID, cmd)
	if err != nil {
		s.logger.Warn("MCP command failed", "command", cmd, "session_id", args.SessionID, "err", err)
		return TourResponse{}, fmt.Errorf("%s failed: %w", cmd, err)
	}
	return *resp, nil
}

func (s *Server) handleState(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (TourView, error) {
	if args.SessionID == "" {
		return TourView{}, errors.New("session_id is required")
	}
	state, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return TourView{}, fmt.Errorf("load failed: %w", err)
	}

	view := TourView{State: state}
	if state.Active() {
		tour, err := s.engine.Restore(state, nil)
		if err != nil {
			return TourView{}, err
		}
		if placement, step, err := tour.Current(ctx); err == nil {
			view.Placement = &placement
			view.Description = step.Description
		}
	}
	return view, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PageURI, "Page elements",
		mcp.WithResourceDescription("Elements of the page the tours run on"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		elements, err := s.engine.Inspect()
		if err != nil {
			return nil, fmt.Errorf("failed to inspect page: %w", err)
		}
		body, err := json.Marshal(map[string]any{
			"name":     s.engine.Name,
			"steps":    s.engine.CountSteps(),
			"elements": elements,
		})
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PageURI,
				MIMEType: "application/json",
				Text:     string(body),
			},
		}, nil
	})
}
