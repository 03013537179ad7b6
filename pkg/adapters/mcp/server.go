package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/multivar"
	"github.com/aretw0/multivar/pkg/ports"
	"github.com/aretw0/multivar/pkg/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OperationsURI is the resource listing every tool with its parameters.
const OperationsURI = "multivar://operations"

// HistoryURI is the resource holding the most recent journal entries.
const HistoryURI = "multivar://history"

const historyLimit = 50

// Service is the calculus service exposed as MCP tools.
type Service interface {
	Dispatch(ctx context.Context, name string, params map[string]any) (any, error)
	Operations() []service.OperationInfo
	Info() service.Info
	History(ctx context.Context, limit int) ([]ports.JournalEntry, error)
}

// Server wraps the Service and exposes it as an MCP Server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls and the SSE listener.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server with one tool per service operation.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("multivar-mcp", multivar.Version, server.WithToolCapabilities(false)),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
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
	for _, op := range s.svc.Operations() {
		s.mcpServer.AddTool(newTool(op), s.handler(op.Name))
	}

	s.mcpServer.AddTool(mcp.NewTool("info",
		mcp.WithDescription("Report the kernel version, numeric settings and request limits."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultStructuredOnly(s.svc.Info()), nil
	})
}

// newTool maps an operation's parameters onto an MCP input schema.
func newTool(op service.OperationInfo) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Summary)}
	for _, p := range op.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Kind {
		case service.ParamNumber, service.ParamInt:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case service.ParamBool:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case service.ParamPoint, service.ParamVector, service.ParamLevels:
			props = append(props, mcp.Items(map[string]any{"type": "number"}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		case service.ParamPoints, service.ParamPaths:
			props = append(props, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(op.Name, opts...)
}

// handler dispatches a tool call. Calculus failures become tool errors, never protocol errors.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := s.svc.Dispatch(ctx, name, request.GetArguments())
		if err != nil {
			s.logger.Debug("MCP tool failed", "tool", name, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultStructuredOnly(result), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(OperationsURI, "Operation Catalogue",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(OperationsURI, s.svc.Operations())
	})

	s.mcpServer.AddResource(mcp.NewResource(HistoryURI, "Recent Operations",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := s.svc.History(ctx, historyLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		return jsonResource(HistoryURI, entries)
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
