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

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Workbench is the part of the automata workbench exposed as MCP tools.
type Workbench interface {
	Types() []registry.TypeInfo
	Factory(kind domain.Kind) (ports.Factory, error)
	Simulate(ctx context.Context, snap *domain.Snapshot, input string) (*domain.SimulationResult, error)
	Convert(ctx context.Context, snap *domain.Snapshot, target domain.Kind) (domain.Conversion, error)
	Validate(snap *domain.Snapshot) error
	Library() ports.SnapshotLoader
	Save(ctx context.Context, name string, snap *domain.Snapshot) error
	Load(ctx context.Context, name string) (*domain.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Version() string
}

// TypesResponse lists the registered machine kinds.
type TypesResponse struct {
	Types []registry.TypeInfo `json:"types" jsonschema_description:"Registered machine kinds in canonical order"`
}

// ValidationResponse reports structural problems of a snapshot.
type ValidationResponse struct {
	Valid  bool     `json:"valid" jsonschema_description:"True when the snapshot has no structural problems"`
	Errors []string `json:"errors,omitempty" jsonschema_description:"One entry per problem found"`
}

// Server exposes a Workbench as an MCP server.
type Server struct {
	wb        Workbench
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server for wb.
func NewServer(wb Workbench, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		wb:        wb,
		logger:    logger,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(wb.Version())),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on port using SSE until ctx is done.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Every tool that works on a machine accepts one of these three sources.
func sourceOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("snapshot", mcp.Description("Snapshot as a JSON document")),
		mcp.WithString("name", mcp.Description("Name of a stored snapshot")),
		mcp.WithString("example", mcp.Description("ID of a library example")),
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_types",
		mcp.WithDescription("List the machine kinds the workbench can build and simulate."),
		mcp.WithOutputSchema[TypesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListTypes))

	simulate := append([]mcp.ToolOption{
		mcp.WithDescription("Run an input word through a machine and return the step-by-step trace."),
		mcp.WithString("input", mcp.Description("Input word; symbols may be multi-character")),
		mcp.WithOutputSchema[domain.SimulationResult](),
	}, sourceOptions()...)
	s.mcpServer.AddTool(mcp.NewTool("simulate", simulate...), mcp.NewStructuredToolHandler(s.handleSimulate))

	convert := append([]mcp.ToolOption{
		mcp.WithDescription("Convert a machine to another kind. Lossy conversions return warnings."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Target kind: dfa, nfa, mealy, moore, pda or turing")),
		mcp.WithOutputSchema[domain.Conversion](),
	}, sourceOptions()...)
	s.mcpServer.AddTool(mcp.NewTool("convert", convert...), mcp.NewStructuredToolHandler(s.handleConvert))

	validate := append([]mcp.ToolOption{
		mcp.WithDescription("Check a machine for structural problems."),
		mcp.WithOutputSchema[ValidationResponse](),
	}, sourceOptions()...)
	s.mcpServer.AddTool(mcp.NewTool("validate", validate...), mcp.NewStructuredToolHandler(s.handleValidate))

	render := append([]mcp.ToolOption{
		mcp.WithDescription("Render a machine as a Mermaid flowchart, optionally highlighting the end of a run."),
		mcp.WithString("input", mcp.Description("Input word whose final step is highlighted")),
	}, sourceOptions()...)
	s.mcpServer.AddTool(mcp.NewTool("render_graph", render...), s.handleRenderGraph)

	s.mcpServer.AddTool(mcp.NewTool("list_snapshots",
		mcp.WithDescription("List stored snapshot names and library example IDs."),
	), s.handleListSnapshots)

	s.mcpServer.AddTool(mcp.NewTool("save_snapshot",
		mcp.WithDescription("Validate and store a snapshot under a name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to store the snapshot under")),
		mcp.WithString("snapshot", mcp.Required(), mcp.Description("Snapshot as a JSON document")),
	), s.handleSaveSnapshot)
}

// resolve picks the snapshot named by args: inline JSON first, then a stored name, then a library example.
func (s *Server) resolve(ctx context.Context, args map[string]interface{}) (*domain.Snapshot, error) {
	if raw, _ := args["snapshot"].(string); raw != "" {
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
		}
		return &snap, nil
	}
	if name, _ := args["name"].(string); name != "" {
		return s.wb.Load(ctx, name)
	}
	if id, _ := args["example"].(string); id != "" {
		return s.wb.Library().Get(ctx, id)
	}
	return nil, errors.New("one of snapshot, name or example is required")
}

func (s *Server) handleListTypes(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TypesResponse, error) {
	return TypesResponse{Types: s.wb.Types()}, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.SimulationResult, error) {
	snap, err := s.resolve(ctx, args)
	if err != nil {
		return domain.SimulationResult{}, err
	}
	input, _ := args["input"].(string)
	res, err := s.wb.Simulate(ctx, snap, input)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("simulate failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Conversion, error) {
	snap, err := s.resolve(ctx, args)
	if err != nil {
		return domain.Conversion{}, err
	}
	to, _ := args["to"].(string)
	conv, err := s.wb.Convert(ctx, snap, domain.Kind(to))
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("convert failed: %w", err)
	}
	return conv, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidationResponse, error) {
	snap, err := s.resolve(ctx, args)
	if err != nil {
		return ValidationResponse{}, err
	}
	resp := ValidationResponse{Valid: true}
	if err := s.wb.Validate(snap); err != nil {
		resp.Valid = false
		errs := schema.ValidationErrors(err)
		if len(errs) == 0 {
			errs = []error{err}
		}
		for _, e := range errs {
			resp.Errors = append(resp.Errors, e.Error())
		}
	}
	return resp, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	snap, err := s.resolve(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := s.wb.Factory(snap.Type)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var overlay *graph.GraphOverlay
	if input, ok := args["input"].(string); ok {
		res, err := s.wb.Simulate(ctx, snap, input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("simulate failed: %v", err)), nil
		}
		overlay = graph.OverlayFromSteps(res.Steps, len(res.Steps)-1)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(snap, f.FormatTransitionLabel, overlay)), nil
}

func (s *Server) handleListSnapshots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stored, err := s.wb.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	examples, err := s.wb.Library().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("library failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(map[string][]string{
		"snapshots": nonNil(stored),
		"examples":  nonNil(examples),
	})
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSaveSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	snap, err := s.resolve(ctx, map[string]interface{}{"snapshot": args["snapshot"]})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.wb.Save(ctx, name, snap); err != nil {
		s.logger.Warn("MCP save_snapshot rejected", "name", name, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved %s (%s, %d states)", name, snap.Type, len(snap.States))), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("automata://types", "Machine kinds",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.wb.Types())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://types",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate("automata://examples/{id}", "Library example",
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := strings.TrimPrefix(request.Params.URI, "automata://examples/")
		snap, err := s.wb.Library().Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load example: %w", err)
		}
		jsonBytes, _ := json.Marshal(snap)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
