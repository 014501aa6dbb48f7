package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// Workbench is the slice of the automata workbench the HTTP adapter drives.
type Workbench interface {
	Types() []registry.TypeInfo
	Factory(kind domain.Kind) (ports.Factory, error)
	Empty(kind domain.Kind) (*domain.Snapshot, error)
	Simulate(ctx context.Context, snap *domain.Snapshot, input string) (*domain.SimulationResult, error)
	SimulateNamed(ctx context.Context, name, input string) (*domain.SimulationResult, error)
	Convert(ctx context.Context, snap *domain.Snapshot, target domain.Kind) (domain.Conversion, error)
	Validate(snap *domain.Snapshot) error
	ValidateAddTransition(snap *domain.Snapshot, t domain.Transition) (domain.Transition, string, error)
	Library() ports.SnapshotLoader

	Save(ctx context.Context, name string, snap *domain.Snapshot) error
	Load(ctx context.Context, name string) (*domain.Snapshot, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	AddState(ctx context.Context, name string, x, y float64) (*domain.Snapshot, domain.State, error)
	AddTransition(ctx context.Context, name string, t domain.Transition) (*domain.Snapshot, error)
	RemoveState(ctx context.Context, name, id string) (*domain.Snapshot, error)

	Version() string
}

// Server serves the workbench over JSON.
type Server struct {
	Workbench Workbench
	Streams   *StreamManager

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer builds a Server without routing it.
func NewServer(wb Workbench, opts ...Option) *Server {
	s := &Server{Workbench: wb}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates the HTTP handler for the workbench.
func NewHandler(wb Workbench, opts ...Option) http.Handler {
	return enableCORS(NewServer(wb, opts...).Router())
}

// Router returns the chi router with every route mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/types", s.ListTypes)
	r.Get("/types/{kind}", s.GetType)
	r.Get("/types/{kind}/empty", s.GetEmptySnapshot)

	r.Post("/simulate", s.Simulate)
	r.Post("/convert", s.Convert)
	r.Post("/validate", s.Validate)
	r.Post("/transitions/validate", s.ValidateTransition)

	r.Get("/library", s.ListLibrary)
	r.Get("/library/{id}", s.GetLibrarySnapshot)

	r.Get("/snapshots", s.ListSnapshots)
	r.Get("/snapshots/{name}", s.GetSnapshot)
	r.Put("/snapshots/{name}", s.PutSnapshot)
	r.Delete("/snapshots/{name}", s.DeleteSnapshot)
	r.Post("/snapshots/{name}/simulate", s.SimulateSnapshot)
	r.Post("/snapshots/{name}/states", s.AddState)
	r.Delete("/snapshots/{name}/states/{id}", s.RemoveState)
	r.Post("/snapshots/{name}/transitions", s.AddTransition)
	r.Get("/snapshots/{name}/graph", s.GetSnapshotGraph)

	r.Get("/events", s.SubscribeEvents)
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	if errs := schema.ValidationErrors(err); len(errs) > 0 {
		resp.Error = "validation failed"
		for _, e := range errs {
			resp.Details = append(resp.Details, e.Error())
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" rejected", "error", err, "status", status)
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.logger.Warn(op+": invalid request body", "error", err)
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}

func statusFor(err error) int {
	var aggr *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound), errors.Is(err, domain.ErrStateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrKindNotRegistered), errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrInvalidMeta):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransitionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConversionUnsupported), errors.As(err, &aggr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v. With allowEmpty an empty body leaves v untouched.
func decode(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		if allowEmpty {
			return nil
		}
		return errors.New("body required")
	}
	return err
}
