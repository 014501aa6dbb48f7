package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// Event types published on /events.
const (
	EventSaved   = "saved"
	EventDeleted = "deleted"
	EventUpdated = "updated"
)

// Event describes a change to a stored snapshot.
// Diff is omitted for deletions.
type Event struct {
	Type     string               `json:"type"`
	Snapshot string               `json:"snapshot"`
	Diff     *domain.SnapshotDiff `json:"diff,omitempty"`
}

func (s *Server) publish(kind, name string, diff *domain.SnapshotDiff) {
	data, err := json.Marshal(Event{Type: kind, Snapshot: name, Diff: diff})
	if err != nil {
		return
	}
	s.Streams.Broadcast(name, string(data))
}

// previous returns the stored snapshot, or nil when there is none or nobody listens.
func (s *Server) previous(r *http.Request, name string) *domain.Snapshot {
	if s.Streams.Subscribers(name)+s.Streams.Subscribers(AllSnapshots) == 0 {
		return nil
	}
	snap, err := s.Workbench.Load(r.Context(), name)
	if err != nil {
		return nil
	}
	return snap
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(s.Workbench.Version()),
		"api_version": apiVersion,
	})
}

// ListTypes handles GET /types.
func (s *Server) ListTypes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Workbench.Types())
}

// GetType handles GET /types/{kind}.
func (s *Server) GetType(w http.ResponseWriter, r *http.Request) {
	f, err := s.Workbench.Factory(domain.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, f.Config())
}

// GetEmptySnapshot handles GET /types/{kind}/empty.
func (s *Server) GetEmptySnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Workbench.Empty(domain.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Snapshot *domain.Snapshot `json:"snapshot"`
	Input    string           `json:"input"`
}

// Simulate handles POST /simulate.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := decode(r, &body, false); err != nil {
		s.badRequest(w, "Simulate", err)
		return
	}
	if body.Snapshot == nil {
		s.badRequest(w, "Simulate", fmt.Errorf("snapshot required"))
		return
	}
	res, err := s.Workbench.Simulate(r.Context(), body.Snapshot, body.Input)
	if err != nil {
		s.writeError(w, "Simulate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	Snapshot *domain.Snapshot `json:"snapshot"`
	To       domain.Kind      `json:"to"`
}

// Convert handles POST /convert.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if err := decode(r, &body, false); err != nil {
		s.badRequest(w, "Convert", err)
		return
	}
	if body.Snapshot == nil || body.To == "" {
		s.badRequest(w, "Convert", fmt.Errorf("snapshot and to are required"))
		return
	}
	conv, err := s.Workbench.Convert(r.Context(), body.Snapshot, body.To)
	if err != nil {
		s.writeError(w, "Convert", err)
		return
	}
	s.writeJSON(w, http.StatusOK, conv)
}

// ValidationReport is the body returned by POST /validate.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate handles POST /validate. Invalid snapshots still answer 200.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if err := decode(r, &snap, false); err != nil {
		s.badRequest(w, "Validate", err)
		return
	}
	report := ValidationReport{Valid: true}
	if err := s.Workbench.Validate(&snap); err != nil {
		report.Valid = false
		errs := schema.ValidationErrors(err)
		if len(errs) == 0 {
			errs = []error{err}
		}
		for _, e := range errs {
			report.Errors = append(report.Errors, e.Error())
		}
	}
	s.writeJSON(w, http.StatusOK, report)
}

// TransitionCheckRequest is the body of POST /transitions/validate.
type TransitionCheckRequest struct {
	Snapshot   *domain.Snapshot  `json:"snapshot"`
	Transition domain.Transition `json:"transition"`
}

// TransitionCheck reports whether a transition may be added.
type TransitionCheck struct {
	OK         bool              `json:"ok"`
	Conflict   string            `json:"conflict,omitempty"`
	Transition domain.Transition `json:"transition"`
}

// ValidateTransition handles POST /transitions/validate.
func (s *Server) ValidateTransition(w http.ResponseWriter, r *http.Request) {
	var body TransitionCheckRequest
	if err := decode(r, &body, false); err != nil {
		s.badRequest(w, "ValidateTransition", err)
		return
	}
	if body.Snapshot == nil {
		s.badRequest(w, "ValidateTransition", fmt.Errorf("snapshot required"))
		return
	}
	t, conflict, err := s.Workbench.ValidateAddTransition(body.Snapshot, body.Transition)
	if err != nil {
		s.writeError(w, "ValidateTransition", err)
		return
	}
	s.writeJSON(w, http.StatusOK, TransitionCheck{OK: conflict == "", Conflict: conflict, Transition: t})
}

// ListLibrary handles GET /library.
func (s *Server) ListLibrary(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Workbench.Library().List(r.Context())
	if err != nil {
		s.writeError(w, "ListLibrary", err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(ids))
}

// GetLibrarySnapshot handles GET /library/{id}.
func (s *Server) GetLibrarySnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Workbench.Library().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "GetLibrarySnapshot", err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// ListSnapshots handles GET /snapshots.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	names, err := s.Workbench.List(r.Context())
	if err != nil {
		s.writeError(w, "ListSnapshots", err)
		return
	}
	s.writeJSON(w, http.StatusOK, nonNil(names))
}

// GetSnapshot handles GET /snapshots/{name}.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Workbench.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "GetSnapshot", err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PutSnapshot handles PUT /snapshots/{name}.
func (s *Server) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var snap domain.Snapshot
	if err := decode(r, &snap, false); err != nil {
		s.badRequest(w, "PutSnapshot", err)
		return
	}
	old := s.previous(r, name)
	if err := s.Workbench.Save(r.Context(), name, &snap); err != nil {
		s.writeError(w, "PutSnapshot", err)
		return
	}
	s.publish(EventSaved, name, domain.Diff(old, &snap))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSnapshot handles DELETE /snapshots/{name}.
func (s *Server) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Workbench.Delete(r.Context(), name); err != nil {
		s.writeError(w, "DeleteSnapshot", err)
		return
	}
	s.publish(EventDeleted, name, nil)
	w.WriteHeader(http.StatusNoContent)
}

// SimulateSnapshot handles POST /snapshots/{name}/simulate.
func (s *Server) SimulateSnapshot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Input string `json:"input"`
	}
	if err := decode(r, &body, true); err != nil {
		s.badRequest(w, "SimulateSnapshot", err)
		return
	}
	res, err := s.Workbench.SimulateNamed(r.Context(), chi.URLParam(r, "name"), body.Input)
	if err != nil {
		s.writeError(w, "SimulateSnapshot", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// AddState handles POST /snapshots/{name}/states.
func (s *Server) AddState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decode(r, &body, true); err != nil {
		s.badRequest(w, "AddState", err)
		return
	}
	old := s.previous(r, name)
	snap, st, err := s.Workbench.AddState(r.Context(), name, body.X, body.Y)
	if err != nil {
		s.writeError(w, "AddState", err)
		return
	}
	s.publish(EventUpdated, name, domain.Diff(old, snap))
	s.writeJSON(w, http.StatusCreated, st)
}

// RemoveState handles DELETE /snapshots/{name}/states/{id}.
func (s *Server) RemoveState(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	old := s.previous(r, name)
	snap, err := s.Workbench.RemoveState(r.Context(), name, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "RemoveState", err)
		return
	}
	s.publish(EventUpdated, name, domain.Diff(old, snap))
	s.writeJSON(w, http.StatusOK, snap)
}

// AddTransition handles POST /snapshots/{name}/transitions.
func (s *Server) AddTransition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var t domain.Transition
	if err := decode(r, &t, false); err != nil {
		s.badRequest(w, "AddTransition", err)
		return
	}
	old := s.previous(r, name)
	snap, err := s.Workbench.AddTransition(r.Context(), name, t)
	if err != nil {
		s.writeError(w, "AddTransition", err)
		return
	}
	s.publish(EventUpdated, name, domain.Diff(old, snap))
	s.writeJSON(w, http.StatusCreated, snap)
}

// GetSnapshotGraph handles GET /snapshots/{name}/graph.
// With ?input= the trace of that run is overlaid at ?step= (default: last step).
func (s *Server) GetSnapshotGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Workbench.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "GetSnapshotGraph", err)
		return
	}
	f, err := s.Workbench.Factory(snap.Type)
	if err != nil {
		s.writeError(w, "GetSnapshotGraph", err)
		return
	}

	var overlay *graph.GraphOverlay
	q := r.URL.Query()
	if q.Has("input") {
		res, err := s.Workbench.Simulate(r.Context(), snap, q.Get("input"))
		if err != nil {
			s.writeError(w, "GetSnapshotGraph", err)
			return
		}
		step := len(res.Steps) - 1
		if raw := q.Get("step"); raw != "" {
			step, err = strconv.Atoi(raw)
			if err != nil {
				s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "step must be an integer"})
				return
			}
		}
		overlay = graph.OverlayFromSteps(res.Steps, step)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(snap, f.FormatTransitionLabel, overlay)))
}

// SubscribeEvents handles GET /events (SSE). ?snapshot= narrows the stream to one name.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	name := r.URL.Query().Get("snapshot")
	ch, cancel := s.Streams.Subscribe(name)
	defer cancel()
	s.logger.Info("SSE: subscribed", "snapshot", name)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "snapshot", name)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
