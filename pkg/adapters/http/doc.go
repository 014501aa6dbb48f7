// Package http exposes the automata workbench as a JSON API routed with chi.
//
// The contract is described by the embedded openapi.yaml, served at
// /openapi.yaml and browsable at /swagger. Changes to stored snapshots are
// pushed to /events as server-sent events.
package http
