/*
Package ports defines the interfaces between the automata engine and the outside world.

These interfaces decouple the per-kind simulation logic from the registry, the
persistence backends and the outer surfaces (CLI, HTTP, MCP).

# Key Interfaces

  - Factory: One machine kind (configuration, empty snapshot, validation and simulation).
  - Converter: Optional capability of a Factory to convert snapshots of other kinds.
  - SnapshotStore: Persists named snapshots (memory, file, Redis).
  - SnapshotLoader: Read-only source of snapshots (e.g. a Loam library).
  - DistributedLocker: Coordinates concurrent edits of the same snapshot across replicas.
*/
package ports
