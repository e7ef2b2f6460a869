// Package cmap provides a concurrent map implementation for GridMatch.
//
// This package implements a sharded concurrent map optimized for
// lobby and session storage with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[*Lobby]()
//	m.Set("AB12XY", lobby)
//	val, ok := m.Get("AB12XY")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock.
package cmap
