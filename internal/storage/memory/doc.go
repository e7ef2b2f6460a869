// Package memory provides in-memory storage for GridMatch.
//
// It implements the lobby registry using concurrent-safe data
// structures with sharded locking for high performance.
//
// Features:
//
//   - Sharded Storage: Lobbies distributed across shards for parallelism
//   - Secondary Index: Fast lookup of a lobby by session ID
//   - Live Entities: Lobbies carry their own mutex; the store never clones
//
// Thread Safety:
//
// All operations are thread-safe through fine-grained locking. The
// store lock covers cross-index writes; per-lobby state is guarded by
// the lobby's own mutex.
package memory
