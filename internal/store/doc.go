// Package store implements the persistent key-value adapter the repositories are built on.
//
// A [Store] maps string keys to opaque string values. Writes overwrite the whole value and
// are durable once Set returns. Reading a key that was never written returns [ErrNotFound],
// which is distinct from every other failure.
//
// Backends:
//   - [SQLiteStore] : a single kv table in a migrated SQLite database (default)
//   - [RedisStore] : keys namespaced under a prefix in a Redis database
//   - [MemoryStore] : a mutex guarded map, used by tests and throwaway sessions
//
// [Open] selects a backend from [shared.StoreConfig].
package store
