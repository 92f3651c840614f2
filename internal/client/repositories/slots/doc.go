// Package slots stores the header's named string payloads: the credential
// token, the serialised identity and the one-shot logged-out marker.
//
// Backends
//
//   - SQLiteRepository — durable, survives restarts (default persistent store).
//   - RedisRepository  — durable, shared between processes.
//   - MemoryRepository — process-lifetime; used for tab-scoped transient flags
//     and as a fake in tests.
//
// Contract
//
// Get returns (nil, nil) for a missing key. Put and Delete are atomic across
// all keys they touch, so token and identity are never half-written. Delete of
// a missing key is not an error.
package slots
