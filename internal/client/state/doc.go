// Package state holds the Application State Cache: the in-memory working copy
// of the Snapshot, its mutations and the policy that flushes it back to the
// State Gateway.
//
// # Lifecycle
//
//	Uninitialized -> Loading -> Clean <-> Dirty -> Flushing -> Clean | Dirty
//
// Load runs once. It applies the versioned legacy migrations and, when they
// changed anything, flushes before the cache accepts mutations, so generated
// ids are durable before the first edit.
//
// # Dirty tracking
//
// The cache keeps the serialized form of the last successfully flushed
// Snapshot as its baseline. Dirty means the current Snapshot serializes
// differently; a mutation that reproduces the stored content is not dirty.
//
// # Flushing
//
// Every flush path (write-through after a mutation, the periodic tick, an
// explicit Flush and the forced Shutdown flush) goes through one single-flight
// routine. A flush captures the Snapshot at the moment it starts; mutations
// made while it is in flight land in memory immediately and are picked up by
// the next flush. A failed flush leaves the cache Dirty with the baseline
// unchanged; the failure is logged and retried on the next tick or mutation.
package state
