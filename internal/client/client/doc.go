// Package client connects the application state cache to a State Gateway.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Gateway interface): Load, Flush,
//     Status and Close.
//  2. A gRPC implementation (see GRPCClient) that talks to a standalone
//     gateway process and maps gRPC status codes to sentinel errors.
//  3. An in-process implementation (see Local) that opens the SQLite store
//     directly.
//
// Both implementations pass snapshots through the same JSON message codec
// and validate them on receipt, so the cache observes identical behavior
// whether or not the gateway runs in the same process.
//
// # Error Handling
//
// Conditions callers may match with errors.Is: ErrUnavailable,
// common.ErrInvalidSnapshot, common.ErrStorageUnavailable.
//
// # Concurrency & Contexts
//
// Implementations are safe for concurrent use. All operations accept
// context.Context and honor cancellation.
//
// See Also
//
//   - Interface:  Gateway
//   - gRPC impl:  GRPCClient
//   - Local impl: Local, OpenLocal
//   - Selection:  Connect
package client
