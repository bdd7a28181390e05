// Package storage defines the persistence contracts for simulation runs:
// a durable journal of recording records and a snapshot store for resuming
// long runs without replaying from the start.
//
// Backends live in subpackages. The sqlite journal is the durable default,
// bbolt backs the snapshot store.
package storage
