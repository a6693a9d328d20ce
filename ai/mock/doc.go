// Package mock provides test doubles for the ai interfaces.
//
// The mock embedder defaults to deterministic FNV-hash-derived vectors so
// tests get stable similarity scores without a live embedding service, and
// exposes function fields for injecting custom behavior per test.
package mock
