// Package indexing turns raw grid data into immutable, searchable snapshots.
//
// The Indexer walks every sheet of a grid, skips blank scalars, derives
// per-column header context from the first row, and tags each remaining cell
// with business concepts. The EmbeddingStage then computes one embedding per
// cell, in concurrent batches, before the cells are published as a Snapshot.
// A snapshot is never mutated after construction; data reloads build a fresh
// snapshot off to the side and swap it in atomically.
package indexing
