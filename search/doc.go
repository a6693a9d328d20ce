// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search provides multi-signal relevance ranking over indexed cells.
//
// The Searcher fuses three signals per cell into one relevance score:
//   - Semantic similarity between the expanded query embedding and the
//     cell embedding
//   - Concept overlap between the cell's tags and the raw query
//   - Contextual word overlap with header and sheet names
//
// Query expansion appends catalog concept names whose precomputed embeddings
// are similar to the raw query; expansion affects only the semantic signal.
// Results below the relevance floor are dropped; the rest are returned in
// stable descending score order.
package search
