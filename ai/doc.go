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


// Package ai defines the embedding provider abstraction.
//
// The engine treats embedding generation as an external capability: given a
// UTF-8 string, a provider returns a fixed-length numeric vector, and two
// providers given the same model configuration must produce deterministic,
// comparable vectors. Production implementations live in ai/openai; test
// doubles live in ai/mock.
package ai
