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


// Package concepts provides the static business-concept taxonomy and the
// tagger that maps free text onto it.
//
// The Catalog is an immutable, explicitly constructed value holding named
// business concepts grouped by category, each with synonyms, keyword
// triggers and a description. The Tagger matches text against the catalog
// using word containment, then layers structural pattern rules (ratios,
// percentages, growth terms) and formula-function rules on top.
package concepts
