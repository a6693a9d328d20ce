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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidGrid indicates a Grid failed structural validation.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrEmptySheetName indicates a sheet with an empty name.
	ErrEmptySheetName = errors.New("sheet name cannot be empty")

	// ErrDuplicateSheetName indicates two sheets sharing one name.
	ErrDuplicateSheetName = errors.New("duplicate sheet name")

	// ErrInvalidCellRef indicates a malformed cell reference or column label.
	ErrInvalidCellRef = errors.New("invalid cell reference")
)
