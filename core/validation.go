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

import "fmt"

// ValidateGrid validates a Grid according to the input contract.
//
// Validation rules:
//   - Every sheet must have a non-empty name
//   - Sheet names must be unique within the grid
//
// NOT validated:
//   - Row lengths (ragged rows are legal)
//   - Cell contents (any scalar variant is legal, including blanks)
//
// A grid with zero sheets is valid; indexing it yields no cells.
func ValidateGrid(grid Grid) error {
	seen := make(map[string]bool, len(grid.Sheets))
	for _, sheet := range grid.Sheets {
		if sheet.Name == "" {
			return fmt.Errorf("%w: %w", ErrInvalidGrid, ErrEmptySheetName)
		}
		if seen[sheet.Name] {
			return fmt.Errorf("%w: %w: %q", ErrInvalidGrid, ErrDuplicateSheetName, sheet.Name)
		}
		seen[sheet.Name] = true
	}
	return nil
}
