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

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a catalog Document according to domain rules.
//
// Validation rules:
//   - DocID must not be empty or whitespace
//   - Tier must not be empty or whitespace
//   - Content must not be empty or whitespace
//
// NOT validated:
//   - Source and Title (optional catalog fields)
//   - Tier membership in the configured multiplier table (a policy
//     concern, checked at ranking time)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if strings.TrimSpace(doc.DocID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocID)
	}

	if strings.TrimSpace(doc.Tier) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTier)
	}

	if strings.TrimSpace(doc.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}
