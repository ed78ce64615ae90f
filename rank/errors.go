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


package rank

import "errors"

var (
	// ErrEmptyPolicy is returned when a policy is built from an empty
	// multiplier table.
	ErrEmptyPolicy = errors.New("tier policy has no multipliers")

	// ErrUnknownTier is returned when a candidate's tier has no
	// configured multiplier. Ranking is all-or-nothing: one unknown
	// tier aborts the whole run rather than silently skipping rows.
	ErrUnknownTier = errors.New("unknown tier")
)
