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


package config

import "errors"

var (
	// ErrInvalidTopK is returned when top_k is below 1.
	ErrInvalidTopK = errors.New("top_k must be at least 1")

	// ErrNoMultipliers is returned when the tier multiplier table is empty.
	ErrNoMultipliers = errors.New("tier_multipliers must not be empty")

	// ErrInvalidMultiplier is returned when a tier multiplier is zero
	// or negative.
	ErrInvalidMultiplier = errors.New("tier multiplier must be positive")
)
