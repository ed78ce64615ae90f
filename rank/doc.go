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


// Package rank weights similarity candidates by tier and orders them.
//
// A Policy maps tier names to score multipliers. Apply turns candidates
// into results by multiplying raw similarity with the tier multiplier,
// Order sorts by weighted score descending with a stable tie-break, and
// Top truncates to the configured result count.
package rank
