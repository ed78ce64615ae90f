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


// Package search turns a free-text query into similarity candidates.
//
// The Searcher type embeds the query, normalizes the resulting vector,
// and scores it against every cached document vector in a loaded index.
// Because both sides are unit length, the dot product is the cosine
// similarity. Candidates come back in row order, unranked; tier
// weighting and ordering are the rank package's job.
package search
