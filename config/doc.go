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


// Package config loads retrieval settings from a JSON file.
//
// Settings live in a settings.json with a retrieval section (top_k,
// tier_multipliers, optional seed) and an embedding section (host,
// model, batch_size). Any scalar can be overridden through the
// environment with the RANKIT_ prefix, e.g. RANKIT_EMBEDDING_HOST.
package config
