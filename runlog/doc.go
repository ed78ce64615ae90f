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


// Package runlog writes the plain-text audit trail for retrieval runs.
//
// Every run produces one log file under the log directory, named
// rankit_run_<YYYYMMDD_HHMMSS>.log after the run timestamp. The file
// records who ran the query, with which settings, against which
// embedding index, and what came back. Logs are append-only artifacts:
// the writer never overwrites an existing file.
package runlog
