// Copyright 2026 The filetrace Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !linux

package supervisor

import (
	"fmt"
	"runtime"
)

// Run is unsupported outside Linux: ptrace's fork/clone/exec event
// tracing has no portable equivalent.
func Run(path string, args []string, cfg Config) (*Result, error) {
	return nil, fmt.Errorf("supervisor: syscall tracing is not supported on %s", runtime.GOOS)
}
