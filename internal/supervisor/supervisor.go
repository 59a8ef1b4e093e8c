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

package supervisor

import (
	"strconv"
	"time"

	"github.com/kestrelcode/filetrace/internal/eventlog"
	"github.com/kestrelcode/filetrace/internal/tracee"
)

// Config threads the supervisor-scoped options through to the path
// normalizer's within() call; see spec.md §9 on avoiding process-global
// flags.
type Config struct {
	BaseDir          string
	DisableFiltering bool
}

// Result is everything the supervisor produced by the time the root
// tracee and all its descendants have exited.
type Result struct {
	Events    *eventlog.Log
	Registry  *tracee.Registry
	ExitCode  int
	StartTime time.Time
	EndTime   time.Time
}

// Op names a supervisor-level operation, used by Error for diagnostics.
type Op string

const (
	OpSpawn      Op = "spawn"
	OpWait       Op = "wait4"
	OpSetOptions Op = "ptrace set options"
	OpGetRegs    Op = "get regs"
	OpResume     Op = "ptrace syscall"
	OpEventMsg   Op = "get event message"
	OpDetach     Op = "ptrace detach"
)

// Error reports a failed supervisor-level operation against a specific
// tracee.
type Error struct {
	Op  Op
	TID int
	Err error
}

func (e *Error) Error() string {
	return string(e.Op) + ": tid=" + strconv.Itoa(e.TID) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
