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

//go:build linux

package ptrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestIsSyscallStopMatchesTraceSysGoodSignal(t *testing.T) {
	assert.True(t, IsSyscallStop(unix.SIGTRAP|0x80))
	assert.False(t, IsSyscallStop(unix.SIGTRAP))
	assert.False(t, IsSyscallStop(unix.SIGCHLD))
}

func TestEventOfExtractsHighWordEventCode(t *testing.T) {
	// Mirrors the kernel's encoding for a ptrace event stop:
	// ((SIGTRAP | (event << 8)) << 8) | 0x7f, which places the event
	// code in bits 16-23 of the raw wait status.
	status := unix.WaitStatus((unix.SIGTRAP << 8) | (unix.PTRACE_EVENT_EXIT << 16) | 0x7f)
	assert.Equal(t, uint32(unix.PTRACE_EVENT_EXIT), EventOf(status))
}

func TestTraceOptionsIncludesSysGoodAndDescendantTracking(t *testing.T) {
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACESYSGOOD)
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACEFORK)
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACEVFORK)
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACECLONE)
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACEEXEC)
	assert.NotZero(t, TraceOptions&unix.PTRACE_O_TRACEEXIT)
}
