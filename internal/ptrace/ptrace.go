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

// Package ptrace wraps the debugger-control syscalls the supervisor
// drives tracees through, plus architecture-specific register decoding.
package ptrace

import "golang.org/x/sys/unix"

// TraceOptions is the option set applied to every tracee so descendants
// are auto-traced without a race between creation and the first stop.
const TraceOptions = unix.PTRACE_O_TRACESYSGOOD | unix.PTRACE_O_TRACEEXEC |
	unix.PTRACE_O_TRACEEXIT | unix.PTRACE_O_TRACEVFORK |
	unix.PTRACE_O_TRACEFORK | unix.PTRACE_O_TRACECLONE

// EventOf extracts the PTRACE_EVENT_* code from a regular-SIGTRAP stop
// status, per the kernel's high-word encoding.
func EventOf(status unix.WaitStatus) uint32 {
	return (uint32(status) >> 16) & 0xFFFF
}

// IsSyscallStop reports whether sig is the TRACESYSGOOD-tagged signal
// that marks a syscall-entry or syscall-exit stop rather than a
// PTRACE_EVENT stop or a genuine delivered signal.
func IsSyscallStop(sig unix.Signal) bool {
	return sig == (unix.SIGTRAP | 0x80)
}

// SetOptions installs TraceOptions on tid.
func SetOptions(tid int) error {
	return unix.PtraceSetOptions(tid, TraceOptions)
}

// GetRegs reads tid's current registers.
func GetRegs(tid int) (*unix.PtraceRegs, error) {
	var regs unix.PtraceRegs
	if err := unix.PtraceGetRegs(tid, &regs); err != nil {
		return nil, err
	}
	return &regs, nil
}

// ResumeSyscall resumes tid until the next syscall-stop, injecting sig
// (0 for none).
func ResumeSyscall(tid, sig int) error {
	return unix.PtraceSyscall(tid, sig)
}

// EventMessage returns the auxiliary value attached to the last
// PTRACE_EVENT stop (e.g. the new TID on a fork/vfork/clone event).
func EventMessage(tid int) (uint64, error) {
	msg, err := unix.PtraceGetEventMsg(tid)
	return uint64(msg), err
}

// Detach best-effort detaches the debugger from tid.
func Detach(tid int) error {
	return unix.PtraceDetach(tid)
}
