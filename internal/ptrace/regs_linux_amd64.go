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

//go:build linux && amd64

package ptrace

import "golang.org/x/sys/unix"

// SyscallID returns the syscall number captured at entry.
func SyscallID(regs *unix.PtraceRegs) uint64 { return regs.Orig_rax }

// Arg returns the n'th syscall argument register (0-indexed, n<6).
func Arg(regs *unix.PtraceRegs, n int) uintptr {
	switch n {
	case 0:
		return uintptr(regs.Rdi)
	case 1:
		return uintptr(regs.Rsi)
	case 2:
		return uintptr(regs.Rdx)
	case 3:
		return uintptr(regs.R10)
	case 4:
		return uintptr(regs.R8)
	case 5:
		return uintptr(regs.R9)
	default:
		return 0
	}
}

// ReturnValue returns the syscall's return value register.
func ReturnValue(regs *unix.PtraceRegs) int64 { return int64(regs.Rax) }

// Syscall numbers the classifier recognizes. amd64 retains the legacy
// open(2) entry point that arm64 never had.
const (
	SyscallOpen      = unix.SYS_OPEN
	SyscallOpenAt    = unix.SYS_OPENAT
	SyscallExecve    = unix.SYS_EXECVE
	SyscallFork      = unix.SYS_FORK
	SyscallVFork     = unix.SYS_VFORK
	SyscallClone     = unix.SYS_CLONE
	SyscallExit      = unix.SYS_EXIT
	SyscallExitGroup = unix.SYS_EXIT_GROUP
)

// HasOpenSyscall reports whether this architecture has a plain open(2)
// entry point distinct from openat(2).
const HasOpenSyscall = true
