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

//go:build linux && arm64

package ptrace

import "golang.org/x/sys/unix"

// SyscallID returns the syscall number captured at entry.
func SyscallID(regs *unix.PtraceRegs) uint64 { return uint64(regs.Regs[8]) }

// Arg returns the n'th syscall argument register (0-indexed, n<6).
func Arg(regs *unix.PtraceRegs, n int) uintptr {
	if n < 0 || n > 5 {
		return 0
	}
	return uintptr(regs.Regs[n])
}

// ReturnValue returns the syscall's return value register.
func ReturnValue(regs *unix.PtraceRegs) int64 { return int64(regs.Regs[0]) }

// Syscall numbers the classifier recognizes. arm64 never had a plain
// fork(2) or vfork(2) entry point; both are emulated over clone(2), so
// SyscallFork and SyscallVFork are unreachable sentinels here.
//
// The negative sentinels are plain vars, not consts: converting a
// constant -1 to uint64 is a compile-time overflow error in Go, and the
// classifier's id == uint64(ptrace.SyscallFork) comparisons need that
// conversion to happen at runtime instead, where it just wraps.
const (
	SyscallOpenAt    = unix.SYS_OPENAT
	SyscallExecve    = unix.SYS_EXECVE
	SyscallClone     = unix.SYS_CLONE
	SyscallExit      = unix.SYS_EXIT
	SyscallExitGroup = unix.SYS_EXIT_GROUP
)

var (
	SyscallFork  int64 = -1
	SyscallVFork int64 = -1
)

// HasOpenSyscall reports whether this architecture has a plain open(2)
// entry point distinct from openat(2).
const HasOpenSyscall = false

// SyscallOpen is unreachable on arm64; see HasOpenSyscall. It is a var
// for the same compile-time-overflow reason as SyscallFork/SyscallVFork.
var SyscallOpen int64 = -1
