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

// Package classifier decides which syscall-entry stops are file opens,
// process/thread creations, or exits, and extracts their arguments.
package classifier

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/kestrelcode/filetrace/internal/memory"
	"github.com/kestrelcode/filetrace/internal/pathutil"
	"github.com/kestrelcode/filetrace/internal/ptrace"
)

// Kind identifies what a classified syscall-entry stop represents.
type Kind int

const (
	// None is not a syscall the classifier tracks.
	None Kind = iota
	// FileOpen is an open/openat-style call; Path is populated.
	FileOpen
	// ExecLookup is an execve-style call; Path is populated but must
	// only be used for bookkeeping, never emitted as a file-open event.
	ExecLookup
	// NewTracee is a fork/vfork/clone-style call; the supervisor
	// resumes once and resolves the new TID out of band.
	NewTracee
	// Exiting is an exit/exit_group-style call; ExitStatus is populated.
	Exiting
)

// Event is the classifier's verdict for one syscall-entry stop.
type Event struct {
	Kind Kind
	Path string

	// CloneFlags is arg0 of a clone(2) entry, captured here (at entry)
	// rather than after the tracee resumes past the syscall boundary,
	// since preservation of registers across that resume is kernel
	// dependent. The supervisor disambiguates which of fork/vfork/clone
	// actually fired from the PTRACE_EVENT code, not from this struct.
	CloneFlags uintptr

	ExitStatus int
}

// specialPrefixes names pseudo-filesystem paths that never represent a
// file the tracer's caller is interested in.
var specialPrefixes = []string{"/proc/", "/dev/", "/sys/"}

// IsSpecialPath reports whether path is a pseudo-filesystem entry the
// event log should never record.
func IsSpecialPath(path string) bool {
	for _, prefix := range specialPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Classify inspects tid's syscall-entry registers and, for recognized
// syscalls, extracts and normalizes their arguments. Memory-read
// failures are reported via err and must be treated as "drop silently"
// by the caller, per the classifier's contract.
func Classify(tid int, regs *unix.PtraceRegs) (Event, error) {
	id := ptrace.SyscallID(regs)

	switch {
	case ptrace.HasOpenSyscall && id == uint64(ptrace.SyscallOpen):
		path, err := memory.ReadCString(tid, ptrace.Arg(regs, 0))
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: FileOpen, Path: normalizeObserved(path)}, nil

	case id == uint64(ptrace.SyscallOpenAt):
		path, err := memory.ReadCString(tid, ptrace.Arg(regs, 1))
		if err != nil {
			return Event{}, err
		}
		if !filepath.IsAbs(path) {
			dir, dirErr := memory.ResolveFD(tid, int(ptrace.Arg(regs, 0)))
			if dirErr == nil {
				path = filepath.Join(dir, path)
			}
		}
		return Event{Kind: FileOpen, Path: normalizeObserved(path)}, nil

	case id == uint64(ptrace.SyscallExecve):
		path, err := memory.ReadCString(tid, ptrace.Arg(regs, 0))
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: ExecLookup, Path: normalizeObserved(path)}, nil

	case ptrace.SyscallFork >= 0 && id == uint64(ptrace.SyscallFork):
		return Event{Kind: NewTracee}, nil

	case ptrace.SyscallVFork >= 0 && id == uint64(ptrace.SyscallVFork):
		return Event{Kind: NewTracee}, nil

	case id == uint64(ptrace.SyscallClone):
		return Event{Kind: NewTracee, CloneFlags: ptrace.Arg(regs, 0)}, nil

	case id == uint64(ptrace.SyscallExit) || id == uint64(ptrace.SyscallExitGroup):
		return Event{Kind: Exiting, ExitStatus: int(ptrace.Arg(regs, 0))}, nil

	default:
		return Event{Kind: None}, nil
	}
}

// IsThreadClone reports whether clone flags describe a new thread
// sharing the caller's thread group, as opposed to a new process.
func IsThreadClone(flags uintptr) bool {
	return flags&unix.CLONE_THREAD != 0
}

func normalizeObserved(path string) string {
	return pathutil.Normalize(path)
}
