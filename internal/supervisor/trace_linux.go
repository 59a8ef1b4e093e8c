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

package supervisor

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/kestrelcode/filetrace/internal/classifier"
	"github.com/kestrelcode/filetrace/internal/eventlog"
	"github.com/kestrelcode/filetrace/internal/log"
	"github.com/kestrelcode/filetrace/internal/pathutil"
	"github.com/kestrelcode/filetrace/internal/ptrace"
	"github.com/kestrelcode/filetrace/internal/tracee"
)

const (
	maxRegisterRetries = 5
	maxResumeRetries   = 3
	retryBaseDelay     = time.Millisecond
	echildPollInterval = 10 * time.Millisecond
)

// tracer holds the mutable state of one trace run. It is single-threaded
// and owned exclusively by Run's goroutine; see spec.md §5.
type tracer struct {
	cfg      Config
	registry *tracee.Registry
	events   *eventlog.Log

	rootPID  int
	exitCode int

	inSyscall    map[int]bool
	pendingClone map[int]classifier.Event
}

// Run spawns path with args under ptrace, follows every descendant it
// creates, and returns the accumulated event log and registry once the
// root tracee and all its descendants have exited.
func Run(path string, args []string, cfg Config) (*Result, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	t := &tracer{
		cfg:          cfg,
		registry:     tracee.New(tracee.ProcCommName),
		events:       eventlog.New(),
		inSyscall:    make(map[int]bool),
		pendingClone: make(map[int]classifier.Event),
	}

	start := time.Now()
	cmd := exec.Command(path, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	cmd.SysProcAttr = &unix.SysProcAttr{Ptrace: true}

	if err := cmd.Start(); err != nil {
		return nil, &Error{Op: OpSpawn, Err: err}
	}
	t.rootPID = cmd.Process.Pid

	var status unix.WaitStatus
	if _, err := unix.Wait4(t.rootPID, &status, 0, nil); err != nil {
		return nil, &Error{Op: OpWait, TID: t.rootPID, Err: err}
	}

	if err := ptrace.SetOptions(t.rootPID); err != nil {
		return nil, &Error{Op: OpSetOptions, TID: t.rootPID, Err: err}
	}

	t.registry.Root(t.rootPID)
	t.inSyscall[t.rootPID] = false
	log.Infof("supervisor: attached to root tracee %d", t.rootPID)

	if err := ptrace.ResumeSyscall(t.rootPID, 0); err != nil {
		return nil, &Error{Op: OpResume, TID: t.rootPID, Err: err}
	}

	t.loop()

	end := time.Now()
	return &Result{
		Events:    t.events,
		Registry:  t.registry,
		ExitCode:  t.exitCode,
		StartTime: start,
		EndTime:   end,
	}, nil
}

func (t *tracer) loop() {
	var status unix.WaitStatus
	for {
		pid, err := unix.Wait4(-1, &status, unix.WALL, nil)
		if err != nil {
			if errors.Is(err, unix.ECHILD) {
				if t.reapGarbage() {
					time.Sleep(echildPollInterval)
					continue
				}
				log.Infof("supervisor: no descendants remain, trace complete")
				return
			}
			log.Errorf("supervisor: unexpected wait4 failure: %v", err)
			t.cleanupAll()
			return
		}

		switch {
		case status.Exited():
			t.onExit(pid, status.ExitStatus())
			if pid == t.rootPID {
				t.exitCode = status.ExitStatus()
			}
		case status.Signaled():
			log.Debugf("supervisor: tracee %d signaled: %s", pid, status.Signal())
			t.onExit(pid, 128+int(status.Signal()))
		case status.Stopped():
			t.handleStop(pid, status)
		}
	}
}

func (t *tracer) onExit(tid, exitStatus int) {
	delete(t.inSyscall, tid)
	delete(t.pendingClone, tid)
	t.registry.OnExit(tid, exitStatus, t.sendTerm)
	_ = ptrace.Detach(tid)
}

func (t *tracer) sendTerm(pid int) {
	_ = unix.Kill(pid, unix.SIGTERM)
}

func (t *tracer) handleStop(tid int, status unix.WaitStatus) {
	sig := status.StopSignal()

	if ptrace.IsSyscallStop(sig) {
		t.handleSyscallStop(tid)
		return
	}

	if sig == unix.SIGTRAP {
		if event := ptrace.EventOf(status); event != 0 {
			t.handlePtraceEvent(tid, event)
			t.resume(tid, 0)
			return
		}
	}

	// A genuine delivered signal unrelated to ptrace bookkeeping: inject
	// it back so the tracee's own handler (or default disposition) runs.
	t.resume(tid, int(sig))
}

func (t *tracer) handleSyscallStop(tid int) {
	regs, err := t.getRegs(tid)
	if err != nil {
		log.Errorf("supervisor: giving up on tracee %d after register-read retries: %v", tid, err)
		t.onExit(tid, -1)
		return
	}

	entering := !t.inSyscall[tid]
	t.inSyscall[tid] = entering

	if entering {
		t.onSyscallEntry(tid, regs)
	}

	t.resume(tid, 0)
}

func (t *tracer) onSyscallEntry(tid int, regs *unix.PtraceRegs) {
	ev, err := classifier.Classify(tid, regs)
	if err != nil {
		log.Debugf("supervisor: dropping event for tracee %d, memory read failed: %v", tid, err)
		return
	}

	switch ev.Kind {
	case classifier.FileOpen:
		t.recordFileOpen(tid, ev.Path)
	case classifier.NewTracee:
		t.pendingClone[tid] = ev
	case classifier.Exiting:
		t.onExit(tid, ev.ExitStatus)
	}
}

func (t *tracer) recordFileOpen(tid int, path string) {
	if path == "" || classifier.IsSpecialPath(path) {
		return
	}
	if !pathutil.Within(path, t.cfg.BaseDir, t.cfg.DisableFiltering) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	name := t.registry.Name(tid)
	t.events.Append(tid, path, name)
}

func (t *tracer) handlePtraceEvent(tid int, event uint32) {
	switch event {
	case unix.PTRACE_EVENT_FORK, unix.PTRACE_EVENT_VFORK, unix.PTRACE_EVENT_CLONE:
		t.handleNewTracee(tid, event)
	case unix.PTRACE_EVENT_EXIT:
		// No extra bookkeeping: the subsequent WIFEXITED/WIFSIGNALED wait
		// result drives on_exit.
	}
}

func (t *tracer) handleNewTracee(parent int, event uint32) {
	msg, err := ptrace.EventMessage(parent)
	if err != nil {
		log.Debugf("supervisor: failed to read event message for %d: %v", parent, err)
		return
	}
	newTID := int(msg)

	pending := t.pendingClone[parent]
	delete(t.pendingClone, parent)

	kind := tracee.Process
	if event == unix.PTRACE_EVENT_CLONE && classifier.IsThreadClone(pending.CloneFlags) {
		kind = tracee.Thread
	}

	t.registry.OnCreate(parent, newTID, kind)
	t.inSyscall[newTID] = false
	log.Debugf("supervisor: new %s %d created by %d", kind, newTID, parent)

	var status unix.WaitStatus
	if _, err := unix.Wait4(newTID, &status, 0, nil); err != nil {
		log.Debugf("supervisor: waiting for new tracee %d initial stop: %v", newTID, err)
		return
	}
	if err := ptrace.SetOptions(newTID); err != nil {
		log.Debugf("supervisor: setting options on new tracee %d: %v", newTID, err)
	}
	t.resume(newTID, 0)
}

// getRegs retries a failing register read up to maxRegisterRetries times
// with exponential backoff; a "no such process" error is immediately
// reclassified by the caller via onExit.
func (t *tracer) getRegs(tid int) (*unix.PtraceRegs, error) {
	delay := retryBaseDelay
	var lastErr error
	for attempt := 0; attempt < maxRegisterRetries; attempt++ {
		regs, err := ptrace.GetRegs(tid)
		if err == nil {
			return regs, nil
		}
		if errors.Is(err, unix.ESRCH) {
			return nil, err
		}
		lastErr = err
		time.Sleep(delay)
		delay *= 2
	}
	return nil, lastErr
}

// resume retries a failing syscall-resume up to maxResumeRetries times;
// exhaustion terminates the tracee locally rather than halting the trace.
func (t *tracer) resume(tid, sig int) {
	delay := retryBaseDelay
	for attempt := 0; attempt < maxResumeRetries; attempt++ {
		err := ptrace.ResumeSyscall(tid, sig)
		if err == nil {
			return
		}
		if errors.Is(err, unix.ESRCH) {
			t.onExit(tid, -1)
			return
		}
		time.Sleep(delay)
		delay *= 2
	}
	log.Errorf("supervisor: exhausted resume retries for tracee %d, terminating locally", tid)
	t.onExit(tid, -1)
}

// reapGarbage probes every active record with a null signal, tearing
// down any that the kernel no longer knows about. It reports whether any
// active tracee remains.
func (t *tracer) reapGarbage() bool {
	anyActive := false
	for _, rec := range t.registry.All() {
		if !rec.Active {
			continue
		}
		if err := unix.Kill(rec.ID, 0); errors.Is(err, unix.ESRCH) {
			t.onExit(rec.ID, -1)
			continue
		}
		anyActive = true
	}
	return anyActive
}

func (t *tracer) cleanupAll() {
	for _, rec := range t.registry.All() {
		if rec.Active {
			_ = ptrace.Detach(rec.ID)
			t.onExit(rec.ID, -1)
		}
	}
}
