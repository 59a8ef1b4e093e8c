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

// Package tracee maintains the live process/thread hierarchy observed by
// the supervisor: one record per tracee identifier, linked into its
// parent's child lists, transitioning unknown -> active -> inactive.
package tracee

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kestrelcode/filetrace/internal/log"
)

// Kind distinguishes a process from a thread within a process group.
type Kind int

const (
	Process Kind = iota
	Thread
)

func (k Kind) String() string {
	if k == Thread {
		return "thread"
	}
	return "process"
}

// Record is everything the registry knows about one tracee.
type Record struct {
	ID             int
	Kind           Kind
	Parent         int
	HasParent      bool
	Name           string
	Active         bool
	CreatedAt      time.Time
	ExitStatus     int
	ChildProcesses []int
	ChildThreads   []int
}

// NameLookup resolves a tracee's kernel-assigned display name. Production
// code points this at /proc/<tid>/comm; tests substitute a fake.
type NameLookup func(tid int) string

// Registry is the TID -> Record map. It is mutated only by the supervisor
// goroutine and deliberately carries no internal locking — see spec.md §5.
type Registry struct {
	records map[int]*Record
	names   NameLookup
}

// New returns an empty Registry. A nil lookup defaults to reading
// /proc/<tid>/comm, falling back to "unknown" on any read failure.
func New(lookup NameLookup) *Registry {
	if lookup == nil {
		lookup = ProcCommName
	}
	return &Registry{
		records: make(map[int]*Record),
		names:   lookup,
	}
}

// ProcCommName reads /proc/<tid>/comm, the default NameLookup.
func ProcCommName(tid int) string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", tid))
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(data))
}

// Get returns the record for tid, if any.
func (r *Registry) Get(tid int) (*Record, bool) {
	rec, ok := r.records[tid]
	return rec, ok
}

// Name returns the display name snapshot for tid, or "unknown" if tid
// has no record.
func (r *Registry) Name(tid int) string {
	if rec, ok := r.records[tid]; ok {
		return rec.Name
	}
	return "unknown"
}

// All returns every record currently known to the registry.
func (r *Registry) All() []*Record {
	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

// Root creates the initial record for the spawned root process, which has
// no parent.
func (r *Registry) Root(tid int) *Record {
	rec := &Record{
		ID:        tid,
		Kind:      Process,
		HasParent: false,
		Name:      r.names(tid),
		Active:    true,
		CreatedAt: time.Now(),
	}
	r.records[tid] = rec
	return rec
}

// OnCreate registers a new tracee or reactivates a previously exited one
// whose TID was reused by the kernel. If parent has no record yet, a stub
// parent record is created first (active, no grandparent) so every
// non-root record always has a parent present, per spec.md §3.
func (r *Registry) OnCreate(parent, new int, kind Kind) *Record {
	if existing, ok := r.records[new]; ok && !existing.Active {
		if existing.HasParent && existing.Parent != parent {
			r.unlinkChild(existing.Parent, existing.ID, existing.Kind)
			r.linkChild(parent, existing.ID, kind)
		} else if !existing.HasParent {
			r.linkChild(parent, existing.ID, kind)
		}
		existing.Parent = parent
		existing.HasParent = true
		existing.Kind = kind
		existing.Active = true
		existing.ExitStatus = 0
		existing.CreatedAt = time.Now()
		log.Debugf("tracee: reactivated %s %d under parent %d", kind, new, parent)
		return existing
	}

	if _, ok := r.records[parent]; !ok {
		r.records[parent] = &Record{
			ID:        parent,
			Kind:      Process,
			HasParent: false,
			Name:      r.names(parent),
			Active:    true,
			CreatedAt: time.Now(),
		}
	}

	rec := &Record{
		ID:        new,
		Kind:      kind,
		Parent:    parent,
		HasParent: true,
		Name:      r.names(new),
		Active:    true,
		CreatedAt: time.Now(),
	}
	r.records[new] = rec
	r.linkChild(parent, new, kind)

	log.Debugf("tracee: created %s %d with parent %d", kind, new, parent)
	return rec
}

// OnExit marks tid inactive, recursively tearing down its active children
// (processes first, then threads, matching creation-event order within
// each group). Child processes are sent SIGTERM before recursing; a
// best-effort ptrace detach of tid is attempted by the caller, not here —
// detach requires the kernel debugger handle the registry doesn't own.
func (r *Registry) OnExit(tid, status int, terminate func(pid int)) {
	rec, ok := r.records[tid]
	if !ok || !rec.Active {
		return
	}

	rec.Active = false
	rec.ExitStatus = status

	for _, childPID := range rec.ChildProcesses {
		if child, ok := r.records[childPID]; ok && child.Active {
			if terminate != nil {
				terminate(childPID)
			}
			r.OnExit(childPID, -1, terminate)
		}
	}
	for _, childTID := range rec.ChildThreads {
		if child, ok := r.records[childTID]; ok && child.Active {
			r.OnExit(childTID, -1, terminate)
		}
	}
}

func (r *Registry) linkChild(parent, child int, kind Kind) {
	p, ok := r.records[parent]
	if !ok {
		return
	}
	if kind == Process {
		p.ChildProcesses = append(p.ChildProcesses, child)
	} else {
		p.ChildThreads = append(p.ChildThreads, child)
	}
}

func (r *Registry) unlinkChild(parent, child int, kind Kind) {
	p, ok := r.records[parent]
	if !ok {
		return
	}
	list := &p.ChildProcesses
	if kind == Thread {
		list = &p.ChildThreads
	}
	for i, c := range *list {
		if c == child {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
}
