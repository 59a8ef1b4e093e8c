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

// Package eventlog holds the append-only, ordered record of file-open
// events observed by the supervisor.
package eventlog

import "sync"

// Event is a single observed file-open, normalized and filtered before it
// ever reaches the log.
type Event struct {
	Sequence   int
	TID        int
	Path       string
	ThreadName string
}

// Log is an append-only sequence of Events. It is safe for concurrent use,
// although the supervisor itself appends from a single goroutine.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Append adds an event, assigning it the next 1-based sequence number.
func (l *Log) Append(tid int, path, threadName string) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Event{
		Sequence:   len(l.events) + 1,
		TID:        tid,
		Path:       path,
		ThreadName: threadName,
	}
	l.events = append(l.events, e)
	return e
}

// Events returns a copy of the events recorded so far, in sequence order.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of events recorded so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
