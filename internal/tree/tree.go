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

// Package tree folds an ordered event log into a directory tree keyed by
// normalized path components, keeping the most recent touch metadata for
// each path and exposing a deterministic, pure traversal for rendering.
package tree

import (
	"sort"
	"strings"
)

// Node is one entry in the directory tree: either a directory (no touch
// metadata, is-file false) or a file leaf carrying the event that
// produced it, plus any optional enrichment attached after tracing.
type Node struct {
	Segment     string
	FullPath    string
	IsFile      bool
	Sequence    int
	TID         int
	ThreadName  string
	ContentType string
	Digest      map[string]string
	Children    map[string]*Node
}

// New returns an empty root node ("/").
func New() *Node {
	return &Node{Segment: "/", FullPath: "/", Children: make(map[string]*Node)}
}

// Insert walks path from the root, creating missing interior directory
// nodes and marking the final component as a file, overwriting its touch
// metadata. Re-inserting the same path is idempotent for structure.
func (root *Node) Insert(path string, sequence, tid int, threadName string) {
	components := splitPath(path)
	if len(components) == 0 {
		return
	}

	current := root
	walked := ""
	for i, comp := range components {
		walked += "/" + comp
		child, ok := current.Children[comp]
		if !ok {
			child = &Node{Segment: comp, FullPath: walked, Children: make(map[string]*Node)}
			current.Children[comp] = child
		}

		if i == len(components)-1 {
			child.IsFile = true
			child.Sequence = sequence
			child.TID = tid
			child.ThreadName = threadName
		}
		current = child
	}
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortedChildren returns a node's children in canonical render order:
// directories before files, each group ascending by segment name.
func (n *Node) SortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsFile != out[j].IsFile {
			return !out[i].IsFile
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// Leaves returns every file leaf in the tree in canonical traversal order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		for _, child := range node.SortedChildren() {
			if child.IsFile {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}
