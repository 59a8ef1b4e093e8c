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

// Package plaintext implements the testable §6 sink: one line per node in
// canonical order, "<indent><segment>" for directories and
// "<indent><segment>[<seq> <tid> <thread_name>]" for file leaves.
package plaintext

import (
	"fmt"
	"io"
	"strings"

	"github.com/kestrelcode/filetrace/internal/tree"
)

// Sink is a report.Sink that writes the plain-text tree representation.
type Sink struct{}

// Render writes root's contents in depth-first, directories-then-files,
// alphabetical order.
func (Sink) Render(root *tree.Node, w io.Writer) error {
	return renderNode(w, root, 0)
}

func renderNode(w io.Writer, node *tree.Node, depth int) error {
	for _, child := range node.SortedChildren() {
		indent := strings.Repeat("  ", depth)
		if child.IsFile {
			suffix := fmt.Sprintf("[%d %d %s", child.Sequence, child.TID, child.ThreadName)
			if child.ContentType != "" {
				suffix += " " + child.ContentType
			}
			for _, algo := range []string{"sha256", "sha512"} {
				if d, ok := child.Digest[algo]; ok {
					suffix += fmt.Sprintf(" %s:%s", algo, d)
				}
			}
			suffix += "]"
			if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, child.Segment, suffix); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "%s%s\n", indent, child.Segment); err != nil {
				return err
			}
			if err := renderNode(w, child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
