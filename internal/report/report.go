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

// Package report defines the sink abstraction the directory tree is
// rendered through, decoupling the core from any particular output format.
package report

import (
	"io"

	"github.com/kestrelcode/filetrace/internal/tree"
)

// Sink renders a built directory tree to w.
type Sink interface {
	Render(root *tree.Node, w io.Writer) error
}
