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

package html

import (
	"bytes"
	"testing"

	"github.com/kestrelcode/filetrace/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesWellFormedDocument(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/a.txt", 1, 100, "main")

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "id='search-box'")
	assert.Contains(t, out, "</html>")
}

func TestRenderEscapesUntrustedSegments(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/<script>alert(1)</script>", 1, 1, "t")

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestRenderIncludesEnrichmentWhenPresent(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/a.txt", 1, 100, "main")
	root.Children["tmp"].Children["a.txt"].ContentType = "text/plain"
	root.Children["tmp"].Children["a.txt"].Digest = map[string]string{"sha256": "deadbeef"}

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	out := buf.String()
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "sha256:deadbeef")
}
