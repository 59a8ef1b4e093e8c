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

package plaintext

import (
	"bytes"
	"testing"

	"github.com/kestrelcode/filetrace/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmitsIndentAndBracketSuffix(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/a.txt", 1, 100, "main")

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	assert.Equal(t, "tmp\n  a.txt[1 100 main]\n", buf.String())
}

func TestRenderOrdersDirectoriesBeforeFiles(t *testing.T) {
	root := tree.New()
	root.Insert("/root/z.log", 1, 50, "t")
	root.Insert("/root/a/b.log", 2, 50, "t")

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	assert.Equal(t, "root\n  a\n    b.log[2 50 t]\n  z.log[1 50 t]\n", buf.String())
}

func TestRenderAppendsEnrichmentWhenPresent(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/a.txt", 1, 100, "main")
	root.Children["tmp"].Children["a.txt"].ContentType = "text/plain"
	root.Children["tmp"].Children["a.txt"].Digest = map[string]string{"sha256": "deadbeef"}

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	assert.Equal(t, "tmp\n  a.txt[1 100 main text/plain sha256:deadbeef]\n", buf.String())
}

func TestRenderOmitsEnrichmentSuffixWhenAbsent(t *testing.T) {
	root := tree.New()
	root.Insert("/tmp/a.txt", 1, 100, "main")

	var buf bytes.Buffer
	require.NoError(t, Sink{}.Render(root, &buf))

	assert.NotContains(t, buf.String(), "sha256")
}
