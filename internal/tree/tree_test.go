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

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleOpen(t *testing.T) {
	root := New()
	root.Insert("/tmp/a.txt", 1, 100, "main")

	leaves := root.Leaves()
	require.Len(t, leaves, 1)
	assert.Equal(t, "a.txt", leaves[0].Segment)
	assert.Equal(t, 1, leaves[0].Sequence)
	assert.Equal(t, 100, leaves[0].TID)
	assert.Equal(t, "main", leaves[0].ThreadName)
}

func TestSiblingOrderingAlphabetical(t *testing.T) {
	root := New()
	root.Insert("/tmp/b.txt", 1, 100, "p")
	root.Insert("/tmp/a.txt", 2, 100, "p")

	leaves := root.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, "a.txt", leaves[0].Segment)
	assert.Equal(t, 2, leaves[0].Sequence)
	assert.Equal(t, "b.txt", leaves[1].Segment)
	assert.Equal(t, 1, leaves[1].Sequence)
}

func TestDirectoriesBeforeFiles(t *testing.T) {
	root := New()
	root.Insert("/root/z.log", 1, 50, "t")
	root.Insert("/root/a/b.log", 2, 50, "t")

	rootDir := root.Children["root"]
	sorted := rootDir.SortedChildren()
	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].Segment)
	assert.False(t, sorted[0].IsFile)
	assert.Equal(t, "z.log", sorted[1].Segment)
	assert.True(t, sorted[1].IsFile)

	inner := sorted[0].SortedChildren()
	require.Len(t, inner, 1)
	assert.Equal(t, "b.log", inner[0].Segment)
	assert.Equal(t, 2, inner[0].Sequence)
}

func TestReinsertingOverwritesMetadataKeepsStructure(t *testing.T) {
	root := New()
	root.Insert("/tmp/a.txt", 1, 100, "main")
	before := len(root.Children["tmp"].Children)

	root.Insert("/tmp/a.txt", 2, 200, "other")

	after := len(root.Children["tmp"].Children)
	assert.Equal(t, before, after)

	leaf := root.Children["tmp"].Children["a.txt"]
	assert.Equal(t, 2, leaf.Sequence)
	assert.Equal(t, 200, leaf.TID)
	assert.Equal(t, "other", leaf.ThreadName)
}

func TestRenderingIsDeterministic(t *testing.T) {
	root := New()
	root.Insert("/a/c.txt", 1, 1, "t")
	root.Insert("/a/b.txt", 2, 1, "t")
	root.Insert("/a/sub/d.txt", 3, 1, "t")

	first := root.Leaves()
	second := root.Leaves()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].FullPath, second[i].FullPath)
	}
}

func TestRoundTripLeavesMatchDistinctPaths(t *testing.T) {
	root := New()
	events := []struct {
		path string
		seq  int
	}{
		{"/tmp/a.txt", 1},
		{"/tmp/b.txt", 2},
		{"/tmp/a.txt", 3},
	}
	for _, e := range events {
		root.Insert(e.path, e.seq, 1, "t")
	}

	leaves := root.Leaves()
	paths := make(map[string]int)
	for _, l := range leaves {
		paths[l.FullPath] = l.Sequence
	}
	assert.Len(t, paths, 2)
	assert.Equal(t, 3, paths["/tmp/a.txt"])
	assert.Equal(t, 2, paths["/tmp/b.txt"])
}
