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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTracesSingleFileOpen(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux only")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(target, []byte("hi\n"), 0o644))

	shPath, err := ValidateCommand([]string{"cat"})
	require.NoError(t, err)

	result, err := Run(shPath, []string{target}, Config{BaseDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	found := false
	for _, ev := range result.Events.Events() {
		if ev.Path == target {
			found = true
		}
	}
	assert.True(t, found, "expected an event for %s, got %+v", target, result.Events.Events())

	all := result.Registry.All()
	require.NotEmpty(t, all)
	for _, rec := range all {
		assert.False(t, rec.Active, "every tracee must be inactive once the trace completes")
	}
}

func TestRunRejectsUnstartableCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux only")
	}

	_, err := Run("/definitely/not/a/real/binary", nil, Config{})
	assert.Error(t, err)
}
