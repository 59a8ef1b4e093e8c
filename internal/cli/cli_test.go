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

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSplitsTrailingCommandAfterDashDash(t *testing.T) {
	var got Options
	err := Run([]string{"-o", "out.html", "--", "echo", "hi"}, func(o Options) error {
		got = o
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "out.html", got.OutputPath)
	assert.Equal(t, []string{"echo", "hi"}, got.Command)
}

func TestRunAcceptsTrailingCommandWithoutDashDash(t *testing.T) {
	var got Options
	err := Run([]string{"echo", "hi"}, func(o Options) error {
		got = o
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hi"}, got.Command)
}

func TestRunRejectsMissingCommand(t *testing.T) {
	err := Run([]string{"-a"}, func(o Options) error {
		t.Fatal("execute should not be called without a command")
		return nil
	})
	assert.Error(t, err)
}

func TestRunParsesEnrichmentFlags(t *testing.T) {
	var got Options
	err := Run([]string{"--detect-types", "--hash", "sha256", "--hash", "sha512", "--", "true"}, func(o Options) error {
		got = o
		return nil
	})
	require.NoError(t, err)
	assert.True(t, got.DetectTypes)
	assert.Equal(t, []string{"sha256", "sha512"}, got.HashAlgos)
}

func TestRunDefaultsOutputPath(t *testing.T) {
	var got Options
	err := Run([]string{"--", "true"}, func(o Options) error {
		got = o
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "filetrace_output.html", got.OutputPath)
}
