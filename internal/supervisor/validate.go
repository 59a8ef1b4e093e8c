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

// Package supervisor drives the traced process/thread tree: it attaches
// to a spawned command, follows forks/clones/execs across every
// descendant, and accumulates an ordered file-open event log.
package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kestrelcode/filetrace/internal/pathutil"
)

// ValidateCommand resolves args[0] to an executable path, searching PATH
// if it is not already a direct path.
func ValidateCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("supervisor: no command given")
	}
	path, err := exec.LookPath(args[0])
	if err != nil {
		return "", fmt.Errorf("supervisor: command not found or not executable: %w", err)
	}
	return path, nil
}

// ValidateOutputPath checks that path's parent directory exists, is a
// directory, and is writable by at least one of owner/group/other.
func ValidateOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("supervisor: output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("supervisor: output parent %s is not a directory", dir)
	}
	if info.Mode().Perm()&0o222 == 0 {
		return fmt.Errorf("supervisor: output directory %s is not writable", dir)
	}
	return nil
}

// ResolveBaseDir normalizes explicitDir, defaulting to the current
// working directory when empty.
func ResolveBaseDir(explicitDir string) (string, error) {
	if explicitDir != "" {
		return pathutil.Normalize(explicitDir), nil
	}
	cwd, err := pathutil.Cwd()
	if err != nil {
		return "", fmt.Errorf("supervisor: resolving current directory: %w", err)
	}
	return pathutil.Normalize(cwd), nil
}
