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

// Package pathutil resolves and filters filesystem paths observed by the
// tracer. It never fails outright — an unresolvable path degrades to its
// lexically normal form rather than propagating an error, since a path
// that can't be resolved is still worth logging as an event.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrelcode/filetrace/internal/log"
)

// allowedPrefixes are unconditionally "within" any base directory because
// they reveal loader activity that is interesting regardless of filtering.
var allowedPrefixes = []string{"/lib", "/proc", "/etc/ld.so.cache"}

// Normalize resolves path to an absolute, symlink-free form. If real-path
// resolution fails and the input is relative, it retries against the
// current working directory; if that also fails, it falls back to the
// lexically normal form (of the cwd-joined path when the input is relative
// and the working directory is known). Normalize never returns an error.
func Normalize(path string) string {
	if path == "" {
		return ""
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		abs, err := filepath.Abs(resolved)
		if err == nil {
			return abs
		}
		return filepath.Clean(resolved)
	}

	if !filepath.IsAbs(path) {
		if cwd, err := Cwd(); err == nil {
			full := filepath.Join(cwd, path)
			if resolved, err := filepath.EvalSymlinks(full); err == nil {
				return filepath.Clean(resolved)
			}
			log.Debugf("pathutil: normalized relative path without resolving symlinks: %s -> %s", path, full)
			return filepath.Clean(full)
		}
	}

	log.Debugf("pathutil: falling back to lexical normal form for %s", path)
	return filepath.Clean(path)
}

// Cwd returns the process current working directory.
func Cwd() (string, error) {
	return os.Getwd()
}

// Within reports whether path lies at or beneath base. When
// disableFiltering is true, every path is considered within. The fixed
// allow-list of loader-related prefixes is always accepted regardless of
// disableFiltering, matching the original tool's always-interesting set.
func Within(path, base string, disableFiltering bool) bool {
	if disableFiltering {
		return true
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	normPath := Normalize(path)
	normBase := Normalize(base)
	if normPath == "" || normBase == "" {
		return false
	}

	if normPath == normBase {
		return true
	}

	if !strings.HasSuffix(normBase, string(filepath.Separator)) {
		normBase += string(filepath.Separator)
	}

	return strings.HasPrefix(normPath, normBase)
}
