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

// Package cli defines the command-line surface: one binary that traces
// a trailing command and renders the resulting directory tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the build's reported version string, set at link time by
// the release process; it defaults to "dev" for local builds.
var Version = "dev"

// Options is the parsed and validated command-line configuration.
type Options struct {
	OutputPath       string
	BaseDir          string
	DisableFiltering bool
	PlainText        bool
	DetectTypes      bool
	HashAlgos        []string
	Command          []string
}

// Run builds and executes the root cobra command, invoking execute with
// the parsed Options once argument parsing and the trailing-command
// split succeed.
func Run(args []string, execute func(Options) error) error {
	var opts Options

	root := &cobra.Command{
		Use:           "filetrace [flags] -- command [args...]",
		Short:         "Trace the files a command and its descendants open",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, rest []string) error {
			dashAt := cmd.ArgsLenAtDash()
			switch {
			case dashAt >= 0:
				opts.Command = rest[dashAt:]
			case len(rest) > 0:
				opts.Command = rest
			default:
				return fmt.Errorf("no command given; usage: %s", cmd.UseLine())
			}
			return execute(opts)
		},
	}

	root.SetArgs(args)
	root.Flags().StringVarP(&opts.OutputPath, "output-html", "o", "filetrace_output.html", "output artifact path")
	root.Flags().BoolVarP(&opts.DisableFiltering, "all", "a", false, "show all paths observed, disabling base-directory filtering")
	root.Flags().StringVarP(&opts.BaseDir, "directory", "d", "", "base directory paths are filtered against (default: current directory)")
	root.Flags().BoolVar(&opts.PlainText, "text", false, "render a plain-text tree to stdout instead of an HTML artifact")
	root.Flags().BoolVar(&opts.DetectTypes, "detect-types", false, "enrich file leaves with detected MIME content types")
	root.Flags().StringSliceVar(&opts.HashAlgos, "hash", nil, "enrich file leaves with digests (sha256, sha512)")

	return root.Execute()
}
