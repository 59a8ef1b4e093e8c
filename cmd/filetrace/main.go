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

// Command filetrace launches a target command, traces every file it and
// its descendants open, and renders the result as a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/kestrelcode/filetrace/internal/cli"
	"github.com/kestrelcode/filetrace/internal/content"
	"github.com/kestrelcode/filetrace/internal/digest"
	"github.com/kestrelcode/filetrace/internal/log"
	"github.com/kestrelcode/filetrace/internal/report"
	"github.com/kestrelcode/filetrace/internal/report/html"
	"github.com/kestrelcode/filetrace/internal/report/plaintext"
	"github.com/kestrelcode/filetrace/internal/supervisor"
	"github.com/kestrelcode/filetrace/internal/tree"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("filetrace: unrecoverable error: %v", r)
			exitCode = 1
		}
	}()

	err := cli.Run(args, execute)
	if err != nil {
		log.Errorf("filetrace: %v", err)
		return 1
	}
	return 0
}

func execute(opts cli.Options) error {
	cmdPath, err := supervisor.ValidateCommand(opts.Command)
	if err != nil {
		return err
	}

	if !opts.PlainText {
		if err := supervisor.ValidateOutputPath(opts.OutputPath); err != nil {
			return err
		}
	}

	baseDir, err := supervisor.ResolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}

	log.Infof("filetrace: tracing %v under base directory %s", opts.Command, baseDir)

	result, err := supervisor.Run(cmdPath, opts.Command[1:], supervisor.Config{
		BaseDir:          baseDir,
		DisableFiltering: opts.DisableFiltering,
	})
	if err != nil {
		return err
	}

	root := tree.New()
	for _, ev := range result.Events.Events() {
		root.Insert(ev.Path, ev.Sequence, ev.TID, ev.ThreadName)
	}

	enrich(root, opts)

	if opts.PlainText {
		return plaintext.Sink{}.Render(root, os.Stdout)
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("filetrace: creating output artifact: %w", err)
	}
	defer out.Close()

	var sink report.Sink = html.Sink{}
	if err := sink.Render(root, out); err != nil {
		return fmt.Errorf("filetrace: rendering report: %w", err)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("traced command exited with status %d", result.ExitCode)
	}
	return nil
}

// enrich attaches optional post-trace content-type and digest metadata
// to every file leaf. Enrichment never fails the run: a failure for one
// leaf is logged and that leaf is simply left unannotated.
func enrich(root *tree.Node, opts cli.Options) {
	if !opts.DetectTypes && len(opts.HashAlgos) == 0 {
		return
	}
	for _, leaf := range root.Leaves() {
		if opts.DetectTypes {
			if ct, err := content.Detect(leaf.FullPath); err == nil {
				leaf.ContentType = ct
			} else {
				log.Debugf("filetrace: content detection failed for %s: %v", leaf.FullPath, err)
			}
		}
		if len(opts.HashAlgos) > 0 {
			if sums, err := digest.Sum(leaf.FullPath, opts.HashAlgos...); err == nil {
				leaf.Digest = sums
			} else {
				log.Debugf("filetrace: digest failed for %s: %v", leaf.FullPath, err)
			}
		}
	}
}
