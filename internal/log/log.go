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

// Package log provides the process-wide logging facility for filetrace.
//
// It wraps logrus with a fixed timestamp/level format and a routing
// policy that sends warnings and errors to stderr while everything else
// goes to stdout, matching the severity contract the supervisor and its
// collaborators are written against.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&timestampFormatter{})
	l.SetOutput(io.Discard)
	l.AddHook(&stdoutHook{stderrHook{out: os.Stdout}})
	l.AddHook(&stderrHook{out: os.Stderr})
	return l
}

// timestampFormatter renders "[2006-01-02T15:04:05.000Z07:00] [LEVEL] message".
type timestampFormatter struct{}

func (f *timestampFormatter) Format(e *logrus.Entry) ([]byte, error) {
	ts := e.Time.Format("2006-01-02T15:04:05.000Z07:00")
	level := levelTag(e.Level)
	msg := e.Message + "\n"
	return []byte("[" + ts + "] [" + level + "] " + msg), nil
}

func levelTag(l logrus.Level) string {
	switch l {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

// stderrHook emits warning/error records (and above) to a diagnostic
// stream. The logger's own output is discarded, so each record reaches
// exactly one stream through stderrHook or stdoutHook.
type stderrHook struct {
	out io.Writer
}

func (h *stderrHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *stderrHook) Fire(e *logrus.Entry) error {
	line, err := e.Logger.Formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

// stdoutHook emits trace/debug/info records to the primary stream.
type stdoutHook struct{ stderrHook }

func (h *stdoutHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.TraceLevel, logrus.DebugLevel, logrus.InfoLevel}
}

// SetOutput redirects the primary (non-warning/error) stream. Intended for tests.
func SetOutput(w io.Writer) {
	for _, hook := range base.Hooks[logrus.InfoLevel] {
		if h, ok := hook.(*stdoutHook); ok {
			h.out = w
		}
	}
}

// SetDiagnosticOutput redirects the warning/error stream. Intended for tests.
func SetDiagnosticOutput(w io.Writer) {
	for _, hook := range base.Hooks[logrus.WarnLevel] {
		if h, ok := hook.(*stderrHook); ok {
			h.out = w
		}
	}
}

func Trace(args ...interface{})                 { base.Trace(args...) }
func Tracef(format string, args ...interface{}) { base.Tracef(format, args...) }
func Debug(args ...interface{})                 { base.Debug(args...) }
func Debugf(format string, args ...interface{}) { base.Debugf(format, args...) }
func Info(args ...interface{})                  { base.Info(args...) }
func Infof(format string, args ...interface{})  { base.Infof(format, args...) }
func Warn(args ...interface{})                  { base.Warn(args...) }
func Warnf(format string, args ...interface{})  { base.Warnf(format, args...) }
func Error(args ...interface{})                 { base.Error(args...) }
func Errorf(format string, args ...interface{}) { base.Errorf(format, args...) }
