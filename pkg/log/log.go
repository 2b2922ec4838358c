// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	patchIndent = 4  // spaces to indent patch entries
	idWidth     = 30 // Base width for patch id
	countWidth  = 8  // Width for occurrence count
	statusWidth = 15 // Width for status text
)

// 🩹 PatchEntry is one patch's outcome for display
type PatchEntry struct {
	ID          string // Patch id
	Status      string // Short status text
	Occurrences int    // Number of occurrences replaced
	Required    bool   // Whether the patch is required
	IsApplied   bool   // Whether the patch matched
	IsSkipped   bool   // Whether the patch was filtered out for this document
	IsWarning   bool   // Whether the patch had a problem reported as a warning
	IsError     bool   // Whether the patch had a problem reported as an error that does not fail the run
	IsFailed    bool   // Whether the patch fails the run
}

// 📄 DocumentOperation describes the document being patched
type DocumentOperation struct {
	Path    string // Document path
	Policy  string // Match policy
	Patches int    // Number of patches in the set
	DryRun  bool   // Whether the result will be written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *DocumentOperation
	entries   []PatchEntry
}

// 🏭 New creates a new logger writing user feedback to console and
// structured events to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatPatchEntry formats a patch entry for display
func (l *Logger) formatPatchEntry(e PatchEntry) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case e.IsFailed, e.IsError:
		symbol = '✗'
		symbolColor = color.FgRed
	case e.IsWarning:
		symbol = '!'
		symbolColor = color.FgYellow
	case e.IsSkipped:
		symbol = '-'
		symbolColor = color.FgHiBlack
	case e.IsApplied:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	kind := "optional"
	kindColor := color.FgYellow
	if e.Required {
		kind = "required"
		kindColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", patchIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", idWidth, e.ID),
		fmt.Sprintf("%*d×", countWidth-1, e.Occurrences),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", countWidth+1, kind)),
		fmt.Sprintf("%-*s", statusWidth, e.Status))
}

// 📝 LogPatch logs a patch outcome
func (l *Logger) LogPatch(ctx context.Context, e PatchEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)

	fmt.Fprintln(l.console, l.formatPatchEntry(e))

	evt := l.zlog.Info()
	switch {
	case e.IsFailed, e.IsError:
		evt = l.zlog.Error()
	case e.IsWarning:
		evt = l.zlog.Warn()
	case e.IsSkipped:
		evt = l.zlog.Debug()
	}

	doc := ""
	if l.currentOp != nil {
		doc = l.currentOp.Path
	}

	evt.
		Str("document", doc).
		Str("patch", e.ID).
		Str("status", e.Status).
		Int("occurrences", e.Occurrences).
		Bool("required", e.Required).
		Bool("applied", e.IsApplied).
		Bool("skipped", e.IsSkipped).
		Msg("patch")
}

// 📝 StartDocument starts a new document section
func (l *Logger) StartDocument(ctx context.Context, op DocumentOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.entries = nil

	mode := "apply"
	if op.DryRun {
		mode = "dry-run"
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Path),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%s, %d patches, %s", op.Policy, op.Patches, mode))

	l.zlog.Info().
		Str("document", op.Path).
		Str("policy", op.Policy).
		Int("patches", op.Patches).
		Bool("dry_run", op.DryRun).
		Msg("patching document")
}

// 📝 EndDocument ends the current document section
func (l *Logger) EndDocument(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	applied, errored, failed := 0, 0, 0
	for _, e := range l.entries {
		switch {
		case e.IsApplied:
			applied++
		case e.IsFailed:
			failed++
		case e.IsError:
			errored++
		}
	}

	l.zlog.Info().
		Str("document", l.currentOp.Path).
		Int("patches", len(l.entries)).
		Int("applied", applied).
		Int("errors", errored).
		Int("failed", failed).
		Msg("document complete")

	l.currentOp = nil
	l.entries = nil
}

// 📝 Write writes raw text to the console
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.console.Write(p)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
