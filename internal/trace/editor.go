// Package trace provides a mode.Editor that performs no edits and reports
// each call it receives instead. The keychord CLI drives it to show what a
// key sequence resolves to.
package trace

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// Editor records every call as one line of text, e.g.
// "operate delete motion wordForward 6".
type Editor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	out   io.Writer
	log   logrus.FieldLogger
}

var _ mode.Editor = (*Editor)(nil)

// New creates an empty trace editor.
func New() *Editor {
	return &Editor{fail: make(map[string]error)}
}

// SetOutput makes the editor write each call line to w as it happens.
func (e *Editor) SetOutput(w io.Writer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.out = w
}

// SetLogger makes the editor log each call at info level.
func (e *Editor) SetLogger(l logrus.FieldLogger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = l
}

// FailOn makes every call of the named method return err. The method
// names are the first word of the call lines; a nil err clears it.
func (e *Editor) FailOn(method string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		delete(e.fail, method)
		return
	}
	e.fail[method] = err
}

// Calls returns the call lines recorded so far.
func (e *Editor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.calls)
}

// Take returns the recorded call lines and forgets them.
func (e *Editor) Take() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := e.calls
	e.calls = nil
	return calls
}

func (e *Editor) record(method, format string, a ...any) error {
	line := method
	if format != "" {
		line += " " + fmt.Sprintf(format, a...)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, line)
	if e.out != nil {
		fmt.Fprintln(e.out, line)
	}
	if e.log != nil {
		e.log.WithField("method", method).Info(line)
	}
	return e.fail[method]
}

func (e *Editor) MoveCursor(_ context.Context, m vim.Motion, count int) error {
	return e.record("move", "%s %d", m, count)
}

func (e *Editor) ExtendSelection(_ context.Context, m vim.Motion, count int) error {
	return e.record("extend", "%s %d", m, count)
}

func (e *Editor) SelectTextObject(_ context.Context, obj vim.TextObject) error {
	return e.record("select", "%s", obj)
}

func (e *Editor) Operate(_ context.Context, op vim.Operator, t mode.Target) error {
	switch t.Kind {
	case mode.TargetMotion:
		return e.record("operate", "%s %s %s %d", op.Name, t.Kind, t.Motion, t.Count)
	case mode.TargetTextObject:
		return e.record("operate", "%s %s %s %d", op.Name, t.Kind, t.TextObject, t.Count)
	default:
		return e.record("operate", "%s %s %d", op.Name, t.Kind, t.Count)
	}
}

func (e *Editor) DeleteSelectionsOrRight(_ context.Context, count int) error {
	return e.record("deleteRight", "%d", count)
}

func (e *Editor) DeleteSelectionsOrLeft(_ context.Context, count int) error {
	return e.record("deleteLeft", "%d", count)
}

func (e *Editor) DeleteSelections(context.Context) error {
	return e.record("deleteSelections", "")
}

func (e *Editor) OpenLine(_ context.Context, below bool) error {
	if below {
		return e.record("openLine", "below")
	}
	return e.record("openLine", "above")
}

func (e *Editor) JoinLines(_ context.Context, count int) error {
	return e.record("join", "%d", count)
}

func (e *Editor) Undo(_ context.Context, count int) error {
	return e.record("undo", "%d", count)
}

func (e *Editor) Redo(_ context.Context, count int) error {
	return e.record("redo", "%d", count)
}

func (e *Editor) ReplaceChar(_ context.Context, r rune, count int) error {
	return e.record("replace", "%c %d", r, count)
}

func (e *Editor) InsertText(_ context.Context, text string) error {
	return e.record("insert", "%q", text)
}

func (e *Editor) HideSuggestion(context.Context) error {
	return e.record("hideSuggestion", "")
}
