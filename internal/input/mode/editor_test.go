package mode

import (
	"context"
	"fmt"

	"github.com/dshills/keychord/internal/input/vim"
)

// recorder is an Editor that records every call as a line of text.
type recorder struct {
	calls []string

	// fail makes the named method return the error.
	fail map[string]error
}

func (r *recorder) record(method, format string, a ...any) error {
	line := method
	if format != "" {
		line += " " + fmt.Sprintf(format, a...)
	}
	r.calls = append(r.calls, line)
	return r.fail[method]
}

func (r *recorder) take() []string {
	calls := r.calls
	r.calls = nil
	return calls
}

func (r *recorder) MoveCursor(_ context.Context, m vim.Motion, count int) error {
	return r.record("move", "%s %d", m, count)
}

func (r *recorder) ExtendSelection(_ context.Context, m vim.Motion, count int) error {
	return r.record("extend", "%s %d", m, count)
}

func (r *recorder) SelectTextObject(_ context.Context, obj vim.TextObject) error {
	return r.record("select", "%s", obj)
}

func (r *recorder) Operate(_ context.Context, op vim.Operator, t Target) error {
	switch t.Kind {
	case TargetMotion:
		return r.record("operate", "%s %s %s %d", op.Name, t.Kind, t.Motion, t.Count)
	case TargetTextObject:
		return r.record("operate", "%s %s %s %d", op.Name, t.Kind, t.TextObject, t.Count)
	default:
		return r.record("operate", "%s %s %d", op.Name, t.Kind, t.Count)
	}
}

func (r *recorder) DeleteSelectionsOrRight(_ context.Context, count int) error {
	return r.record("deleteRight", "%d", count)
}

func (r *recorder) DeleteSelectionsOrLeft(_ context.Context, count int) error {
	return r.record("deleteLeft", "%d", count)
}

func (r *recorder) DeleteSelections(context.Context) error {
	return r.record("deleteSelections", "")
}

func (r *recorder) OpenLine(_ context.Context, below bool) error {
	if below {
		return r.record("openLine", "below")
	}
	return r.record("openLine", "above")
}

func (r *recorder) JoinLines(_ context.Context, count int) error {
	return r.record("join", "%d", count)
}

func (r *recorder) Undo(_ context.Context, count int) error {
	return r.record("undo", "%d", count)
}

func (r *recorder) Redo(_ context.Context, count int) error {
	return r.record("redo", "%d", count)
}

func (r *recorder) ReplaceChar(_ context.Context, ch rune, count int) error {
	return r.record("replace", "%c %d", ch, count)
}

func (r *recorder) InsertText(_ context.Context, text string) error {
	return r.record("insert", "%q", text)
}

func (r *recorder) HideSuggestion(context.Context) error {
	return r.record("hideSuggestion", "")
}
