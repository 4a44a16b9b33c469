package mode

import (
	"context"
	"fmt"

	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/vim"
)

// Command is what a matched key sequence runs. args holds the binding's
// static arguments merged with whatever its special keys matched.
type Command func(ctx context.Context, args keymap.Args) error

// Action is a named command. Action is the target type of every mode's
// command table; the name is what configuration refers to when remapping
// keys.
type Action struct {
	Name string
	Run  Command
}

// Sequence composes steps into one command. Each step returns before the
// next one starts, and the first error stops the sequence. Every step sees
// the same arguments.
func Sequence(steps ...Command) Command {
	return func(ctx context.Context, args keymap.Args) error {
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := step(ctx, args); err != nil {
				return err
			}
		}
		return nil
	}
}

// Noop does nothing. Escape maps to it where there is nothing to cancel
// but the pending chord.
func Noop(context.Context, keymap.Args) error { return nil }

// Switcher changes the active mode. The Manager implements it.
type Switcher interface {
	Switch(name string) error
}

// ToMode returns a command that switches to the named mode.
func ToMode(sw Switcher, name string) Command {
	return func(context.Context, keymap.Args) error {
		return sw.Switch(name)
	}
}

// Argument names used by the built-in command tables in addition to the
// ones of package vim.
const (
	// ArgText is the text typed by an insert command.
	ArgText = "text"

	// ArgBelow selects the side of the cursor line for open-line commands.
	ArgBelow = "below"
)

// count returns the typed count, 1 if none.
func count(args keymap.Args) int {
	return max(vim.CountArg(args), 1)
}

// motionCount multiplies the count typed before a command with the one
// typed inside its motion, as in "2 d 3 w".
func motionCount(args keymap.Args, m vim.Motion) int {
	return vim.CombineCounts(vim.CountArg(args), m.Count)
}

func motionArg(args keymap.Args) (vim.Motion, error) {
	m, ok := vim.MotionArg(args)
	if !ok {
		return vim.Motion{}, fmt.Errorf("%w: %s", ErrMissingArg, vim.ArgMotion)
	}
	return m, nil
}

func textObjectArg(args keymap.Args) (vim.TextObject, error) {
	obj, ok := vim.TextObjectArg(args)
	if !ok {
		return vim.TextObject{}, fmt.Errorf("%w: %s", ErrMissingArg, vim.ArgTextObject)
	}
	return obj, nil
}

// moveCursor moves by the motion argument.
func moveCursor(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		m, err := motionArg(args)
		if err != nil {
			return err
		}
		return ed.MoveCursor(ctx, m, motionCount(args, m))
	}
}

// extendSelection extends the selections by the motion argument.
func extendSelection(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		m, err := motionArg(args)
		if err != nil {
			return err
		}
		return ed.ExtendSelection(ctx, m, motionCount(args, m))
	}
}

// selectTextObject selects the text-object argument.
func selectTextObject(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		obj, err := textObjectArg(args)
		if err != nil {
			return err
		}
		return ed.SelectTextObject(ctx, obj)
	}
}

// operate applies op to a target of the given kind built from the args.
func operate(ed Editor, op vim.Operator, kind TargetKind) Command {
	return func(ctx context.Context, args keymap.Args) error {
		t := Target{Kind: kind, Count: count(args)}
		switch kind {
		case TargetMotion:
			m, err := motionArg(args)
			if err != nil {
				return err
			}
			t.Motion = m
			t.Count = motionCount(args, m)
		case TargetTextObject:
			obj, err := textObjectArg(args)
			if err != nil {
				return err
			}
			t.TextObject = obj
		}
		return ed.Operate(ctx, op, t)
	}
}

func deleteRight(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		return ed.DeleteSelectionsOrRight(ctx, count(args))
	}
}

func deleteLeft(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		return ed.DeleteSelectionsOrLeft(ctx, count(args))
	}
}

func deleteSelections(ed Editor) Command {
	return func(ctx context.Context, _ keymap.Args) error {
		return ed.DeleteSelections(ctx)
	}
}

func hideSuggestion(ed Editor) Command {
	return func(ctx context.Context, _ keymap.Args) error {
		return ed.HideSuggestion(ctx)
	}
}

func openLine(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		below, _ := args[ArgBelow].(bool)
		return ed.OpenLine(ctx, below)
	}
}

func joinLines(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		return ed.JoinLines(ctx, count(args))
	}
}

func undo(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		return ed.Undo(ctx, count(args))
	}
}

func redo(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		return ed.Redo(ctx, count(args))
	}
}

func replaceChar(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		r, ok := vim.CharacterArg(args)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingArg, vim.ArgCharacter)
		}
		return ed.ReplaceChar(ctx, r, count(args))
	}
}

// insertText types the static text argument, or the captured character.
func insertText(ed Editor) Command {
	return func(ctx context.Context, args keymap.Args) error {
		if text, ok := args.String(ArgText); ok {
			return ed.InsertText(ctx, text)
		}
		if r, ok := vim.CharacterArg(args); ok {
			return ed.InsertText(ctx, string(r))
		}
		return fmt.Errorf("%w: %s", ErrMissingArg, ArgText)
	}
}
