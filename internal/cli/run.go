package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/macro"
	"github.com/dshills/keychord/internal/input/mode"
)

// Keys the run loop handles itself instead of passing to the session.
const (
	quitToken   = "ctrl+c"
	recordToken = "f2"
	replayToken = "f3"

	// macroRegister is the register F2 records into and F3 replays.
	macroRegister = 'q'
)

// NewRunCommand creates the run command.
func NewRunCommand(root *rootOptions) *cobra.Command {
	var (
		modeName string
		logFile  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Type keys in the terminal and watch what they resolve to",
		Long: `Open an interactive terminal session. Every keystroke goes through the
command tables and the resulting editor calls are listed.

  Ctrl+C  quit
  F2      start or stop recording a macro into register q
  F3      replay register q`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.setup(cmd, modeName)
			if err != nil {
				return err
			}
			defer env.session.Close()

			// The terminal belongs to the screen while it runs.
			env.log.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				env.log.SetOutput(f)
				env.session.Hooks().Register(input.LoggingHook{Logger: env.log})
			}

			if path := env.cfg.MacrosFile; path != "" {
				if err := macro.Load(env.session.Macros(), path); err != nil {
					return err
				}
				defer func() {
					if err := macro.Save(env.session.Macros(), path); err != nil {
						env.log.WithError(err).Error("saving macros")
					}
				}()
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			return newRunView(screen, env).loop(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "mode to start in (default from config)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

// runView draws the session state and the history of resolved keys.
type runView struct {
	screen  tcell.Screen
	env     *sessionEnv
	history []string
	message string
}

func newRunView(screen tcell.Screen, env *sessionEnv) *runView {
	return &runView{screen: screen, env: env}
}

// loop handles terminal events until Ctrl+C or the screen is finalized.
func (v *runView) loop(ctx context.Context) error {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ctx, key.FromTcell(ev)) {
				return nil
			}
		}
		v.draw()
	}
}

// handleKey reports false when the loop should stop.
func (v *runView) handleKey(ctx context.Context, ev key.Event) bool {
	s := v.env.session
	tok := ev.Token()
	v.message = ""

	switch tok {
	case quitToken:
		return false
	case recordToken:
		if s.Macros().IsRecording() {
			tokens, err := s.StopRecording()
			v.report(err, "recorded %d keys into @%c", len(tokens), macroRegister)
		} else {
			err := s.StartRecording(macroRegister)
			v.report(err, "recording @%c", macroRegister)
		}
		return true
	case replayToken:
		err := s.Replay(ctx, macroRegister, 1)
		v.push("@" + string(macroRegister))
		v.report(err, "")
		return true
	}

	kind, err := s.HandleKey(ctx, ev)
	v.push(fmt.Sprintf("%-8s %-8s", tok, kind))
	v.report(err, "")
	return true
}

// push adds a history line, followed by the editor calls made since the
// last one.
func (v *runView) push(line string) {
	if calls := v.env.editor.Take(); len(calls) > 0 {
		line += "  " + strings.Join(calls, "; ")
	}
	v.history = append(v.history, line)
}

func (v *runView) report(err error, format string, a ...any) {
	switch {
	case err != nil:
		v.message = "error: " + err.Error()
	case format != "":
		v.message = fmt.Sprintf(format, a...)
	}
}

func (v *runView) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if height < 2 {
		v.screen.Show()
		return
	}

	// History fills the screen above the status line, newest last.
	lines := v.history
	if len(lines) > height-1 {
		lines = lines[len(lines)-(height-1):]
	}
	for y, line := range lines {
		v.putString(0, y, width, line, tcell.StyleDefault)
	}

	s := v.env.session
	status := fmt.Sprintf("-- %s --", s.CurrentMode().DisplayName())
	if pending := s.Pending(); len(pending) > 0 {
		status += "  " + key.Join(pending)
	}
	if reg := s.Macros().Recording(); reg != 0 {
		status += fmt.Sprintf("  recording @%c", reg)
	}
	if v.message != "" {
		status += "  " + v.message
	}
	v.putString(0, height-1, width, status, tcell.StyleDefault.Reverse(true))

	if style := s.CurrentMode().CursorStyle(); style == mode.CursorHidden {
		v.screen.HideCursor()
	} else {
		v.screen.SetCursorStyle(cursorStyle(style))
		v.screen.ShowCursor(min(len(status), width-1), height-1)
	}
	v.screen.Show()
}

func (v *runView) putString(x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func cursorStyle(c mode.CursorStyle) tcell.CursorStyle {
	switch c {
	case mode.CursorBar:
		return tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
