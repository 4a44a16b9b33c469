package input

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
	"github.com/dshills/keychord/internal/trace"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *trace.Editor, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ed := trace.New()
	s, err := NewSession(ed, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, ed, hook
}

func handle(t *testing.T, s *Session, keys string) keymap.MatchKind {
	t.Helper()
	kind, err := s.HandleTokens(context.Background(), key.MustSplit(keys)...)
	require.NoError(t, err)
	return kind
}

func TestNewSession(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, mode.ModeNormal, s.Mode())
	assert.Equal(t, []string{"insert", "normal", "visual", "visual-block", "visual-line"}, s.Modes())
	assert.Empty(t, s.Pending())
	assert.False(t, s.IsClosed())
}

func TestNewSessionInitialMode(t *testing.T) {
	s, _, _ := newTestSession(t, WithInitialMode(mode.ModeInsert))
	assert.Equal(t, mode.ModeInsert, s.Mode())

	_, err := NewSession(trace.New(), WithInitialMode("replace"))
	assert.ErrorIs(t, err, mode.ErrUnknownMode)
}

func TestSessionsHaveDistinctIDs(t *testing.T) {
	a, _, _ := newTestSession(t)
	b, _, _ := newTestSession(t)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestHandleKeyRunsCommand(t *testing.T) {
	s, ed, _ := newTestSession(t)

	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "3"))
	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "d"))
	assert.Equal(t, []string{"3", "d"}, s.Pending())
	assert.Equal(t, keymap.MatchSuccess, handle(t, s, "d"))

	assert.Equal(t, []string{"operate delete lines 3"}, ed.Take())
	assert.Empty(t, s.Pending())
}

func TestHandleKeyEvents(t *testing.T) {
	s, ed, _ := newTestSession(t)
	ctx := context.Background()

	kind, err := s.HandleKey(ctx, key.NewRuneEvent('r', key.ModCtrl))
	require.NoError(t, err)
	assert.Equal(t, keymap.MatchSuccess, kind)

	kind, err = s.HandleKey(ctx, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
	require.NoError(t, err)
	assert.Equal(t, keymap.MatchSuccess, kind)

	assert.Equal(t, []string{"redo 1"}, ed.Take())
}

func TestHandleKeyFailedClearsChord(t *testing.T) {
	s, ed, _ := newTestSession(t)

	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "d"))
	assert.Equal(t, keymap.MatchFailed, handle(t, s, "q"))
	assert.Empty(t, s.Pending())
	assert.Empty(t, ed.Calls())

	snap := s.Metrics().Snapshot()
	assert.Equal(t, uint64(2), snap.KeysTotal)
	assert.Equal(t, uint64(1), snap.Waiting)
	assert.Equal(t, uint64(1), snap.Failed)
}

func TestHandleTokenInvalid(t *testing.T) {
	s, _, _ := newTestSession(t)

	kind, err := s.HandleToken(context.Background(), "hyper+x")
	assert.ErrorIs(t, err, key.ErrInvalidToken)
	assert.Equal(t, keymap.MatchFailed, kind)
	assert.Zero(t, s.Metrics().KeysTotal())
}

func TestHandleTokenInvalidKeepsChord(t *testing.T) {
	s, ed, _ := newTestSession(t)
	ctx := context.Background()

	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "2 d"))

	kind, err := s.HandleToken(ctx, "hyper+x")
	assert.ErrorIs(t, err, key.ErrInvalidToken)
	assert.Equal(t, keymap.MatchWaiting, kind, "result must agree with the kept chord")
	assert.Equal(t, []string{"2", "d"}, s.Pending())

	assert.Equal(t, keymap.MatchSuccess, handle(t, s, "d"))
	assert.Equal(t, []string{"operate delete lines 2"}, ed.Take())
}

func TestModeSwitching(t *testing.T) {
	s, ed, _ := newTestSession(t)

	handle(t, s, "i")
	assert.Equal(t, mode.ModeInsert, s.Mode())
	handle(t, s, "h i space")
	handle(t, s, "escape")
	assert.Equal(t, mode.ModeNormal, s.Mode())

	handle(t, s, "V")
	assert.Equal(t, mode.ModeVisualLine, s.Mode())
	handle(t, s, "d")
	assert.Equal(t, mode.ModeNormal, s.Mode())

	assert.Equal(t, []string{
		`insert "h"`,
		`insert "i"`,
		`insert " "`,
		"hideSuggestion",
		"operate delete selection 1",
	}, ed.Take())
	assert.Equal(t, uint64(4), s.Metrics().Snapshot().ModeChanges)
}

func TestSwitchModeDropsChord(t *testing.T) {
	s, _, _ := newTestSession(t)

	handle(t, s, "2 d")
	require.NoError(t, s.SwitchMode(mode.ModeVisual))
	assert.Empty(t, s.Pending())
	assert.Equal(t, mode.ModeVisual, s.CurrentMode().Name())

	assert.ErrorIs(t, s.SwitchMode("replace"), mode.ErrUnknownMode)
}

func TestCommandErrorIsLogged(t *testing.T) {
	s, ed, hook := newTestSession(t)
	errReadOnly := errors.New("buffer is read-only")
	ed.FailOn("undo", errReadOnly)

	kind, err := s.HandleToken(context.Background(), "u")
	assert.Equal(t, keymap.MatchSuccess, kind)
	require.ErrorIs(t, err, errReadOnly)
	assert.Contains(t, err.Error(), "history.undo")
	assert.Equal(t, uint64(1), s.Metrics().CommandErrors())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "u", entry.Data["token"])
	assert.Equal(t, "normal", entry.Data["mode"])
	assert.Equal(t, "success", entry.Data["result"])
	assert.Equal(t, s.ID().String(), entry.Data["session"])
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), errReadOnly)
}

func TestKeystrokesAreLogged(t *testing.T) {
	s, _, hook := newTestSession(t)
	hook.Reset()

	handle(t, s, "d")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "key", entry.Message)
	assert.Equal(t, "d", entry.Data["token"])
	assert.Equal(t, "waiting", entry.Data["result"])
	assert.Equal(t, "d", entry.Data["pending"])
}

func TestMap(t *testing.T) {
	s, ed, _ := newTestSession(t)

	require.NoError(t, s.Map(mode.ModeNormal, "ctrl+h", "cursor.move", keymap.Args{vim.ArgMotion: vim.MotionLeft}))
	assert.Equal(t, keymap.MatchSuccess, handle(t, s, "ctrl+h"))
	assert.Equal(t, []string{"move left 1"}, ed.Take())

	err := s.Map("replace", "x", "noop", nil)
	assert.ErrorIs(t, err, mode.ErrUnknownMode)

	err = s.Map(mode.ModeNormal, "Q", "edit.format", nil)
	assert.ErrorIs(t, err, mode.ErrUnknownAction)
}

func TestMapRejectsTrailingCount(t *testing.T) {
	s, ed, _ := newTestSession(t)

	err := s.Map(mode.ModeNormal, "z {N}", "edit.joinLines", nil)
	assert.ErrorIs(t, err, keymap.ErrOpenEndedTail)

	// Nothing was bound, so the keys behave as before.
	assert.Equal(t, keymap.MatchFailed, handle(t, s, "z"))
	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "3"))
	assert.Equal(t, keymap.MatchSuccess, handle(t, s, "x"))
	assert.Equal(t, []string{"deleteRight 3", "hideSuggestion"}, ed.Take())
}

func TestMapRejectsUnremappableMode(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.ModeManager().Register(fixedMode{name: "fixed"})

	err := s.Map("fixed", "x", "noop", nil)
	assert.ErrorIs(t, err, ErrNotRemappable)
}

// fixedMode is a mode without a command table.
type fixedMode struct {
	name string
}

func (m fixedMode) Name() string                  { return m.name }
func (m fixedMode) DisplayName() string           { return m.name }
func (m fixedMode) CursorStyle() mode.CursorStyle { return mode.CursorBlock }
func (m fixedMode) Enter(*mode.Context) error     { return nil }
func (m fixedMode) Exit(*mode.Context) error      { return nil }
func (m fixedMode) Pending() []string             { return nil }
func (m fixedMode) Reset()                        {}
func (m fixedMode) Bindings() []*keymap.Binding[mode.Action] {
	return nil
}
func (m fixedMode) Feed(context.Context, string) (keymap.MatchKind, error) {
	return keymap.MatchFailed, nil
}

func TestHooks(t *testing.T) {
	var results []KeyResult
	s, ed, _ := newTestSession(t, WithHook(FuncHook{
		PostKeyFunc: func(_ key.Event, res KeyResult, _ State) {
			results = append(results, res)
		},
	}))

	// j becomes k; x is swallowed.
	s.Hooks().RegisterWithOptions(FuncHook{
		PreKeyFunc: func(ev *key.Event, _ State) bool {
			if ev.IsChar() && ev.Rune == 'j' {
				ev.Rune = 'k'
			}
			return false
		},
	}, "swap", HookPriorityHigh)
	s.Hooks().Register(FilterHook{
		Filter: func(ev *key.Event, _ State) bool { return ev.Token() == "x" },
	})

	assert.Equal(t, keymap.MatchSuccess, handle(t, s, "j"))
	assert.Equal(t, keymap.MatchFailed, handle(t, s, "x"))

	assert.Equal(t, []string{"move up 1"}, ed.Take())
	require.Len(t, results, 2)
	assert.Equal(t, KeyResult{Token: "k", Kind: keymap.MatchSuccess}, results[0])
	assert.Equal(t, KeyResult{Token: "x", Kind: keymap.MatchFailed, Consumed: true}, results[1])
	assert.Equal(t, uint64(1), s.Metrics().Snapshot().HookConsumptions)
}

func TestHookSeesState(t *testing.T) {
	var pre, post State
	s, _, _ := newTestSession(t, WithHook(FuncHook{
		PreKeyFunc:  func(_ *key.Event, st State) bool { pre = st; return false },
		PostKeyFunc: func(_ key.Event, _ KeyResult, st State) { post = st },
	}))

	handle(t, s, "2")
	handle(t, s, "s")

	assert.Equal(t, s.ID(), pre.SessionID)
	assert.Equal(t, mode.ModeNormal, pre.Mode)
	assert.Equal(t, []string{"2"}, pre.Pending)
	assert.Equal(t, mode.ModeInsert, post.Mode)
	assert.Empty(t, post.Pending)
}

func TestConsumedKeyKeepsChord(t *testing.T) {
	s, _, _ := newTestSession(t, WithHook(FilterHook{
		Filter: func(ev *key.Event, _ State) bool { return ev.Token() == "ctrl+l" },
	}))

	handle(t, s, "d")
	assert.Equal(t, keymap.MatchWaiting, handle(t, s, "ctrl+l"))
	assert.Equal(t, []string{"d"}, s.Pending())
}

func TestMacroRecordAndReplay(t *testing.T) {
	s, ed, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.StartRecording('a'))
	handle(t, s, "d w i x escape")
	tokens, err := s.StopRecording()
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "w", "i", "x", "escape"}, tokens)
	ed.Take()

	require.NoError(t, s.Replay(ctx, 'a', 2))
	assert.Equal(t, []string{
		"operate delete motion wordForward 1", `insert "x"`, "hideSuggestion",
		"operate delete motion wordForward 1", `insert "x"`, "hideSuggestion",
	}, ed.Take())
	assert.Equal(t, mode.ModeNormal, s.Mode())
	assert.Equal(t, 'a', s.Macros().LastPlayed())
}

func TestReplayIsNotRecorded(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.Macros().Set('a', []string{"j", "j"}))
	require.NoError(t, s.StartRecording('b'))
	handle(t, s, "k")
	require.NoError(t, s.Replay(ctx, 'a', 1))
	handle(t, s, "l")
	tokens, err := s.StopRecording()
	require.NoError(t, err)

	assert.Equal(t, []string{"k", "l"}, tokens)
}

func TestReplayErrors(t *testing.T) {
	s, ed, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.StopRecording()
	assert.Error(t, err)
	assert.Error(t, s.Replay(ctx, 'z', 1))
	assert.Error(t, s.StartRecording('%'))

	errFull := errors.New("disk full")
	ed.FailOn("join", errFull)
	require.NoError(t, s.Macros().Set('j', []string{"J", "J"}))
	err = s.Replay(ctx, 'j', 3)
	assert.ErrorIs(t, err, errFull)
	assert.Equal(t, []string{"join 1"}, ed.Take())
}

func TestClose(t *testing.T) {
	s, _, _ := newTestSession(t)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())

	_, err := s.HandleToken(context.Background(), "j")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.SwitchMode(mode.ModeInsert), ErrClosed)
	assert.ErrorIs(t, s.Replay(context.Background(), 'a', 1), ErrClosed)
}

func TestConcurrentKeys(t *testing.T) {
	s, ed, _ := newTestSession(t)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = s.HandleToken(context.Background(), "j")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(500), s.Metrics().KeysTotal())
	assert.Len(t, ed.Calls(), 500)
}
