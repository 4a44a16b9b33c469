package input

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/macro"
	"github.com/dshills/keychord/internal/input/mode"
)

// Session errors
var (
	ErrClosed        = errors.New("session closed")
	ErrNotRemappable = errors.New("mode does not accept mappings")
)

// Remapper is implemented by modes whose command table can be extended.
type Remapper interface {
	Map(keys, action string, args keymap.Args) error
}

// Session is one editing session: the set of modes around a host editor,
// the active mode and its pending chord. Keystrokes are processed one at
// a time, to completion, in the order they arrive.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	modes   *mode.Manager
	log     *logrus.Entry
	metrics *Metrics
	hooks   *HookManager

	macros    *macro.Recorder
	player    *macro.Player
	replaying bool

	closed bool
}

// Option configures a Session.
type Option func(*options)

type options struct {
	logger      *logrus.Logger
	metrics     *Metrics
	recorder    *macro.Recorder
	initialMode string
	hooks       []Hook
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics shares a metrics tracker with the session.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRecorder shares a macro recorder with the session.
func WithRecorder(r *macro.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithInitialMode sets the mode the session starts in (default: normal).
func WithInitialMode(name string) Option {
	return func(o *options) { o.initialMode = name }
}

// WithHook registers a hook at normal priority.
func WithHook(h Hook) Option {
	return func(o *options) { o.hooks = append(o.hooks, h) }
}

// NewSession creates a session over ed with the built-in modes.
func NewSession(ed mode.Editor, opts ...Option) (*Session, error) {
	o := options{
		initialMode: mode.ModeNormal,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics()
	}
	if o.recorder == nil {
		o.recorder = macro.NewRecorder()
	}

	s := &Session{
		id:      uuid.New(),
		modes:   mode.NewManager(),
		metrics: o.metrics,
		hooks:   NewHookManager(),
		macros:  o.recorder,
		player:  macro.NewPlayer(o.recorder),
	}
	s.log = o.logger.WithField("session", s.id.String())
	for _, h := range o.hooks {
		s.hooks.Register(h)
	}

	if err := s.modes.RegisterDefaults(ed); err != nil {
		return nil, fmt.Errorf("register modes: %w", err)
	}
	s.modes.OnChange(s.modeChanged)
	if err := s.modes.SetInitialMode(o.initialMode); err != nil {
		return nil, fmt.Errorf("initial mode: %w", err)
	}
	return s, nil
}

// modeChanged runs from inside commands, while mu is held. It must not
// take the lock.
func (s *Session) modeChanged(from, to mode.Mode) {
	if from == nil {
		s.log.WithField("mode", to.Name()).Debug("initial mode")
		return
	}
	s.metrics.RecordModeChange()
	s.log.WithFields(logrus.Fields{
		"from": from.Name(),
		"to":   to.Name(),
	}).Debug("mode changed")
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// HandleKey processes one keystroke from the host.
//
// It returns how the pending chord matched. A FAILED match is not an
// error; the error is the one returned by the command that ran, if any.
func (s *Session) HandleKey(ctx context.Context, ev key.Event) (keymap.MatchKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return keymap.MatchFailed, ErrClosed
	}
	return s.handleLocked(ctx, ev)
}

// HandleToken processes one keystroke written as a token, e.g. "ctrl+r" or
// "escape". Tokens that name no key are rejected with key.ErrInvalidToken
// and never reach the mode, so a pending chord stays pending and the
// result is WAITING.
func (s *Session) HandleToken(ctx context.Context, tok string) (keymap.MatchKind, error) {
	ev, err := key.ParseToken(tok)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.heldKindLocked(), err
	}
	return s.HandleKey(ctx, ev)
}

// HandleTokens processes keystrokes in order and returns the outcome of the
// last one. It stops at the first command error.
func (s *Session) HandleTokens(ctx context.Context, tokens ...string) (keymap.MatchKind, error) {
	kind := keymap.MatchWaiting
	for _, tok := range tokens {
		var err error
		if kind, err = s.HandleToken(ctx, tok); err != nil {
			return kind, err
		}
	}
	return kind, nil
}

func (s *Session) handleLocked(ctx context.Context, ev key.Event) (keymap.MatchKind, error) {
	timer := s.metrics.StartKeyTimer()

	if s.hooks.RunPreKey(&ev, s.stateLocked()) {
		s.metrics.RecordHookConsumption()
		kind := s.heldKindLocked()
		res := KeyResult{Token: ev.Token(), Kind: kind, Consumed: true}
		timer.Stop(kind)
		s.hooks.RunPostKey(ev, res, s.stateLocked())
		return kind, nil
	}

	tok := ev.Token()
	current := s.modes.Current()
	if s.macros.IsRecording() && !s.replaying {
		s.macros.Record(tok)
	}

	kind, err := current.Feed(ctx, tok)
	timer.Stop(kind)

	entry := s.log.WithFields(logrus.Fields{
		"mode":   current.Name(),
		"token":  tok,
		"result": kind.String(),
	})
	if err != nil {
		s.metrics.RecordCommandError()
		entry.WithError(err).Warn("command failed")
	} else {
		entry.WithField("pending", key.Join(s.modes.Current().Pending())).Debug("key")
	}

	s.hooks.RunPostKey(ev, KeyResult{Token: tok, Kind: kind, Err: err}, s.stateLocked())
	return kind, err
}

// heldKindLocked is the result of a keystroke that never reached the mode:
// WAITING while a chord is pending, FAILED otherwise.
func (s *Session) heldKindLocked() keymap.MatchKind {
	if m := s.modes.Current(); !s.closed && m != nil && len(m.Pending()) > 0 {
		return keymap.MatchWaiting
	}
	return keymap.MatchFailed
}

func (s *Session) stateLocked() State {
	st := State{SessionID: s.id, Recording: s.macros.Recording()}
	if m := s.modes.Current(); m != nil {
		st.Mode = m.Name()
		st.Pending = m.Pending()
	}
	return st
}

// Mode returns the name of the active mode.
func (s *Session) Mode() string {
	return s.modes.CurrentName()
}

// CurrentMode returns the active mode.
func (s *Session) CurrentMode() mode.Mode {
	return s.modes.Current()
}

// Modes returns the sorted names of the registered modes.
func (s *Session) Modes() []string {
	return s.modes.Modes()
}

// ModeManager returns the session's mode manager.
func (s *Session) ModeManager() *mode.Manager {
	return s.modes
}

// SwitchMode makes the named mode active, dropping any pending chord.
func (s *Session) SwitchMode(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.modes.Switch(name)
}

// Pending returns the tokens buffered towards the next command.
func (s *Session) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.modes.Current(); m != nil {
		return m.Pending()
	}
	return nil
}

// Map binds keys to a named action of a mode's command table.
func (s *Session) Map(modeName, keys, action string, args keymap.Args) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.modes.Get(modeName)
	if m == nil {
		return fmt.Errorf("%w: %s", mode.ErrUnknownMode, modeName)
	}
	mm, ok := m.(Remapper)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRemappable, modeName)
	}
	if err := mm.Map(keys, action, args); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"mode":   modeName,
		"keys":   keys,
		"action": action,
	}).Debug("mapped")
	return nil
}

// Metrics returns the session's metrics tracker.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Hooks returns the session's hook manager.
func (s *Session) Hooks() *HookManager {
	return s.hooks
}

// Macros returns the session's macro recorder.
func (s *Session) Macros() *macro.Recorder {
	return s.macros
}

// StartRecording records the following keystrokes into a register.
func (s *Session) StartRecording(reg rune) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.macros.Start(reg); err != nil {
		return err
	}
	s.log.WithField("register", string(reg)).Debug("recording")
	return nil
}

// StopRecording ends the recording and returns the recorded tokens.
func (s *Session) StopRecording() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, tokens, err := s.macros.Stop()
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"register": string(reg),
		"tokens":   len(tokens),
	}).Debug("recorded")
	return tokens, nil
}

// Replay feeds a recorded register through the session count times.
// Replayed keystrokes are not recorded again.
func (s *Session) Replay(ctx context.Context, reg rune, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.replaying = true
	defer func() { s.replaying = false }()

	return s.player.Play(ctx, reg, count, func(ctx context.Context, tok string) error {
		ev, err := key.ParseToken(tok)
		if err != nil {
			return err
		}
		_, err = s.handleLocked(ctx, ev)
		return err
	})
}

// Close ends the session. Further keystrokes return ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.hooks.Clear()
	s.log.WithField("keys", s.metrics.KeysTotal()).Debug("session closed")
	return nil
}

// IsClosed reports whether Close was called.
func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
