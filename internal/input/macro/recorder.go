package macro

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"unicode"
)

// Recorder errors
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
)

// ParseRegister resolves a register name. Uppercase letters address the
// lowercase register in append mode.
func ParseRegister(r rune) (reg rune, appendTo bool, err error) {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r, false, nil
	case r >= 'A' && r <= 'Z':
		return unicode.ToLower(r), true, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrInvalidRegister, r)
}

// Recorder captures key tokens into registers.
// It is safe for concurrent use.
type Recorder struct {
	mu sync.RWMutex

	registers map[rune][]string

	// recording is the target register, 0 when idle.
	recording rune
	appendTo  bool
	buffer    []string

	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]string),
	}
}

// Start begins recording into the named register.
func (r *Recorder) Start(name rune) error {
	reg, appendTo, err := ParseRegister(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording != 0 {
		return fmt.Errorf("%w into %q", ErrAlreadyRecording, r.recording)
	}
	r.recording = reg
	r.appendTo = appendTo
	r.buffer = r.buffer[:0]
	return nil
}

// Stop ends recording and stores the captured tokens. It returns the
// register written and its resulting contents.
func (r *Recorder) Stop() (rune, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording == 0 {
		return 0, nil, ErrNotRecording
	}

	reg := r.recording
	tokens := slices.Clone(r.buffer)
	if r.appendTo {
		tokens = append(slices.Clone(r.registers[reg]), tokens...)
	}
	r.registers[reg] = tokens

	r.recording = 0
	r.appendTo = false
	r.buffer = r.buffer[:0]
	return reg, slices.Clone(tokens), nil
}

// Record appends a token to the macro being recorded. It does nothing
// when not recording.
func (r *Recorder) Record(tok string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording != 0 {
		r.buffer = append(r.buffer, tok)
	}
}

// IsRecording reports whether a macro is being recorded.
func (r *Recorder) IsRecording() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recording != 0
}

// Recording returns the register being recorded, 0 when idle.
func (r *Recorder) Recording() rune {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recording
}

// Get returns a copy of a register's tokens.
func (r *Recorder) Get(name rune) []string {
	reg, _, err := ParseRegister(name)
	if err != nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.registers[reg])
}

// Set replaces a register's tokens. An empty list clears the register.
func (r *Recorder) Set(name rune, tokens []string) error {
	reg, appendTo, err := ParseRegister(name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if appendTo {
		tokens = append(slices.Clone(r.registers[reg]), tokens...)
	}
	if len(tokens) == 0 {
		delete(r.registers, reg)
		return nil
	}
	r.registers[reg] = slices.Clone(tokens)
	return nil
}

// Registers returns the names of the non-empty registers in order.
func (r *Recorder) Registers() []rune {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]rune, 0, len(r.registers))
	for reg, tokens := range r.registers {
		if len(tokens) > 0 {
			names = append(names, reg)
		}
	}
	slices.Sort(names)
	return names
}

// Clear empties every register. A recording in progress is kept.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = make(map[rune][]string)
	r.lastPlayed = 0
}

// LastPlayed returns the register replayed most recently, 0 if none.
func (r *Recorder) LastPlayed() rune {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastPlayed
}

func (r *Recorder) setLastPlayed(reg rune) {
	r.mu.Lock()
	r.lastPlayed = reg
	r.mu.Unlock()
}
