package macro

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyRegister is returned when replaying a register with no tokens.
var ErrEmptyRegister = errors.New("empty register")

// TokenHandler consumes one replayed token.
type TokenHandler func(ctx context.Context, tok string) error

// Player replays the registers of a Recorder.
type Player struct {
	rec *Recorder
}

// NewPlayer creates a player over rec.
func NewPlayer(rec *Recorder) *Player {
	return &Player{rec: rec}
}

// Play feeds the tokens of a register to h, count times. A count below one
// plays once. Playback stops at the first handler error or when ctx is
// done.
func (p *Player) Play(ctx context.Context, name rune, count int, h TokenHandler) error {
	reg, _, err := ParseRegister(name)
	if err != nil {
		return err
	}
	tokens := p.rec.Get(reg)
	if len(tokens) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRegister, reg)
	}
	p.rec.setLastPlayed(reg)

	for range max(count, 1) {
		for _, tok := range tokens {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := h(ctx, tok); err != nil {
				return fmt.Errorf("replay %q at %q: %w", reg, tok, err)
			}
		}
	}
	return nil
}

// PlayLast replays the register played most recently, as Vim's "@@".
func (p *Player) PlayLast(ctx context.Context, count int, h TokenHandler) error {
	reg := p.rec.LastPlayed()
	if reg == 0 {
		return fmt.Errorf("%w: no macro played yet", ErrEmptyRegister)
	}
	return p.Play(ctx, reg, count, h)
}
