// Package navigation models the client's screen router. The server never
// renders screens; it records the instruction the client should follow and
// returns it with the response.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	applog "github.com/janisto/little-lemon/internal/platform/logging"
)

// Destination is an opaque screen route understood by the client.
type Destination string

// Known destinations.
const (
	MainApp    Destination = "/(tabs)"
	Onboarding Destination = "/onboarding"
	Profile    Destination = "/profile"
)

// Valid reports whether d is a known destination.
func (d Destination) Valid() bool {
	switch d {
	case MainApp, Onboarding, Profile:
		return true
	}
	return false
}

// Mode is the addressing mode of a navigation instruction.
type Mode string

// Replace discards the current screen, Push keeps it on the back stack, and
// Navigate lets the client router decide.
const (
	ModeReplace  Mode = "replace"
	ModePush     Mode = "push"
	ModeNavigate Mode = "navigate"
)

// ErrUnknownDestination is returned for destinations the client cannot route to.
var ErrUnknownDestination = errors.New("unknown destination")

// Instruction tells the client where to go and how.
type Instruction struct {
	Mode        Mode        `json:"mode" enum:"replace,push,navigate" doc:"Addressing mode"`
	Destination Destination `json:"destination" example:"/(tabs)" doc:"Client route"`
}

// Navigator is the navigation collaborator.
type Navigator interface {
	Replace(ctx context.Context, dest Destination) error
	Push(ctx context.Context, dest Destination) error
	Navigate(ctx context.Context, dest Destination) error
}

// Recorder is a Navigator that remembers every instruction it accepted.
// The Fail* fields, when set, make the matching call fail.
type Recorder struct {
	FailReplace  error
	FailPush     error
	FailNavigate error

	mu      sync.Mutex
	history []Instruction
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Replace(ctx context.Context, dest Destination) error {
	return r.record(ctx, ModeReplace, dest, r.FailReplace)
}

func (r *Recorder) Push(ctx context.Context, dest Destination) error {
	return r.record(ctx, ModePush, dest, r.FailPush)
}

func (r *Recorder) Navigate(ctx context.Context, dest Destination) error {
	return r.record(ctx, ModeNavigate, dest, r.FailNavigate)
}

func (r *Recorder) record(ctx context.Context, mode Mode, dest Destination, fail error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !dest.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDestination, dest)
	}
	if fail != nil {
		return fail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, Instruction{Mode: mode, Destination: dest})
	return nil
}

// Last returns the most recent accepted instruction.
func (r *Recorder) Last() (Instruction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Instruction{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns a copy of every accepted instruction in order.
func (r *Recorder) History() []Instruction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Instruction, len(r.history))
	copy(out, r.history)
	return out
}

// ReplaceWithFallback replaces the current screen with dest. If the replace
// fails it tries a single Navigate. When both fail the error is logged and
// ok is false; the caller stays where it is.
func ReplaceWithFallback(ctx context.Context, nav Navigator, dest Destination) (Instruction, bool) {
	replaceErr := nav.Replace(ctx, dest)
	if replaceErr == nil {
		return Instruction{Mode: ModeReplace, Destination: dest}, true
	}
	applog.LogWarn(ctx, "replace navigation failed, falling back",
		zap.String("destination", string(dest)),
		zap.Error(replaceErr),
	)

	navigateErr := nav.Navigate(ctx, dest)
	if navigateErr == nil {
		return Instruction{Mode: ModeNavigate, Destination: dest}, true
	}
	applog.LogError(ctx, "navigation failed", errors.Join(replaceErr, navigateErr),
		zap.String("destination", string(dest)),
	)
	return Instruction{}, false
}

// Compile-time interface check
var _ Navigator = (*Recorder)(nil)
