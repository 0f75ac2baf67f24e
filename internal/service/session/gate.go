// Package session implements the onboarding gate: the two-state machine that
// decides whether an installation sees onboarding or the main app, plus the
// profile it owns once onboarded.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	applog "github.com/janisto/little-lemon/internal/platform/logging"
	"github.com/janisto/little-lemon/internal/platform/navigation"
	"github.com/janisto/little-lemon/internal/service/kvstore"
)

// Gate errors
var (
	ErrIncomplete = errors.New("first name and email are required")
	ErrPersist    = errors.New("failed to save changes")
)

const (
	resourceSession = "session"
	resourceProfile = "profile"
)

// Outcome is the result of a state-changing operation. Navigation is nil when
// no navigation happened, either because none was needed or because it failed.
type Outcome struct {
	State      State
	Navigation *navigation.Instruction
}

// Gate runs the session state machine against one installation's store.
type Gate struct {
	store          kvstore.Store
	nav            navigation.Navigator
	installationID string
}

// Option configures a Gate.
type Option func(*Gate)

// WithInstallationID tags audit events with the installation ID.
func WithInstallationID(id string) Option {
	return func(g *Gate) { g.installationID = id }
}

// NewGate creates a gate over store that reports screen changes to nav.
func NewGate(store kvstore.Store, nav navigation.Navigator, opts ...Option) *Gate {
	g := &Gate{store: store, nav: nav}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State derives the current state from the onboarding flag. Read failures
// count as NOT_ONBOARDED.
func (g *Gate) State(ctx context.Context) State {
	v, ok, err := g.store.Get(ctx, KeyOnboardingComplete)
	if err != nil {
		applog.LogWarn(ctx, "read onboarding flag failed", zap.Error(err))
		return NotOnboarded
	}
	if ok && v == flagTrue {
		return Onboarded
	}
	return NotOnboarded
}

// LaunchDestination is the first screen to show on app start.
func (g *Gate) LaunchDestination(ctx context.Context) navigation.Destination {
	return DestinationFor(g.State(ctx))
}

// DestinationFor maps a state already read to its launch screen. Callers that
// need both the state and the destination use it to read the flag only once.
func DestinationFor(s State) navigation.Destination {
	if s == Onboarded {
		return navigation.MainApp
	}
	return navigation.Onboarding
}

// OpenProfile pushes the profile screen on top of the main app, as the header
// avatar does. A failed push is logged and yields nil.
func (g *Gate) OpenProfile(ctx context.Context) *navigation.Instruction {
	if err := g.nav.Push(ctx, navigation.Profile); err != nil {
		applog.LogError(ctx, "open profile failed", err)
		return nil
	}
	return &navigation.Instruction{Mode: navigation.ModePush, Destination: navigation.Profile}
}

// Prefill returns whatever onboarding fields were stored before.
func (g *Gate) Prefill(ctx context.Context) OnboardingForm {
	return OnboardingForm{
		FirstName: g.read(ctx, KeyFirstName),
		LastName:  g.read(ctx, KeyLastName),
		Email:     g.read(ctx, KeyEmail),
	}
}

// CompleteOnboarding stores the form and moves the installation to ONBOARDED.
// An incomplete form is rejected before anything is written.
func (g *Gate) CompleteOnboarding(ctx context.Context, form OnboardingForm) (Outcome, error) {
	if !CanSubmit(form) {
		return Outcome{State: NotOnboarded}, ErrIncomplete
	}
	current := g.State(ctx)
	next, err := Next(current, EventCompleteOnboarding)
	if err != nil {
		return Outcome{State: current}, err
	}

	fields := map[string]string{
		KeyFirstName: form.FirstName,
		KeyLastName:  form.LastName,
		KeyEmail:     form.Email,
	}
	// The flag is written only after every field is stored.
	if err := g.setAll(ctx, fields); err != nil {
		g.audit(ctx, string(EventCompleteOnboarding), resourceSession, "failure", err)
		return Outcome{State: current}, err
	}
	if err := g.store.Set(ctx, KeyOnboardingComplete, flagTrue); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersist, err)
		g.audit(ctx, string(EventCompleteOnboarding), resourceSession, "failure", err)
		return Outcome{State: current}, err
	}
	g.audit(ctx, string(EventCompleteOnboarding), resourceSession, "success", nil)

	return Outcome{State: next, Navigation: g.replace(ctx, navigation.MainApp)}, nil
}

// Logout clears every stored key and returns to onboarding. Cancel leaves
// everything untouched.
func (g *Gate) Logout(ctx context.Context, confirmation Confirmation) (Outcome, error) {
	current := g.State(ctx)
	if confirmation == Cancel {
		return Outcome{State: current}, nil
	}
	next, err := Next(current, EventLogout)
	if err != nil {
		return Outcome{State: current}, err
	}

	// Profile keys go first so a partial failure keeps the installation
	// onboarded and the logout can be repeated.
	if err := g.removeAll(ctx, profileKeys); err != nil {
		g.audit(ctx, string(EventLogout), resourceSession, "failure", err)
		return Outcome{State: current}, err
	}
	if err := g.store.Remove(ctx, KeyOnboardingComplete); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersist, err)
		g.audit(ctx, string(EventLogout), resourceSession, "failure", err)
		return Outcome{State: current}, err
	}
	g.audit(ctx, string(EventLogout), resourceSession, "success", nil)

	return Outcome{State: next, Navigation: g.replace(ctx, navigation.Onboarding)}, nil
}

// Profile loads the stored profile, falling back to defaults per field. If
// ctx ends before loading completes the partial result is discarded.
func (g *Gate) Profile(ctx context.Context) (UserProfile, error) {
	profile := DefaultProfile()
	for _, key := range profileKeys {
		v, ok, err := g.store.Get(ctx, key)
		if err != nil {
			applog.LogWarn(ctx, "read profile field failed", zap.String("key", key), zap.Error(err))
			continue
		}
		if ok {
			profile.apply(key, v)
		}
	}
	if err := ctx.Err(); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

// SaveProfile writes every profile field. All writes are attempted even if
// one fails, and fields already written are not rolled back.
func (g *Gate) SaveProfile(ctx context.Context, profile UserProfile) error {
	if state := g.State(ctx); state != Onboarded {
		return fmt.Errorf("%w: %s cannot update the profile", ErrInvalidTransition, state)
	}
	if err := g.setAll(ctx, profile.values()); err != nil {
		g.audit(ctx, "update", resourceProfile, "failure", err)
		return err
	}
	g.audit(ctx, "update", resourceProfile, "success", nil)
	return nil
}

func (g *Gate) read(ctx context.Context, key string) string {
	v, _, err := g.store.Get(ctx, key)
	if err != nil {
		applog.LogWarn(ctx, "read stored field failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}

// setAll issues the writes concurrently and waits for all of them.
func (g *Gate) setAll(ctx context.Context, values map[string]string) error {
	var eg errgroup.Group
	for key, value := range values {
		eg.Go(func() error {
			if err := g.store.Set(ctx, key, value); err != nil {
				return fmt.Errorf("%w: set %s: %w", ErrPersist, key, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// removeAll issues the removals concurrently and waits for all of them.
func (g *Gate) removeAll(ctx context.Context, keys []string) error {
	var eg errgroup.Group
	for _, key := range keys {
		eg.Go(func() error {
			if err := g.store.Remove(ctx, key); err != nil {
				return fmt.Errorf("%w: remove %s: %w", ErrPersist, key, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

func (g *Gate) replace(ctx context.Context, dest navigation.Destination) *navigation.Instruction {
	instr, ok := navigation.ReplaceWithFallback(ctx, g.nav, dest)
	if !ok {
		return nil
	}
	return &instr
}

func (g *Gate) audit(ctx context.Context, action, resource, result string, err error) {
	var details map[string]any
	if err != nil {
		details = map[string]any{"reason": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       action,
		Installation: g.installationID,
		Resource:     resource,
		Result:       result,
		Details:      details,
	})
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrPersist):
		return "persist_failed"
	default:
		return "internal_error"
	}
}
