package session

import (
	"github.com/janisto/little-lemon/internal/platform/navigation"
	"github.com/janisto/little-lemon/internal/service/kvstore"
)

// Gates opens a Gate per installation. Each gate gets its own navigation
// recorder, so instructions never leak between requests.
type Gates struct {
	provider kvstore.Provider
}

// NewGates creates a factory over provider.
func NewGates(provider kvstore.Provider) *Gates {
	return &Gates{provider: provider}
}

// For returns the gate of installationID.
func (g *Gates) For(installationID string) *Gate {
	return NewGate(
		g.provider.Store(installationID),
		navigation.NewRecorder(),
		WithInstallationID(installationID),
	)
}
