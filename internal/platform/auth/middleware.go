package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/little-lemon/internal/platform/logging"
)

type userContextKey struct{}

// failureReasons maps verifier errors to the category logged for them.
// Token contents never reach the logs.
var failureReasons = []struct {
	err    error
	reason string
}{
	{ErrNoToken, "no_token"},
	{ErrTokenExpired, "token_expired"},
	{ErrTokenRevoked, "token_revoked"},
	{ErrUserDisabled, "user_disabled"},
	{ErrCertificateFetch, "certificate_fetch_failed"},
	{ErrInvalidToken, "invalid_token"},
}

func categorizeAuthError(err error) string {
	for _, fr := range failureReasons {
		if errors.Is(err, fr.err) {
			return fr.reason
		}
	}
	return "unknown"
}

// NewAuthMiddleware authenticates operations that declare a Security
// requirement and stores the resolved installation on the context. Public
// operations such as the menu pass through untouched.
//
// Missing or rejected tokens get 401 with a Bearer challenge. When the
// verifier cannot fetch signing keys the request gets 503 with Retry-After,
// since the token itself may be fine.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		user, err := authenticate(ctx, verifier)
		if err == nil {
			next(huma.WithValue(ctx, userContextKey{}, user))
			return
		}

		applog.LogWarn(ctx.Context(), "auth failed", zap.String("reason", categorizeAuthError(err)))
		switch {
		case errors.Is(err, ErrCertificateFetch):
			ctx.SetHeader("Retry-After", "30")
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "authentication service temporarily unavailable")
		case errors.Is(err, ErrNoToken), errors.Is(err, errMalformedHeader):
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
		default:
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
		}
	}
}

// errMalformedHeader marks a header that is present but not "Bearer <token>".
var errMalformedHeader = errors.New("malformed authorization header")

func authenticate(ctx huma.Context, verifier Verifier) (*User, error) {
	token, err := ExtractBearerToken(ctx.Header("Authorization"))
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil, err
		}
		return nil, errors.Join(errMalformedHeader, err)
	}
	user, err := verifier.Verify(ctx.Context(), token)
	if err != nil {
		return nil, err
	}
	if user == nil || user.UID == "" {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// UserFromContext returns the authenticated installation, or nil on public operations.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// InstallationID returns the authenticated installation's ID, or "" when unauthenticated.
func InstallationID(ctx context.Context) string {
	if user := UserFromContext(ctx); user != nil {
		return user.UID
	}
	return ""
}
