package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/little-lemon/internal/platform/auth"
	"github.com/janisto/little-lemon/internal/platform/timeutil"
	sessionsvc "github.com/janisto/little-lemon/internal/service/session"
)

const (
	msgUpdated    = "Your profile has been updated successfully."
	msgSaveFailed = "Failed to save changes. Please try again."
	msgLoadFailed = "Failed to load your profile. Please try again."
)

// Register registers profile endpoints.
func Register(api huma.API, gates *sessionsvc.Gates) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the profile",
		Description: "Loads the stored profile. Fields that are missing or cannot be read fall back to their defaults.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		profile, err := gates.For(auth.InstallationID(ctx)).Profile(ctx)
		if err != nil {
			return nil, mapReadError(err)
		}
		return &ProfileGetOutput{
			Body: toHTTPProfile(profile),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Save the profile",
		Description: "Writes every profile field. Requires a completed onboarding. " +
			"On failure some fields may already be saved; repeat the request to retry.",
		Tags: []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		if err := gates.For(auth.InstallationID(ctx)).SaveProfile(ctx, input.Body.toService()); err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpdateOutput{
			Body: UpdateData{
				Message: msgUpdated,
				Profile: input.Body,
				SavedAt: timeutil.Now(),
			},
		}, nil
	})
}

// mapReadError covers GET /profile, where only the request context can fail:
// unreadable fields already fell back to defaults.
func mapReadError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return huma.Error503ServiceUnavailable(msgLoadFailed)
	}
	return huma.Error500InternalServerError("internal error")
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, sessionsvc.ErrInvalidTransition):
		return huma.Error409Conflict("onboarding must be completed first")
	case errors.Is(err, sessionsvc.ErrPersist), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable(msgSaveFailed)
	case errors.Is(err, context.Canceled):
		return huma.Error503ServiceUnavailable("request cancelled")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
