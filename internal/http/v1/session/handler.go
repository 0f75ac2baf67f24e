package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/little-lemon/internal/platform/auth"
	sessionsvc "github.com/janisto/little-lemon/internal/service/session"
)

const (
	msgSaveFailed   = "Failed to save changes. Please try again."
	msgLogoutFailed = "Failed to log out. Please try again."
)

var bearer = []map[string][]string{{"bearerAuth": {}}}

// Register registers the launch gate, onboarding, and logout endpoints.
func Register(api huma.API, gates *sessionsvc.Gates) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/session",
		Summary:     "Resolve the launch screen",
		Description: "Reads the onboarding flag and returns the state together with the first screen to show. " +
			"Storage failures resolve to NOT_ONBOARDED. Onboarded sessions also get the instruction for opening the profile.",
		Tags:     []string{"Session"},
		Security: bearer,
	}, func(ctx context.Context, _ *SessionGetInput) (*SessionOutput, error) {
		gate := gates.For(auth.InstallationID(ctx))
		state := gate.State(ctx)
		data := SessionData{
			State:       string(state),
			Destination: string(sessionsvc.DestinationFor(state)),
			Actions:     make([]string, 0, 1),
		}
		for _, e := range sessionsvc.Events(state) {
			data.Actions = append(data.Actions, string(e))
		}
		if state == sessionsvc.Onboarded {
			data.ProfileEntry = gate.OpenProfile(ctx)
		}
		return &SessionOutput{Body: data}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-onboarding",
		Method:      http.MethodGet,
		Path:        "/onboarding",
		Summary:     "Prefill the onboarding form",
		Tags:        []string{"Session"},
		Security:    bearer,
	}, func(ctx context.Context, _ *OnboardingGetInput) (*PrefillOutput, error) {
		form := gates.For(auth.InstallationID(ctx)).Prefill(ctx)
		return &PrefillOutput{
			Body: PrefillData{
				FirstName: form.FirstName,
				LastName:  form.LastName,
				Email:     form.Email,
				CanSubmit: sessionsvc.CanSubmit(form),
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-onboarding",
		Method:      http.MethodPost,
		Path:        "/onboarding",
		Summary:     "Complete onboarding",
		Description: "Stores the form and moves the installation to ONBOARDED. " +
			"First name and email are required; an incomplete form changes nothing.",
		Tags:     []string{"Session"},
		Security: bearer,
	}, func(ctx context.Context, input *OnboardingSubmitInput) (*TransitionOutput, error) {
		out, err := gates.For(auth.InstallationID(ctx)).CompleteOnboarding(ctx, sessionsvc.OnboardingForm{
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Email:     input.Body.Email,
		})
		if err != nil {
			return nil, mapServiceError(err, msgSaveFailed)
		}
		return toTransitionOutput(out), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/logout",
		Summary:     "Log out",
		Description: "With confirm=true removes every stored field and returns to onboarding. " +
			"With confirm=false nothing changes.",
		Tags:     []string{"Session"},
		Security: bearer,
	}, func(ctx context.Context, input *LogoutInput) (*TransitionOutput, error) {
		out, err := gates.For(auth.InstallationID(ctx)).Logout(ctx, sessionsvc.Confirmation(input.Body.Confirm))
		if err != nil {
			return nil, mapServiceError(err, msgLogoutFailed)
		}
		return toTransitionOutput(out), nil
	})
}

func toTransitionOutput(out sessionsvc.Outcome) *TransitionOutput {
	return &TransitionOutput{
		Body: TransitionData{
			State:      string(out.State),
			Navigation: out.Navigation,
		},
	}
}

func mapServiceError(err error, persistMsg string) error {
	switch {
	case errors.Is(err, sessionsvc.ErrIncomplete):
		return huma.Error422UnprocessableEntity("first name and email are required")
	case errors.Is(err, sessionsvc.ErrInvalidTransition):
		return huma.Error409Conflict("not allowed in the current session state")
	case errors.Is(err, sessionsvc.ErrPersist), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable(persistMsg)
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
