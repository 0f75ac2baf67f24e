package session

// SessionGetInput has no parameters; the installation comes from the bearer token.
type SessionGetInput struct{}

// OnboardingGetInput has no parameters.
type OnboardingGetInput struct{}

// OnboardingSubmitInput is the onboarding form. Empty first name or email is
// rejected by the gate, not by schema validation.
type OnboardingSubmitInput struct {
	Body struct {
		FirstName string `json:"firstName,omitempty" maxLength:"100" doc:"First name (required to submit)" example:"Ana"`
		LastName  string `json:"lastName,omitempty"  maxLength:"100" doc:"Last name"                       example:"Silva"`
		Email     string `json:"email,omitempty"     maxLength:"254" doc:"Email (required to submit)"      example:"ana@littlelemon.com"`
	}
}

// LogoutInput carries the answer to the logout prompt.
type LogoutInput struct {
	Body struct {
		Confirm bool `json:"confirm" doc:"true to log out, false to cancel" example:"true"`
	}
}
