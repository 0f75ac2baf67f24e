package session

import "github.com/janisto/little-lemon/internal/platform/navigation"

// SessionData is the launch gate result.
type SessionData struct {
	State       string   `json:"state"       enum:"NOT_ONBOARDED,ONBOARDED" doc:"Current onboarding state" example:"ONBOARDED"`
	Destination string   `json:"destination" doc:"First screen to show"      example:"/(tabs)"`
	Actions     []string `json:"actions"     doc:"Session events accepted in the current state" example:"[\"logout\"]"`
	// ProfileEntry is set only for onboarded sessions.
	ProfileEntry *navigation.Instruction `json:"profileEntry,omitempty" doc:"Navigation for the header profile shortcut"`
}

// SessionOutput wraps SessionData.
type SessionOutput struct {
	Body SessionData
}

// PrefillData pre-populates the onboarding form.
type PrefillData struct {
	FirstName string `json:"firstName" doc:"Stored first name" example:"Ana"`
	LastName  string `json:"lastName"  doc:"Stored last name"  example:"Silva"`
	Email     string `json:"email"     doc:"Stored email"      example:"ana@littlelemon.com"`
	CanSubmit bool   `json:"canSubmit" doc:"Whether the prefilled form may be submitted as is"`
}

// PrefillOutput wraps PrefillData.
type PrefillOutput struct {
	Body PrefillData
}

// TransitionData reports the state after a transition and where the client
// should go next. Navigation is omitted when the client should stay put.
type TransitionData struct {
	State      string                  `json:"state"                enum:"NOT_ONBOARDED,ONBOARDED" doc:"State after the request" example:"ONBOARDED"`
	Navigation *navigation.Instruction `json:"navigation,omitempty" doc:"Navigation the client should perform"`
}

// TransitionOutput wraps TransitionData.
type TransitionOutput struct {
	Body TransitionData
}
