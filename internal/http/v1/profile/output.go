package profile

import "github.com/janisto/little-lemon/internal/platform/timeutil"

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// UpdateData confirms a saved profile.
type UpdateData struct {
	Message string        `json:"message" doc:"Confirmation to show the user" example:"Your profile has been updated successfully."`
	Profile Profile       `json:"profile" doc:"The saved profile"`
	SavedAt timeutil.Time `json:"savedAt" doc:"When every field was written" example:"2024-01-15T10:30:00.000Z"`
}

// ProfileUpdateOutput for PUT /profile
type ProfileUpdateOutput struct {
	Body UpdateData
}
