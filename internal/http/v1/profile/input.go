package profile

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PUT /profile. The whole record is replaced.
type ProfileUpdateInput struct {
	Body Profile
}
