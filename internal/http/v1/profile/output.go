package profile

// ProfileGetOutput for GET /user/profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput for PUT /user/profile
type ProfileUpdateOutput struct {
	Body Profile
}
