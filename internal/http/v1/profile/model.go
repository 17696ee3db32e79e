package profile

import (
	profilesvc "github.com/janisto/profile-api/internal/service/profile"
)

// Profile represents a user profile response.
type Profile struct {
	Name  string `json:"name"  doc:"Display name"          example:"Alice"`
	Email string `json:"email" doc:"Contact email address" example:"alice@example.com"`
	Age   int    `json:"age"   doc:"Age in years"          example:"29"`
	Bio   string `json:"bio"   doc:"Short free-form bio"   example:"Backend developer."`
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		Name:  p.Name,
		Email: p.Email,
		Age:   p.Age,
		Bio:   p.Bio,
	}
}
