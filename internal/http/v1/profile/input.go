package profile

// ProfileGetInput for GET /user/profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PUT /user/profile. Every field is optional; a field
// absent from the JSON stays nil and leaves the stored value untouched.
// Range and format rules live in the profile service, which reports all
// violations in one pass.
type ProfileUpdateInput struct {
	Body struct {
		Name  *string `json:"name,omitempty"  doc:"Display name"          example:"Alice"`
		Email *string `json:"email,omitempty" doc:"Contact email address" example:"alice@example.com"`
		Age   *int    `json:"age,omitempty"   doc:"Age in years"          example:"29"`
		Bio   *string `json:"bio,omitempty"   doc:"Short free-form bio"   example:"Backend developer."`
	}
}
