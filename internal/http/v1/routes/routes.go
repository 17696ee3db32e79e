package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-api/internal/http/v1/profile"
	"github.com/janisto/profile-api/internal/identity"
	profilesvc "github.com/janisto/profile-api/internal/service/profile"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, resolver identity.Resolver, profileService profilesvc.Service) {
	// Every operation runs with a resolved caller identity.
	api.UseMiddleware(identity.NewMiddleware(api, resolver))

	profile.Register(api, profileService)
}
