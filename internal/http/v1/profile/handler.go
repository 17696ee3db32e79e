package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apiinternal "github.com/janisto/profile-api/internal/api"
	"github.com/janisto/profile-api/internal/identity"
	profilesvc "github.com/janisto/profile-api/internal/service/profile"
)

const msgProfileNotFound = "User profile not found"

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/user/profile",
		Summary:     "Get current user's profile",
		Description: "Retrieves the profile of the calling user.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		ident := identity.FromContext(ctx)

		p, err := svc.Get(ctx, ident.UserID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{
			Body: toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/user/profile",
		Summary:     "Update current user's profile",
		Description: "Applies a partial update to the calling user's profile. Only provided fields change; the full updated profile is returned.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		ident := identity.FromContext(ctx)

		p, err := svc.Update(ctx, ident.UserID, profilesvc.PartialUpdate{
			Name:  input.Body.Name,
			Email: input.Body.Email,
			Age:   input.Body.Age,
			Bio:   input.Body.Bio,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpdateOutput{
			Body: toHTTPProfile(p),
		}, nil
	})
}

// mapServiceError translates service errors into status errors carrying the
// canonical detail body. Validation violations become one field error each,
// in the order the service reported them.
func mapServiceError(err error) error {
	var verr *profilesvc.ValidationError
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound(msgProfileNotFound)
	case errors.As(err, &verr):
		errs := make([]error, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			errs = append(errs, apiinternal.NewFieldError([]string{"body", v.Field}, v.Message, v.Kind))
		}
		return huma.Error422UnprocessableEntity("validation failed", errs...)
	default:
		return huma.Error500InternalServerError("Internal Server Error")
	}
}
