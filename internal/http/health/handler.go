package health

import (
	"net/http"

	appmiddleware "github.com/janisto/profile-api/internal/middleware"
	"github.com/janisto/profile-api/internal/respond"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler is a plain HTTP handler for the health check endpoint. It is
// registered directly on the router, outside the Huma pipeline and the
// identity middleware.
func Handler(w http.ResponseWriter, r *http.Request) {
	if err := respond.WriteJSON(w, http.StatusOK, Response{Status: "healthy"}); err != nil {
		appmiddleware.LogError(r.Context(), "failed to render health response", err)
	}
}
