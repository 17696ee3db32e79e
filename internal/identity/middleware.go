package identity

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	appmiddleware "github.com/janisto/profile-api/internal/middleware"
)

// identityContextKey is the context key for the resolved caller identity.
type identityContextKey struct{}

// NewMiddleware creates Huma middleware that resolves the caller identity and
// stores it on the request context before any handler runs. Requests whose
// identity cannot be resolved are rejected with 401.
func NewMiddleware(api huma.API, resolver Resolver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ident, err := resolver.Resolve(ctx.Context())
		if err != nil || ident == nil {
			appmiddleware.LogWarn(ctx.Context(), "identity resolution failed", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "could not resolve caller identity")
			return
		}

		ctx = huma.WithValue(ctx, identityContextKey{}, ident)
		next(ctx)
	}
}

// FromContext retrieves the resolved identity from context.
// Returns nil when no identity has been resolved.
func FromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityContextKey{}).(*Identity)
	return ident
}
