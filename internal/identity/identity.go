package identity

import "context"

// Identity describes the caller a request acts on behalf of.
type Identity struct {
	// UserID keys the caller's profile in the profile store.
	UserID string
}

// Resolver maps a request context to the caller's identity. Implementations
// must not return a nil identity with a nil error.
type Resolver interface {
	Resolve(ctx context.Context) (*Identity, error)
}

// Static resolves every request to one fixed identity. It stands in for real
// authentication while the service only knows its seeded users.
type Static struct {
	UserID string
}

// Resolve implements Resolver.
func (s Static) Resolve(context.Context) (*Identity, error) {
	return &Identity{UserID: s.UserID}, nil
}

// Mock returns canned results, for tests.
type Mock struct {
	Identity *Identity
	Err      error
}

// Resolve implements Resolver.
func (m Mock) Resolve(context.Context) (*Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Identity, nil
}

var (
	_ Resolver = Static{}
	_ Resolver = Mock{}
)
