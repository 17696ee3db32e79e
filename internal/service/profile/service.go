package profile

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that no profile exists for the requested identity.
var ErrNotFound = errors.New("profile not found")

// Profile is a stored user profile. Stored profiles are always complete and
// satisfy every field rule in validate.go.
type Profile struct {
	Name  string
	Email string
	Age   int
	Bio   string
}

// PartialUpdate carries the fields present in an update request. A nil field
// was absent from the request and must not touch the stored value; a non-nil
// field always overwrites, even when equal to the stored value. There is no
// way to express deleting a field.
//
// The json tags give validation errors their wire field names; the validate
// tags apply to present fields only (omitnil).
type PartialUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitnil,email,email_fqdn"`
	Age   *int    `json:"age,omitempty" validate:"omitnil,gte=18,lte=120"`
	Bio   *string `json:"bio,omitempty"`
}

// Violation describes one field rule broken by an update.
type Violation struct {
	Field   string // wire name of the offending field
	Message string // human-readable description
	Kind    string // machine-readable category, one of the api.Kind constants
}

// ValidationError aggregates every violation found in one update request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("validation failed: %s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("validation failed: %d violations", len(e.Violations))
}

// Store owns the profile records. Update runs fn on a copy of the current
// profile under the per-identity lock and commits the returned value only
// when fn returns nil; both methods report ErrNotFound for unknown identities.
type Store interface {
	Get(ctx context.Context, id string) (Profile, error)
	Update(ctx context.Context, id string, fn func(Profile) (Profile, error)) (Profile, error)
}

// Service defines profile operations for a resolved identity.
type Service interface {
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, patch PartialUpdate) (*Profile, error)
}

type service struct {
	store Store
}

// NewService builds the production Service on top of the given store.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Get(ctx context.Context, id string) (*Profile, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies patch to the stored profile. The lookup-validate-merge-write
// sequence runs inside the store's per-identity critical section: a missing
// profile wins over any validation failure, and a failed validation leaves
// the store untouched. An empty patch is a valid no-op.
func (s *service) Update(ctx context.Context, id string, patch PartialUpdate) (*Profile, error) {
	merged, err := s.store.Update(ctx, id, func(current Profile) (Profile, error) {
		if err := ValidatePartial(patch); err != nil {
			return Profile{}, err
		}
		return current.merge(patch), nil
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// merge returns a copy of p with every present field of patch applied.
func (p Profile) merge(patch PartialUpdate) Profile {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	return p
}

// Compile-time interface check
var _ Service = (*service)(nil)
