package profile

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is a minimal Store for exercising the service in isolation.
type fakeStore struct {
	profiles map[string]Profile
	commits  int
}

func (f *fakeStore) Get(_ context.Context, id string) (Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) Update(_ context.Context, id string, fn func(Profile) (Profile, error)) (Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	next, err := fn(p)
	if err != nil {
		return Profile{}, err
	}
	f.profiles[id] = next
	f.commits++
	return next, nil
}

func seededStore() *fakeStore {
	return &fakeStore{profiles: map[string]Profile{
		"user1": {Name: "Alice", Email: "alice@example.com", Age: 29, Bio: "Backend developer."},
	}}
}

func TestGetReturnsProfile(t *testing.T) {
	svc := NewService(seededStore())

	p, err := svc.Get(context.Background(), "user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Alice" || p.Email != "alice@example.com" || p.Age != 29 || p.Bio != "Backend developer." {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestGetUnknownIdentity(t *testing.T) {
	svc := NewService(seededStore())

	if _, err := svc.Get(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMergesPresentFields(t *testing.T) {
	store := seededStore()
	svc := NewService(store)

	p, err := svc.Update(context.Background(), "user1", PartialUpdate{
		Email: strPtr("alice.new@example.com"),
		Age:   intPtr(30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Email != "alice.new@example.com" || p.Age != 30 {
		t.Fatalf("present fields not applied: %+v", p)
	}
	if p.Name != "Alice" || p.Bio != "Backend developer." {
		t.Fatalf("absent fields must be untouched: %+v", p)
	}
	if stored := store.profiles["user1"]; stored != *p {
		t.Fatalf("store and returned profile diverge: %+v vs %+v", stored, *p)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	store := seededStore()
	svc := NewService(store)
	patch := PartialUpdate{Email: strPtr("alice.new@example.com"), Age: intPtr(30)}

	first, err := svc.Update(context.Background(), "user1", patch)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	second, err := svc.Update(context.Background(), "user1", patch)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if *first != *second {
		t.Fatalf("updates not idempotent: %+v vs %+v", *first, *second)
	}
}

func TestUpdateEmptyPatchIsNoOp(t *testing.T) {
	store := seededStore()
	svc := NewService(store)
	before := store.profiles["user1"]

	p, err := svc.Update(context.Background(), "user1", PartialUpdate{})
	if err != nil {
		t.Fatalf("empty patch must succeed: %v", err)
	}
	if *p != before {
		t.Fatalf("empty patch changed the profile: %+v", *p)
	}
	if store.profiles["user1"] != before {
		t.Fatalf("store changed on no-op update")
	}
}

func TestUpdateOverwritesWithEqualValue(t *testing.T) {
	store := seededStore()
	svc := NewService(store)

	p, err := svc.Update(context.Background(), "user1", PartialUpdate{Email: strPtr("alice@example.com")})
	if err != nil {
		t.Fatalf("present-and-equal value must be accepted: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %q", p.Email)
	}
}

func TestUpdateInvalidPatchLeavesStoreUntouched(t *testing.T) {
	store := seededStore()
	svc := NewService(store)
	before := store.profiles["user1"]

	_, err := svc.Update(context.Background(), "user1", PartialUpdate{
		Email: strPtr("bademail"),
		Age:   intPtr(15),
		Name:  strPtr("Mallory"),
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(verr.Violations))
	}
	if store.profiles["user1"] != before {
		t.Fatalf("store must be untouched after failed validation, got %+v", store.profiles["user1"])
	}
	if store.commits != 0 {
		t.Fatalf("no commit expected, got %d", store.commits)
	}
}

func TestUpdateUnknownIdentityBeatsValidation(t *testing.T) {
	svc := NewService(seededStore())

	// Even with an invalid patch the missing profile is reported, never the
	// validation failure.
	_, err := svc.Update(context.Background(), "nobody", PartialUpdate{Age: intPtr(15)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("validation must not run for unknown identities")
	}
}
