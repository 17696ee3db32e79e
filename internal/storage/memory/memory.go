package memory

import (
	"context"
	"sync"

	"github.com/janisto/profile-api/internal/service/profile"
)

// record wraps one stored profile. Its mutex serializes the whole
// read-validate-merge-write sequence for that identity; records for different
// identities lock independently.
type record struct {
	mu      sync.Mutex
	profile profile.Profile
}

// Store keeps profiles in process memory. The identity set is fixed at
// construction (profiles are neither created nor deleted at runtime), so the
// map itself is read-only after New and needs no lock of its own. Contents do
// not survive a restart; that volatility is intended.
type Store struct {
	records map[string]*record
}

// New builds a store holding a copy of seed.
func New(seed map[string]profile.Profile) *Store {
	records := make(map[string]*record, len(seed))
	for id, p := range seed {
		records[id] = &record{profile: p}
	}
	return &Store{records: records}
}

// SeedProfiles returns the fixed demo profiles the service starts with.
func SeedProfiles() map[string]profile.Profile {
	return map[string]profile.Profile{
		"user1": {Name: "Alice", Email: "alice@example.com", Age: 29, Bio: "Backend developer."},
		"user2": {Name: "Bob", Email: "bob@example.com", Age: 42, Bio: "DevOps engineer."},
	}
}

// Get returns a copy of the stored profile for id.
func (s *Store) Get(ctx context.Context, id string) (profile.Profile, error) {
	rec, ok := s.records[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.profile, nil
}

// Update runs fn on a copy of the current profile for id under the record
// lock and commits the result only when fn returns nil. On error the stored
// profile is left exactly as it was.
func (s *Store) Update(ctx context.Context, id string, fn func(profile.Profile) (profile.Profile, error)) (profile.Profile, error) {
	rec, ok := s.records[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	next, err := fn(rec.profile)
	if err != nil {
		return profile.Profile{}, err
	}
	rec.profile = next
	return next, nil
}

// Compile-time interface check
var _ profile.Store = (*Store)(nil)
