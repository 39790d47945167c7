package identity

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/roles"
)

// MemoryStore is an in-memory Store for tests and single-process setups.
// It is safe for concurrent use; callers receive copies, never internal slices.
type MemoryStore struct {
	mu          sync.RWMutex
	grants      map[uuid.UUID][]Grant
	assignments map[uuid.UUID][]roles.Assignment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		grants:      make(map[uuid.UUID][]Grant),
		assignments: make(map[uuid.UUID][]roles.Assignment),
	}
}

func (s *MemoryStore) InsertGrant(_ context.Context, grant Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.grants[grant.UserID] {
		if existing.Identifier == grant.Identifier {
			return ErrGrantExists
		}
	}

	s.grants[grant.UserID] = append(s.grants[grant.UserID], grant)
	return nil
}

func (s *MemoryStore) DeleteGrant(_ context.Context, userID uuid.UUID, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grants := s.grants[userID]
	for i, g := range grants {
		if g.Identifier == identifier {
			s.grants[userID] = slices.Delete(slices.Clone(grants), i, i+1)
			return nil
		}
	}
	return ErrGrantNotFound
}

func (s *MemoryStore) ListGrants(_ context.Context, userID uuid.UUID) ([]Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.grants[userID]), nil
}

func (s *MemoryStore) UpsertAssignment(_ context.Context, userID uuid.UUID, assignment roles.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments := slices.Clone(s.assignments[userID])
	for i, a := range assignments {
		if a.RoleCode == assignment.RoleCode {
			assignments[i] = assignment
			s.assignments[userID] = assignments
			return nil
		}
	}

	s.assignments[userID] = append(assignments, assignment)
	return nil
}

func (s *MemoryStore) DeleteAssignment(_ context.Context, userID uuid.UUID, roleCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments := s.assignments[userID]
	for i, a := range assignments {
		if a.RoleCode == roleCode {
			s.assignments[userID] = slices.Delete(slices.Clone(assignments), i, i+1)
			return nil
		}
	}
	return ErrAssignmentNotFound
}

func (s *MemoryStore) ListAssignments(_ context.Context, userID uuid.UUID) ([]roles.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.assignments[userID]), nil
}
