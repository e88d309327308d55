package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/chainal/red-wolf-project/module/core/internal/repository/database"
	"github.com/chainal/red-wolf-project/module/core/namegen"
)

// IdentityService mints new user identities and validates declared
// ones. Identity existence is derived from the distinct user values of
// persisted positions; there is no separate user table.
type IdentityService struct {
	repo database.PositionRepository
	gen  *namegen.Generator

	// mintMu serializes the generate-and-check loop. A single
	// IdentityService is wired per process, so this is the process-wide
	// mint lock. It is NOT held across the caller's subsequent insert:
	// a freshly minted identity is invisible to other minters until its
	// first position lands, so two concurrent first-time callers can
	// race to the same name. Callers of AssignNew inherit that window.
	mintMu sync.Mutex
}

func NewIdentityService(repo database.PositionRepository, gen *namegen.Generator) *IdentityService {
	return &IdentityService{repo: repo, gen: gen}
}

// AssignNew mints an identity not present in the known user set.
// Collisions with existing users are drawn past, each logged as a
// warning; an exhausted corpus surfaces domain.ErrNamesExhausted.
func (s *IdentityService) AssignNew(ctx context.Context) (string, error) {
	s.mintMu.Lock()
	defer s.mintMu.Unlock()

	users, err := s.repo.DistinctUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("read known users: %w", err)
	}

	known := make(map[string]struct{}, len(users))
	for _, u := range users {
		known[u] = struct{}{}
	}

	for {
		candidate, err := s.gen.Next()
		if err != nil {
			return "", err
		}
		if _, taken := known[candidate]; !taken {
			return candidate, nil
		}
		log.Printf("warn: name %q already taken, drawing again", candidate)
	}
}

// Validate reports whether user appears on any persisted position.
// Read-only; takes no lock.
func (s *IdentityService) Validate(ctx context.Context, user string) (bool, error) {
	users, err := s.repo.DistinctUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("read known users: %w", err)
	}
	for _, u := range users {
		if u == user {
			return true, nil
		}
	}
	return false, nil
}
