package service

import (
	"context"
	"log"

	"github.com/chainal/red-wolf-project/module/core/domain"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/database"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/publisher"
)

type identityAssigner interface {
	AssignNew(ctx context.Context) (string, error)
	Validate(ctx context.Context, user string) (bool, error)
}

// CheckinService ingests position check-ins. A request without a user
// gets a freshly minted identity; a declared user must already exist.
type CheckinService struct {
	repo     database.PositionRepository
	identity identityAssigner
	events   publisher.CheckinPublisher // optional; nil disables events
}

func NewCheckinService(repo database.PositionRepository, identity identityAssigner, events publisher.CheckinPublisher) *CheckinService {
	return &CheckinService{repo: repo, identity: identity, events: events}
}

func (s *CheckinService) Create(ctx context.Context, req *domain.CheckinRequest) (*domain.CheckinResult, error) {
	if err := req.Location.Validate(); err != nil {
		return nil, err
	}

	user := req.User
	if user != "" {
		ok, err := s.identity.Validate(ctx, user)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &domain.UserNotFoundError{User: user}
		}
	} else {
		var err error
		// The mint lock is released inside AssignNew; the insert below
		// runs outside it.
		user, err = s.identity.AssignNew(ctx)
		if err != nil {
			return nil, err
		}
	}

	pos, err := s.repo.Insert(ctx, user, req.Location)
	if err != nil {
		// No rollback: a minted identity that was never persisted
		// simply stays available for a later mint.
		return nil, err
	}

	if s.events != nil {
		event := &domain.CheckinEvent{
			ID:        pos.ID,
			User:      pos.User,
			Location:  pos.Location,
			CreatedAt: pos.CreateTime.Unix(),
		}
		if err := s.events.PublishCheckin(ctx, event); err != nil {
			// The write is already durable; event delivery is best effort.
			log.Printf("publish checkin event: %v", err)
		}
	}

	return &domain.CheckinResult{ID: pos.ID, User: pos.User}, nil
}
