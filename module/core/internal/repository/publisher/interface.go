package publisher

import (
	"context"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

type CheckinPublisher interface {
	PublishCheckin(ctx context.Context, event *domain.CheckinEvent) error
}
