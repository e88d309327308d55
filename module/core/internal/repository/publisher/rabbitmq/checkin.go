package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/chainal/red-wolf-project/module/core/domain"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/publisher"
)

var _ publisher.CheckinPublisher = (*CheckinPublisher)(nil)

const (
	exchangeName = "checkin.events"
	queueName    = "position_checkins"
)

type CheckinPublisher struct {
	ch *amqp.Channel
}

func NewCheckinPublisher(conn *amqp.Connection) (*CheckinPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &CheckinPublisher{ch: ch}, nil
}

type checkinMessage struct {
	ID        string          `json:"id"`
	User      string          `json:"user"`
	Location  messageLocation `json:"location"`
	CreatedAt int64           `json:"created_at"`
}

type messageLocation struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

func (p *CheckinPublisher) PublishCheckin(ctx context.Context, event *domain.CheckinEvent) error {
	msg := checkinMessage{
		ID:   event.ID,
		User: event.User,
		Location: messageLocation{
			Lng: event.Location.Lng,
			Lat: event.Location.Lat,
		},
		CreatedAt: event.CreatedAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal checkin event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
