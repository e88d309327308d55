package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

const topic = "/checkin/position"

type checkinService interface {
	Create(ctx context.Context, req *domain.CheckinRequest) (*domain.CheckinResult, error)
}

type checkinMessage struct {
	User string   `json:"user"`
	Lng  *float64 `json:"lng"`
	Lat  *float64 `json:"lat"`
}

// CheckinSubscriber ingests check-ins published over MQTT. There is no
// reply channel; rejected messages are logged and dropped.
type CheckinSubscriber struct {
	client     mqtt.Client
	checkinSvc checkinService
}

func NewCheckinSubscriber(client mqtt.Client, checkinSvc checkinService) *CheckinSubscriber {
	return &CheckinSubscriber{client: client, checkinSvc: checkinSvc}
}

func (s *CheckinSubscriber) Start() error {
	token := s.client.Subscribe(topic, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *CheckinSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw checkinMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid checkin message: %v", err)
		return
	}

	if err := validateCheckinMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	req := &domain.CheckinRequest{
		User:     raw.User,
		Location: domain.GeoPoint{Lng: *raw.Lng, Lat: *raw.Lat},
	}

	result, err := s.checkinSvc.Create(context.Background(), req)
	if err != nil {
		log.Printf("checkin error: %v", err)
		return
	}

	log.Printf("checkin accepted: id=%s user=%s", result.ID, result.User)
}

func validateCheckinMessage(msg *checkinMessage) error {
	if msg.Lng == nil || msg.Lat == nil {
		return fmt.Errorf("lng, lat: required")
	}
	if *msg.Lng < -180 || *msg.Lng > 180 {
		return fmt.Errorf("lng: must be between -180 and 180")
	}
	if *msg.Lat < -90 || *msg.Lat > 90 {
		return fmt.Errorf("lat: must be between -90 and 90")
	}
	return nil
}
