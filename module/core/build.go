package core

import (
	"context"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	driver "go.mongodb.org/mongo-driver/mongo"

	handler "github.com/chainal/red-wolf-project/module/core/internal/handler/http"
	"github.com/chainal/red-wolf-project/module/core/internal/handler/subscriber"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/database/mongo"
	"github.com/chainal/red-wolf-project/module/core/internal/repository/publisher/rabbitmq"
	"github.com/chainal/red-wolf-project/module/core/namegen"
	"github.com/chainal/red-wolf-project/module/core/service"
)

type Module struct {
	IdentitySvc *service.IdentityService
	CheckinSvc  *service.CheckinService
	NearbySvc   *service.NearbyService
	handler     *handler.PositionHandler
	subscriber  *subscriber.CheckinSubscriber
}

func Build(ctx context.Context, db *driver.Database, amqpConn *amqp.Connection, mqttClient mqtt.Client) (*Module, error) {
	positionRepo := mongo.NewPositionRepo(db)
	if err := positionRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("position repo: %w", err)
	}

	checkinPub, err := rabbitmq.NewCheckinPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("checkin publisher: %w", err)
	}

	identitySvc := service.NewIdentityService(positionRepo, namegen.New())
	checkinSvc := service.NewCheckinService(positionRepo, identitySvc, checkinPub)
	nearbySvc := service.NewNearbyService(positionRepo)

	h := handler.NewPositionHandler(checkinSvc, nearbySvc)
	sub := subscriber.NewCheckinSubscriber(mqttClient, checkinSvc)

	return &Module{
		IdentitySvc: identitySvc,
		CheckinSvc:  checkinSvc,
		NearbySvc:   nearbySvc,
		handler:     h,
		subscriber:  sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
