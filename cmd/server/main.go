package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chainal/red-wolf-project/config"
	"github.com/chainal/red-wolf-project/module/core"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	mongoClient, db, err := config.NewMongo(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	coreModule, err := core.Build(ctx, db, amqpConn, mqttClient)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	health := config.NewHealthChecker(mongoClient, amqpConn, mqttClient)
	health.Register(r)

	coreModule.RegisterRoutes(r.Group("/api"))

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
