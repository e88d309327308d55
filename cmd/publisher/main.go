package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type checkinMessage struct {
	User string  `json:"user,omitempty"`
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
}

const topic = "/checkin/position"

// Simulated check-ins drift around this point.
const (
	centerLng = 116.3527318941201
	centerLat = 39.950800621620495
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("checkin-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	userPool := []string{"mike", "anna", "zhang", "lea", "tomas"}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("user pool: %v (30%% of messages are anonymous)", userPool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		msg := checkinMessage{
			// ~2km drift around the center
			Lng: centerLng + (rand.Float64()-0.5)*0.02,
			Lat: centerLat + (rand.Float64()-0.5)*0.02,
		}
		// anonymous check-ins exercise the mint path on the server
		if rand.Float64() >= 0.3 {
			msg.User = userPool[rand.Intn(len(userPool))]
		}

		payload, _ := json.Marshal(msg)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
