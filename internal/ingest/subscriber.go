package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/repository"
)

// topicPattern matches per-vehicle location topics.
const topicPattern = "fleet/vehicles/+/location"

// sampleMessage is the JSON wire format devices publish.
type sampleMessage struct {
	VehicleID      string   `json:"vehicle_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AltitudeMeters *float64 `json:"altitude_meters,omitempty"`
	SpeedKmh       *float64 `json:"speed_kmh,omitempty"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

// Subscriber consumes location samples from MQTT and writes them to the
// sample store. It is the only writer of location data; the analytics
// layer never sees it.
type Subscriber struct {
	client mqtt.Client
	writer repository.SampleWriter
}

// NewSubscriber creates a new location subscriber.
func NewSubscriber(client mqtt.Client, writer repository.SampleWriter) *Subscriber {
	return &Subscriber{client: client, writer: writer}
}

// Connect builds and connects an MQTT client for the given broker.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return client, nil
}

// Start subscribes to the location topic.
func (s *Subscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw sampleMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.WithField("topic", msg.Topic()).Warnf("invalid location message: %v", err)
		return
	}

	if err := validateSampleMessage(&raw); err != nil {
		log.WithField("vehicle_id", raw.VehicleID).Warnf("rejected location message: %v", err)
		return
	}

	sample := &models.LocationSample{
		VehicleID:      raw.VehicleID,
		Latitude:       raw.Latitude,
		Longitude:      raw.Longitude,
		AltitudeMeters: raw.AltitudeMeters,
		SpeedKmh:       raw.SpeedKmh,
		HeadingDegrees: raw.HeadingDegrees,
		AccuracyMeters: raw.AccuracyMeters,
		CapturedAt:     time.Unix(raw.Timestamp, 0).UTC(),
	}

	if err := s.writer.InsertSample(context.Background(), sample); err != nil {
		log.WithField("vehicle_id", sample.VehicleID).Errorf("failed to store sample: %v", err)
	}
}

func validateSampleMessage(msg *sampleMessage) error {
	if msg.VehicleID == "" {
		return fmt.Errorf("vehicle_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.SpeedKmh != nil && *msg.SpeedKmh < 0 {
		return fmt.Errorf("speed_kmh: must not be negative")
	}
	if msg.AccuracyMeters != nil && *msg.AccuracyMeters < 0 {
		return fmt.Errorf("accuracy_meters: must not be negative")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
