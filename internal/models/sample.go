package models

import "time"

// LocationSample represents a single GPS observation for a vehicle.
// Samples are written by the ingest path and are immutable afterwards;
// the analytics layer only ever reads them.
type LocationSample struct {
	ID        int64   `json:"id" db:"id"`
	VehicleID string  `json:"vehicleId" db:"vehicle_id"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	// Optional readings; nil when the device did not report them.
	AltitudeMeters *float64 `json:"altitudeMeters,omitempty" db:"altitude_meters"`
	SpeedKmh       *float64 `json:"speedKmh,omitempty" db:"speed_kmh"`
	HeadingDegrees *float64 `json:"headingDegrees,omitempty" db:"heading_degrees"`
	AccuracyMeters *float64 `json:"accuracyMeters,omitempty" db:"accuracy_meters"`

	CapturedAt time.Time `json:"capturedAt" db:"captured_at"`
}

// HasSpeed reports whether the sample carries a speed reading.
func (s *LocationSample) HasSpeed() bool {
	return s.SpeedKmh != nil
}

// Speed returns the recorded speed in km/h, or 0 when absent.
// Callers that must distinguish "absent" from "zero" use HasSpeed.
func (s *LocationSample) Speed() float64 {
	if s.SpeedKmh == nil {
		return 0
	}
	return *s.SpeedKmh
}

// SampleFilter narrows a sample query. Zero times mean unbounded;
// an empty vehicle list means all vehicles.
type SampleFilter struct {
	VehicleIDs   []string
	StartTime    time.Time
	EndTime      time.Time
	SpeedAtLeast *float64
	SpeedAtMost  *float64
}
