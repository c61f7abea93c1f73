package models

import "time"

// Violation severities, bucketed by how far the observed value exceeds
// the threshold. Bands are inclusive on their lower bound.
const (
	SeverityLow      = "LOW"      // 0 <= excess < 10
	SeverityMedium   = "MEDIUM"   // 10 <= excess < 20
	SeverityHigh     = "HIGH"     // 20 <= excess < 40
	SeverityCritical = "CRITICAL" // excess >= 40
)

// ViolationEvent is a single threshold violation observed at a sample.
type ViolationEvent struct {
	VehicleID     string    `json:"vehicleId"`
	ObservedValue float64   `json:"observedValue"`
	Threshold     float64   `json:"threshold"`
	Severity      string    `json:"severity"`
	Location      GeoPoint  `json:"location"`
	Timestamp     time.Time `json:"timestamp"`
}

// ViolationReport is the speed-violation API payload.
type ViolationReport struct {
	ThresholdKmh float64          `json:"thresholdKmh"`
	Violations   []ViolationEvent `json:"violations"`
	Count        int              `json:"count"`
}

// IdleInterval is a span where a vehicle's recorded speed stayed at or
// below the stationary cutoff.
type IdleInterval struct {
	VehicleID       string    `json:"vehicleId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes float64   `json:"durationMinutes"`
	Location        GeoPoint  `json:"location"`
	WastedFuelL     float64   `json:"wastedFuelLiters"`
}

// IdleReport is the idle-analysis API payload.
type IdleReport struct {
	ThresholdMinutes float64        `json:"thresholdMinutes"`
	Intervals        []IdleInterval `json:"intervals"`
	Count            int            `json:"count"`
	TotalIdleMinutes float64        `json:"totalIdleMinutes"`
	TotalWastedFuelL float64        `json:"totalWastedFuelLiters"`
}
