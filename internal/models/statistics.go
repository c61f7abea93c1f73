package models

// FleetStatistics aggregates movement and data-quality figures over a
// sample set. An empty set yields the zero value, never an error.
type FleetStatistics struct {
	SampleCount     int     `json:"sampleCount"`
	VehicleCount    int     `json:"vehicleCount"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	AverageSpeedKmh float64 `json:"averageSpeedKmh"` // mean over samples that carry a speed
	MaxSpeedKmh     float64 `json:"maxSpeedKmh"`

	// Data quality
	SpeedCoverage    float64 `json:"speedCoverage"`    // fraction of samples with a speed reading
	AccuracyCoverage float64 `json:"accuracyCoverage"` // fraction of samples with an accuracy reading
	MeanAccuracyM    float64 `json:"meanAccuracyMeters"`
}
