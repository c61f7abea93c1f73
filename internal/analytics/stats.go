package analytics

import (
	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/spatial"
)

// ComputeStatistics aggregates movement and data-quality figures over a
// sample set. Distance is summed over consecutive same-vehicle pairs
// only; samples without a speed reading are excluded from the speed
// average rather than counted as zero. Empty input yields the zero
// value.
func ComputeStatistics(samples []models.LocationSample) models.FleetStatistics {
	stats := models.FleetStatistics{SampleCount: len(samples)}
	if len(samples) == 0 {
		return stats
	}

	byVehicle := groupByVehicle(samples)
	stats.VehicleCount = len(byVehicle)

	for _, group := range byVehicle {
		for i := 1; i < len(group); i++ {
			stats.TotalDistanceKm += spatial.HaversineDistanceKm(
				group[i-1].Latitude, group[i-1].Longitude,
				group[i].Latitude, group[i].Longitude,
			)
		}
	}

	var speeds, accuracies []float64
	for _, s := range samples {
		if s.HasSpeed() {
			speeds = append(speeds, s.Speed())
			if s.Speed() > stats.MaxSpeedKmh {
				stats.MaxSpeedKmh = s.Speed()
			}
		}
		if s.AccuracyMeters != nil {
			accuracies = append(accuracies, *s.AccuracyMeters)
		}
	}

	stats.AverageSpeedKmh = mean(speeds)
	stats.MeanAccuracyM = mean(accuracies)
	stats.SpeedCoverage = float64(len(speeds)) / float64(len(samples))
	stats.AccuracyCoverage = float64(len(accuracies)) / float64(len(samples))
	return stats
}

// mean calculates the arithmetic mean of a slice of float64 values
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
