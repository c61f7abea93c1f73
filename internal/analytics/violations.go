package analytics

import (
	"sort"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

// StationaryCutoffKmh is the fixed speed at or below which a vehicle
// counts as stationary for idle detection. Independent of the
// caller-supplied idle-duration threshold.
const StationaryCutoffKmh = 5.0

// idleFuelBurnLPerMin approximates fuel wasted while idling. A constant,
// not a measurement.
const idleFuelBurnLPerMin = 0.02

// SeverityFor buckets how far an observed value exceeds its threshold.
// Bands are inclusive on their lower bound.
func SeverityFor(excess float64) string {
	switch {
	case excess >= 40:
		return models.SeverityCritical
	case excess >= 20:
		return models.SeverityHigh
	case excess >= 10:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// DetectSpeedViolations emits one event per sample whose recorded speed
// reaches the threshold. Samples without a speed reading never violate.
func DetectSpeedViolations(samples []models.LocationSample, thresholdKmh float64) []models.ViolationEvent {
	violations := []models.ViolationEvent{}
	for _, s := range samples {
		if !s.HasSpeed() || s.Speed() < thresholdKmh {
			continue
		}
		violations = append(violations, models.ViolationEvent{
			VehicleID:     s.VehicleID,
			ObservedValue: s.Speed(),
			Threshold:     thresholdKmh,
			Severity:      SeverityFor(s.Speed() - thresholdKmh),
			Location:      models.GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude},
			Timestamp:     s.CapturedAt,
		})
	}
	return violations
}

// DetectIdleIntervals walks each vehicle's stationary samples in time
// order and reports one interval for every adjacent pair closer than
// idleThresholdMinutes. Adjacent pairs are reported independently, not
// merged into longer runs.
func DetectIdleIntervals(samples []models.LocationSample, idleThresholdMinutes float64) []models.IdleInterval {
	intervals := []models.IdleInterval{}
	if idleThresholdMinutes <= 0 {
		return intervals
	}

	byVehicle := groupByVehicle(samples)

	vehicleIDs := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		vehicleIDs = append(vehicleIDs, id)
	}
	sort.Strings(vehicleIDs)

	for _, id := range vehicleIDs {
		var stationary []models.LocationSample
		for _, s := range byVehicle[id] {
			if s.HasSpeed() && s.Speed() <= StationaryCutoffKmh {
				stationary = append(stationary, s)
			}
		}

		for i := 1; i < len(stationary); i++ {
			prev, cur := stationary[i-1], stationary[i]
			gapMinutes := cur.CapturedAt.Sub(prev.CapturedAt).Minutes()
			if gapMinutes <= 0 || gapMinutes > idleThresholdMinutes {
				continue
			}
			intervals = append(intervals, models.IdleInterval{
				VehicleID:       id,
				StartTime:       prev.CapturedAt,
				EndTime:         cur.CapturedAt,
				DurationMinutes: gapMinutes,
				Location:        models.GeoPoint{Latitude: prev.Latitude, Longitude: prev.Longitude},
				WastedFuelL:     gapMinutes * idleFuelBurnLPerMin,
			})
		}
	}
	return intervals
}

// GeofenceEvaluator decides which samples violate a geofence. The
// default implementation is a no-op so a point-in-polygon engine can be
// substituted without touching the rest of the analytics surface.
type GeofenceEvaluator interface {
	Evaluate(samples []models.LocationSample) []models.ViolationEvent
}

// NoopGeofenceEvaluator never reports a violation.
type NoopGeofenceEvaluator struct{}

func (NoopGeofenceEvaluator) Evaluate(_ []models.LocationSample) []models.ViolationEvent {
	return []models.ViolationEvent{}
}
