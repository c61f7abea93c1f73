package analytics

import (
	"github.com/fleetops/tracking-backend-go/internal/models"
)

// ResolveLatestPositions picks each vehicle's most recent sample and
// joins it with the vehicle's active operation. Recency is capture time
// descending with sample ID descending as the documented deterministic
// tie-break. Vehicles without samples get a nil position; sample
// vehicles not present in the vehicle list are ignored.
func ResolveLatestPositions(vehicles []models.VehicleRef, samples []models.LocationSample) []models.PositionSnapshot {
	latest := make(map[string]models.LocationSample, len(vehicles))
	for _, s := range samples {
		cur, ok := latest[s.VehicleID]
		if !ok || newerSample(s, cur) {
			latest[s.VehicleID] = s
		}
	}

	snapshots := make([]models.PositionSnapshot, 0, len(vehicles))
	for _, v := range vehicles {
		snapshot := models.PositionSnapshot{
			VehicleID:       v.VehicleID,
			Name:            v.Name,
			ActiveOperation: v.ActiveOperation,
		}
		if s, ok := latest[v.VehicleID]; ok {
			sample := s
			snapshot.Position = &sample
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func newerSample(a, b models.LocationSample) bool {
	if a.CapturedAt.Equal(b.CapturedAt) {
		return a.ID > b.ID
	}
	return a.CapturedAt.After(b.CapturedAt)
}
