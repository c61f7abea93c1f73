package analytics

import (
	"sort"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

// BuildTracks groups samples by vehicle and orders each group by capture
// time ascending (sample ID ascending as tie-break). When stride > 1 the
// trajectory is decimated to every Nth point, always keeping the first
// and last point. Decimation is a no-op for trajectories shorter than
// the stride.
func BuildTracks(samples []models.LocationSample, stride int) []models.VehicleTrack {
	byVehicle := groupByVehicle(samples)

	vehicleIDs := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		vehicleIDs = append(vehicleIDs, id)
	}
	sort.Strings(vehicleIDs)

	tracks := make([]models.VehicleTrack, 0, len(vehicleIDs))
	for _, id := range vehicleIDs {
		points := byVehicle[id]
		simplified := false
		if stride > 1 && len(points) >= stride {
			points = decimate(points, stride)
			simplified = true
		}
		tracks = append(tracks, models.VehicleTrack{
			VehicleID:  id,
			Samples:    points,
			Simplified: simplified,
		})
	}
	return tracks
}

// groupByVehicle splits samples per vehicle, each group sorted by
// capture time ascending with sample ID as the deterministic tie-break.
func groupByVehicle(samples []models.LocationSample) map[string][]models.LocationSample {
	byVehicle := make(map[string][]models.LocationSample)
	for _, s := range samples {
		byVehicle[s.VehicleID] = append(byVehicle[s.VehicleID], s)
	}
	for _, group := range byVehicle {
		sortByCaptureTime(group)
	}
	return byVehicle
}

func sortByCaptureTime(samples []models.LocationSample) {
	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].CapturedAt.Equal(samples[j].CapturedAt) {
			return samples[i].ID < samples[j].ID
		}
		return samples[i].CapturedAt.Before(samples[j].CapturedAt)
	})
}

// decimate keeps every Nth sample plus the first and last one.
func decimate(samples []models.LocationSample, stride int) []models.LocationSample {
	out := make([]models.LocationSample, 0, len(samples)/stride+2)
	for i, s := range samples {
		if i == 0 || i == len(samples)-1 || i%stride == 0 {
			out = append(out, s)
		}
	}
	return out
}
