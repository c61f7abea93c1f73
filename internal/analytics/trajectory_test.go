package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

var trackBase = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func sampleAt(vehicleID string, id int64, minute int, speed *float64) models.LocationSample {
	return models.LocationSample{
		ID:         id,
		VehicleID:  vehicleID,
		Latitude:   52.5 + float64(minute)*0.001,
		Longitude:  13.4,
		SpeedKmh:   speed,
		CapturedAt: trackBase.Add(time.Duration(minute) * time.Minute),
	}
}

func speed(v float64) *float64 { return &v }

func TestBuildTracksOrdersByCaptureTime(t *testing.T) {
	samples := []models.LocationSample{
		sampleAt("v1", 3, 20, nil),
		sampleAt("v1", 1, 0, nil),
		sampleAt("v1", 2, 10, nil),
	}

	tracks := BuildTracks(samples, 1)
	require.Len(t, tracks, 1)
	require.Len(t, tracks[0].Samples, 3)
	assert.Equal(t, int64(1), tracks[0].Samples[0].ID)
	assert.Equal(t, int64(2), tracks[0].Samples[1].ID)
	assert.Equal(t, int64(3), tracks[0].Samples[2].ID)
	assert.False(t, tracks[0].Simplified)
}

func TestBuildTracksGroupsPerVehicle(t *testing.T) {
	samples := []models.LocationSample{
		sampleAt("v2", 1, 0, nil),
		sampleAt("v1", 2, 0, nil),
		sampleAt("v2", 3, 5, nil),
	}

	tracks := BuildTracks(samples, 1)
	require.Len(t, tracks, 2)
	assert.Equal(t, "v1", tracks[0].VehicleID)
	assert.Len(t, tracks[0].Samples, 1)
	assert.Equal(t, "v2", tracks[1].VehicleID)
	assert.Len(t, tracks[1].Samples, 2)
}

func TestBuildTracksStrideKeepsEndpoints(t *testing.T) {
	var samples []models.LocationSample
	for i := 0; i < 10; i++ {
		samples = append(samples, sampleAt("v1", int64(i+1), i, nil))
	}

	tracks := BuildTracks(samples, 4)
	require.Len(t, tracks, 1)
	require.True(t, tracks[0].Simplified)

	kept := tracks[0].Samples
	// indices 0, 4, 8 by stride plus the last point
	require.Len(t, kept, 4)
	assert.Equal(t, int64(1), kept[0].ID)
	assert.Equal(t, int64(5), kept[1].ID)
	assert.Equal(t, int64(9), kept[2].ID)
	assert.Equal(t, int64(10), kept[3].ID)
}

func TestBuildTracksStrideNoOpForShortTrajectories(t *testing.T) {
	samples := []models.LocationSample{
		sampleAt("v1", 1, 0, nil),
		sampleAt("v1", 2, 1, nil),
	}

	tracks := BuildTracks(samples, 5)
	require.Len(t, tracks, 1)
	assert.Len(t, tracks[0].Samples, 2)
	assert.False(t, tracks[0].Simplified)
}

func TestBuildTracksEmptyInput(t *testing.T) {
	tracks := BuildTracks(nil, 1)
	assert.Empty(t, tracks)
}

func TestBuildTracksTieBreakBySampleID(t *testing.T) {
	a := sampleAt("v1", 2, 0, nil)
	b := sampleAt("v1", 1, 0, nil) // same capture time, lower id first

	tracks := BuildTracks([]models.LocationSample{a, b}, 1)
	require.Len(t, tracks, 1)
	assert.Equal(t, int64(1), tracks[0].Samples[0].ID)
	assert.Equal(t, int64(2), tracks[0].Samples[1].ID)
}
