package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

func pointSample(vehicleID string, lat, lon float64) models.LocationSample {
	return models.LocationSample{
		VehicleID:  vehicleID,
		Latitude:   lat,
		Longitude:  lon,
		CapturedAt: trackBase,
	}
}

func TestBuildHeatmapSingleCell(t *testing.T) {
	// All samples within a few meters of each other: one cell at 1 km.
	samples := []models.LocationSample{
		pointSample("v1", 52.5000, 13.4000),
		pointSample("v1", 52.5001, 13.4001),
		pointSample("v2", 52.5002, 13.4002),
	}

	result := BuildHeatmap(samples, 1.0)
	require.Len(t, result.Points, 1)
	assert.Equal(t, 3, result.Points[0].Intensity)
	assert.Equal(t, 1.0, result.Points[0].Normalized)
	assert.Equal(t, 3, result.MaxCount)
}

func TestBuildHeatmapEmptyInput(t *testing.T) {
	result := BuildHeatmap(nil, 1.0)
	assert.Empty(t, result.Points)
	assert.Equal(t, 0, result.Count)
}

func TestBuildHeatmapSortedByIntensityDescending(t *testing.T) {
	samples := []models.LocationSample{
		// Three samples near the origin cell, one far away.
		pointSample("v1", 0.001, 0.001),
		pointSample("v1", 0.002, 0.002),
		pointSample("v1", 0.003, 0.001),
		pointSample("v1", 10.0, 10.0),
	}

	result := BuildHeatmap(samples, 1.0)
	require.Len(t, result.Points, 2)
	assert.Equal(t, 3, result.Points[0].Intensity)
	assert.Equal(t, 1, result.Points[1].Intensity)
	assert.InDelta(t, 1.0/3.0, result.Points[1].Normalized, 1e-9)
}

func TestBuildHeatmapCellCenterOffset(t *testing.T) {
	cellSizeKm := 1.0
	cellSizeDeg := cellSizeKm / KmPerDegree

	result := BuildHeatmap([]models.LocationSample{pointSample("v1", 0.0001, 0.0001)}, cellSizeKm)
	require.Len(t, result.Points, 1)
	// Cell floor corner is (0, 0); the reported center is half a cell in.
	assert.InDelta(t, cellSizeDeg/2, result.Points[0].Latitude, 1e-12)
	assert.InDelta(t, cellSizeDeg/2, result.Points[0].Longitude, 1e-12)
}

func TestBuildHeatmapNegativeCoordinatesFloor(t *testing.T) {
	cellSizeDeg := 1.0 / KmPerDegree

	// Just below zero must land in the cell with floor corner −cellSize,
	// not be truncated toward zero.
	result := BuildHeatmap([]models.LocationSample{pointSample("v1", -0.0001, -0.0001)}, 1.0)
	require.Len(t, result.Points, 1)
	assert.InDelta(t, -cellSizeDeg/2, result.Points[0].Latitude, 1e-12)
	assert.InDelta(t, -cellSizeDeg/2, result.Points[0].Longitude, 1e-12)
}

func TestAnalyzeMovementPatternsTopK(t *testing.T) {
	var samples []models.LocationSample
	// 5 samples in one area, 2 in another, 1 in a third.
	for i := 0; i < 5; i++ {
		samples = append(samples, pointSample("v1", 52.50, 13.40))
	}
	for i := 0; i < 2; i++ {
		samples = append(samples, pointSample("v1", 52.60, 13.50))
	}
	samples = append(samples, pointSample("v1", 52.70, 13.60))

	patterns := AnalyzeMovementPatterns(samples, 2)
	assert.Equal(t, 8, patterns.TotalSamples)
	require.Len(t, patterns.FrequentAreas, 2)
	assert.Equal(t, 5, patterns.FrequentAreas[0].VisitCount)
	assert.InDelta(t, 62.5, patterns.FrequentAreas[0].Percentage, 1e-9)
	assert.Equal(t, 2, patterns.FrequentAreas[1].VisitCount)
	assert.InDelta(t, 25.0, patterns.FrequentAreas[1].Percentage, 1e-9)

	// 3 distinct cells at 0.5 km -> 0.75 km².
	assert.InDelta(t, 3*0.5*0.5, patterns.CoverageAreaKm2, 1e-9)

	require.NotNil(t, patterns.Bounds)
	assert.InDelta(t, 52.50, patterns.Bounds.MinLat, 1e-9)
	assert.InDelta(t, 52.70, patterns.Bounds.MaxLat, 1e-9)
	assert.InDelta(t, 13.40, patterns.Bounds.MinLon, 1e-9)
	assert.InDelta(t, 13.60, patterns.Bounds.MaxLon, 1e-9)

	// Centroid is the plain mean of all 8 samples.
	require.NotNil(t, patterns.ActivityCenter)
	assert.InDelta(t, (5*52.50+2*52.60+52.70)/8, patterns.ActivityCenter.Latitude, 1e-9)
	assert.InDelta(t, (5*13.40+2*13.50+13.60)/8, patterns.ActivityCenter.Longitude, 1e-9)
}

func TestAnalyzeMovementPatternsNegativeTopK(t *testing.T) {
	samples := []models.LocationSample{pointSample("v1", 52.50, 13.40)}

	patterns := AnalyzeMovementPatterns(samples, -3)
	assert.Equal(t, 1, patterns.TotalSamples)
	assert.Empty(t, patterns.FrequentAreas)
	assert.InDelta(t, 0.25, patterns.CoverageAreaKm2, 1e-9)
}

func TestAnalyzeMovementPatternsEmptyInput(t *testing.T) {
	patterns := AnalyzeMovementPatterns(nil, 10)
	assert.Equal(t, 0, patterns.TotalSamples)
	assert.Empty(t, patterns.FrequentAreas)
	assert.Equal(t, 0.0, patterns.CoverageAreaKm2)
	assert.Nil(t, patterns.ActivityCenter)
	assert.Nil(t, patterns.Bounds)
}
