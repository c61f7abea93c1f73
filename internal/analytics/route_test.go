package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

func TestOptimizeRouteNearestFirst(t *testing.T) {
	start := models.GeoPoint{Latitude: 52.50, Longitude: 13.40}
	destinations := []models.GeoPoint{
		{Latitude: 53.50, Longitude: 13.40}, // ~111 km north
		{Latitude: 52.51, Longitude: 13.40}, // ~1 km north, trivially nearest
		{Latitude: 52.90, Longitude: 13.40}, // ~44 km north
	}

	route := OptimizeRoute(start, destinations)
	require.Len(t, route.Legs, 3)
	assert.Equal(t, 1, route.Legs[0].DestinationIndex)
	assert.Equal(t, 2, route.Legs[1].DestinationIndex)
	assert.Equal(t, 0, route.Legs[2].DestinationIndex)
}

func TestOptimizeRouteIsPermutation(t *testing.T) {
	start := models.GeoPoint{Latitude: 0, Longitude: 0}
	destinations := []models.GeoPoint{
		{Latitude: 1, Longitude: 1},
		{Latitude: -2, Longitude: 3},
		{Latitude: 4, Longitude: -1},
		{Latitude: 0.5, Longitude: 0.5},
		{Latitude: -1, Longitude: -1},
	}

	route := OptimizeRoute(start, destinations)
	require.Len(t, route.Legs, len(destinations))

	seen := make(map[int]bool)
	for i, leg := range route.Legs {
		assert.Equal(t, i, leg.Order)
		assert.False(t, seen[leg.DestinationIndex], "destination %d visited twice", leg.DestinationIndex)
		seen[leg.DestinationIndex] = true
	}
	assert.Len(t, seen, len(destinations))
}

func TestOptimizeRouteTotalDistanceIsLegSum(t *testing.T) {
	start := models.GeoPoint{Latitude: 0, Longitude: 0}
	destinations := []models.GeoPoint{
		{Latitude: 1, Longitude: 0},
		{Latitude: 2, Longitude: 0},
	}

	route := OptimizeRoute(start, destinations)
	var sum float64
	for _, leg := range route.Legs {
		sum += leg.DistanceKm
	}
	assert.InDelta(t, sum, route.TotalDistanceKm, 1e-9)
	assert.Greater(t, route.TotalDistanceKm, 0.0)
}

func TestOptimizeRouteTieBreaksByInputIndex(t *testing.T) {
	start := models.GeoPoint{Latitude: 0, Longitude: 0}
	// Two destinations at the same point: the first-seen index wins.
	destinations := []models.GeoPoint{
		{Latitude: 1, Longitude: 1},
		{Latitude: 1, Longitude: 1},
	}

	route := OptimizeRoute(start, destinations)
	require.Len(t, route.Legs, 2)
	assert.Equal(t, 0, route.Legs[0].DestinationIndex)
	assert.Equal(t, 1, route.Legs[1].DestinationIndex)
}
