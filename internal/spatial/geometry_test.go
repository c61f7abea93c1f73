package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentroid(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 10, Lon: 20},
		{Lat: 20, Lon: 10},
	}
	c := Centroid(points)
	assert.InDelta(t, 10.0, c.Lat, 1e-12)
	assert.InDelta(t, 10.0, c.Lon, 1e-12)
}

func TestCentroidEmpty(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
}

func TestBoundingBox(t *testing.T) {
	points := []Point{
		{Lat: -5, Lon: 170},
		{Lat: 12, Lon: -30},
		{Lat: 3, Lon: 44},
	}
	minLat, minLon, maxLat, maxLon := BoundingBox(points)
	assert.Equal(t, -5.0, minLat)
	assert.Equal(t, -30.0, minLon)
	assert.Equal(t, 12.0, maxLat)
	assert.Equal(t, 170.0, maxLon)
}

func TestBoundingBoxEmpty(t *testing.T) {
	minLat, minLon, maxLat, maxLon := BoundingBox(nil)
	assert.Zero(t, minLat)
	assert.Zero(t, minLon)
	assert.Zero(t, maxLat)
	assert.Zero(t, maxLon)
}
