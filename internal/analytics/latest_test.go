package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

func TestResolveLatestPositionsPicksMostRecent(t *testing.T) {
	vehicles := []models.VehicleRef{{VehicleID: "v1"}}
	samples := []models.LocationSample{
		sampleAt("v1", 1, 0, nil),
		sampleAt("v1", 3, 20, nil),
		sampleAt("v1", 2, 10, nil),
	}

	snapshots := ResolveLatestPositions(vehicles, samples)
	require.Len(t, snapshots, 1)
	require.NotNil(t, snapshots[0].Position)
	assert.Equal(t, int64(3), snapshots[0].Position.ID)
}

func TestResolveLatestPositionsTieBreakByID(t *testing.T) {
	vehicles := []models.VehicleRef{{VehicleID: "v1"}}
	a := sampleAt("v1", 7, 5, nil)
	b := sampleAt("v1", 9, 5, nil) // same capture time, higher id wins

	snapshots := ResolveLatestPositions(vehicles, []models.LocationSample{a, b})
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(9), snapshots[0].Position.ID)
}

func TestResolveLatestPositionsNilForVehicleWithoutSamples(t *testing.T) {
	vehicles := []models.VehicleRef{{VehicleID: "v1"}, {VehicleID: "v2"}}
	samples := []models.LocationSample{sampleAt("v1", 1, 0, nil)}

	snapshots := ResolveLatestPositions(vehicles, samples)
	require.Len(t, snapshots, 2)
	assert.NotNil(t, snapshots[0].Position)
	assert.Nil(t, snapshots[1].Position)
}

func TestResolveLatestPositionsJoinsActiveOperation(t *testing.T) {
	op := &models.OperationSummary{OperationID: 42, DriverName: "R. Petrov", StartedAt: time.Now().UTC()}
	vehicles := []models.VehicleRef{{VehicleID: "v1", Name: "Truck 7", ActiveOperation: op}}

	snapshots := ResolveLatestPositions(vehicles, nil)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Truck 7", snapshots[0].Name)
	require.NotNil(t, snapshots[0].ActiveOperation)
	assert.Equal(t, int64(42), snapshots[0].ActiveOperation.OperationID)
}

func TestResolveLatestPositionsIgnoresUnknownVehicles(t *testing.T) {
	vehicles := []models.VehicleRef{{VehicleID: "v1"}}
	samples := []models.LocationSample{
		sampleAt("v1", 1, 0, nil),
		sampleAt("ghost", 2, 0, nil),
	}

	snapshots := ResolveLatestPositions(vehicles, samples)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "v1", snapshots[0].VehicleID)
}
