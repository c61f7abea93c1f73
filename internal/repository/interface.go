package repository

import (
	"context"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

// SampleReader is the read contract the tracking service consumes. It
// is the only dependency the analytics layer has on storage.
type SampleReader interface {
	// FetchSamples returns samples matching the filter, ordered by
	// capture time ascending with sample ID as tie-break.
	FetchSamples(ctx context.Context, filter models.SampleFilter) ([]models.LocationSample, error)

	// FetchVehicleRefs returns the requested vehicles (all when ids is
	// empty) joined with their active operation, if any. Unknown ids
	// are simply absent from the result.
	FetchVehicleRefs(ctx context.Context, vehicleIDs []string) ([]models.VehicleRef, error)
}

// SampleWriter is the write contract used by the ingest path. The
// tracking service never sees it.
type SampleWriter interface {
	InsertSample(ctx context.Context, sample *models.LocationSample) error
}

// SampleStore is what a concrete storage backend implements.
type SampleStore interface {
	SampleReader
	SampleWriter
}
