package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

// PostgresSampleStore implements SampleStore on a Postgres database.
// Same schema as the SQLite store, with $n placeholders.
type PostgresSampleStore struct {
	db *sql.DB
}

var _ SampleStore = (*PostgresSampleStore)(nil)

// NewPostgresSampleStore creates a new Postgres-backed sample store.
func NewPostgresSampleStore(db *sql.DB) *PostgresSampleStore {
	return &PostgresSampleStore{db: db}
}

func (r *PostgresSampleStore) FetchSamples(ctx context.Context, filter models.SampleFilter) ([]models.LocationSample, error) {
	query := `SELECT ` + sampleColumns + ` FROM location_samples`

	var conds []string
	var args []interface{}

	if len(filter.VehicleIDs) > 0 {
		var ph []string
		for _, id := range filter.VehicleIDs {
			args = append(args, id)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, `vehicle_id IN (`+strings.Join(ph, ", ")+`)`)
	}
	if !filter.StartTime.IsZero() {
		args = append(args, filter.StartTime.Unix())
		conds = append(conds, fmt.Sprintf(`captured_at >= $%d`, len(args)))
	}
	if !filter.EndTime.IsZero() {
		args = append(args, filter.EndTime.Unix())
		conds = append(conds, fmt.Sprintf(`captured_at <= $%d`, len(args)))
	}
	if filter.SpeedAtLeast != nil {
		args = append(args, *filter.SpeedAtLeast)
		conds = append(conds, fmt.Sprintf(`speed_kmh >= $%d`, len(args)))
	}
	if filter.SpeedAtMost != nil {
		args = append(args, *filter.SpeedAtMost)
		conds = append(conds, fmt.Sprintf(`speed_kmh <= $%d`, len(args)))
	}

	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY captured_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

func (r *PostgresSampleStore) FetchVehicleRefs(ctx context.Context, vehicleIDs []string) ([]models.VehicleRef, error) {
	query := `
		SELECT v.vehicle_id, v.name, v.plate_number,
		       o.id, o.driver_name, o.started_at
		FROM vehicles v
		LEFT JOIN operations o ON o.vehicle_id = v.vehicle_id AND o.ended_at IS NULL
	`
	var args []interface{}
	if len(vehicleIDs) > 0 {
		var ph []string
		for _, id := range vehicleIDs {
			args = append(args, id)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		query += ` WHERE v.vehicle_id IN (` + strings.Join(ph, ", ") + `)`
	}
	query += ` ORDER BY v.vehicle_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicleRefs(rows)
}

func (r *PostgresSampleStore) InsertSample(ctx context.Context, sample *models.LocationSample) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO location_samples
			(vehicle_id, latitude, longitude, altitude_meters, speed_kmh, heading_degrees, accuracy_meters, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sample.VehicleID, sample.Latitude, sample.Longitude,
		nullFloat(sample.AltitudeMeters), nullFloat(sample.SpeedKmh),
		nullFloat(sample.HeadingDegrees), nullFloat(sample.AccuracyMeters),
		sample.CapturedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}
	return nil
}
