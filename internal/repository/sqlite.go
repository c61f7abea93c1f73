package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fleetops/tracking-backend-go/internal/models"
)

// SQLiteSampleStore implements SampleStore on a SQLite database.
type SQLiteSampleStore struct {
	db *sql.DB
}

var _ SampleStore = (*SQLiteSampleStore)(nil)

// NewSQLiteSampleStore creates a new SQLite-backed sample store.
func NewSQLiteSampleStore(db *sql.DB) *SQLiteSampleStore {
	return &SQLiteSampleStore{db: db}
}

const sampleColumns = `id, vehicle_id, latitude, longitude, altitude_meters, speed_kmh, heading_degrees, accuracy_meters, captured_at`

// FetchSamples returns samples matching the filter, ordered by capture
// time ascending, sample ID ascending.
func (r *SQLiteSampleStore) FetchSamples(ctx context.Context, filter models.SampleFilter) ([]models.LocationSample, error) {
	query := `SELECT ` + sampleColumns + ` FROM location_samples`

	var conds []string
	var args []interface{}

	if len(filter.VehicleIDs) > 0 {
		conds = append(conds, `vehicle_id IN (`+placeholders(len(filter.VehicleIDs))+`)`)
		for _, id := range filter.VehicleIDs {
			args = append(args, id)
		}
	}
	if !filter.StartTime.IsZero() {
		conds = append(conds, `captured_at >= ?`)
		args = append(args, filter.StartTime.Unix())
	}
	if !filter.EndTime.IsZero() {
		conds = append(conds, `captured_at <= ?`)
		args = append(args, filter.EndTime.Unix())
	}
	if filter.SpeedAtLeast != nil {
		conds = append(conds, `speed_kmh >= ?`)
		args = append(args, *filter.SpeedAtLeast)
	}
	if filter.SpeedAtMost != nil {
		conds = append(conds, `speed_kmh <= ?`)
		args = append(args, *filter.SpeedAtMost)
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

// FetchVehicleRefs returns vehicles joined with their active operation
// (an operation without an end time).
func (r *SQLiteSampleStore) FetchVehicleRefs(ctx context.Context, vehicleIDs []string) ([]models.VehicleRef, error) {
	query := `
		SELECT v.vehicle_id, v.name, v.plate_number,
		       o.id, o.driver_name, o.started_at
		FROM vehicles v
		LEFT JOIN operations o ON o.vehicle_id = v.vehicle_id AND o.ended_at IS NULL
	`
	var args []interface{}
	if len(vehicleIDs) > 0 {
		query += ` WHERE v.vehicle_id IN (` + placeholders(len(vehicleIDs)) + `)`
		for _, id := range vehicleIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY v.vehicle_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicleRefs(rows)
}

// InsertSample stores one location sample. Used by the ingest path only.
func (r *SQLiteSampleStore) InsertSample(ctx context.Context, sample *models.LocationSample) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO location_samples
			(vehicle_id, latitude, longitude, altitude_meters, speed_kmh, heading_degrees, accuracy_meters, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
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

// placeholders builds "?, ?, ?" for an IN clause of n values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func scanSamples(rows *sql.Rows) ([]models.LocationSample, error) {
	var samples []models.LocationSample
	for rows.Next() {
		var s models.LocationSample
		var altitude, speed, heading, accuracy sql.NullFloat64
		var capturedAt int64

		if err := rows.Scan(&s.ID, &s.VehicleID, &s.Latitude, &s.Longitude,
			&altitude, &speed, &heading, &accuracy, &capturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}

		s.AltitudeMeters = floatPtr(altitude)
		s.SpeedKmh = floatPtr(speed)
		s.HeadingDegrees = floatPtr(heading)
		s.AccuracyMeters = floatPtr(accuracy)
		s.CapturedAt = time.Unix(capturedAt, 0).UTC()
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func scanVehicleRefs(rows *sql.Rows) ([]models.VehicleRef, error) {
	var vehicles []models.VehicleRef
	for rows.Next() {
		var v models.VehicleRef
		var name, plate sql.NullString
		var opID sql.NullInt64
		var driverName sql.NullString
		var startedAt sql.NullInt64

		if err := rows.Scan(&v.VehicleID, &name, &plate, &opID, &driverName, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}

		v.Name = name.String
		v.PlateNumber = plate.String
		if opID.Valid {
			v.ActiveOperation = &models.OperationSummary{
				OperationID: opID.Int64,
				DriverName:  driverName.String,
				StartedAt:   time.Unix(startedAt.Int64, 0).UTC(),
			}
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
