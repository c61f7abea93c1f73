package service

import (
	"context"
	"fmt"

	"github.com/fleetops/tracking-backend-go/internal/analytics"
	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/repository"
	"github.com/fleetops/tracking-backend-go/internal/spatial"
)

// Defaults applied when a request leaves a knob unset.
const (
	DefaultCellSizeKm           = 1.0
	DefaultSpeedThresholdKmh    = 80.0
	DefaultIdleThresholdMinutes = 10.0
	DefaultAreaRadiusKm         = 10.0
	DefaultPatternTopK          = 10
	DefaultSimplifyStride       = 10

	recentSampleTail = 20
)

// TrackingService implements the tracking and analytics contract. It is
// stateless: every method is a pure function of its inputs plus the
// data fetched for that call, so concurrent requests need no
// coordination. The read-only repository interface is injected at
// construction.
type TrackingService struct {
	reader   repository.SampleReader
	geofence analytics.GeofenceEvaluator
}

// NewTrackingService creates a new tracking service. A nil evaluator
// falls back to the no-op geofence implementation.
func NewTrackingService(reader repository.SampleReader, geofence analytics.GeofenceEvaluator) *TrackingService {
	if geofence == nil {
		geofence = analytics.NoopGeofenceEvaluator{}
	}
	return &TrackingService{reader: reader, geofence: geofence}
}

// GetAllVehiclePositions returns the latest known position of every
// vehicle in the fleet. Vehicles without samples get a nil position.
func (s *TrackingService) GetAllVehiclePositions(ctx context.Context) ([]models.PositionSnapshot, error) {
	vehicles, err := s.reader.FetchVehicleRefs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		return []models.PositionSnapshot{}, nil
	}

	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.VehicleID
	}
	samples, err := s.reader.FetchSamples(ctx, models.SampleFilter{VehicleIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}

	return analytics.ResolveLatestPositions(vehicles, samples), nil
}

// GetVehicleDetails returns one vehicle's latest position plus a short
// tail of recent samples. Unknown ids raise NotFoundError.
func (s *TrackingService) GetVehicleDetails(ctx context.Context, vehicleID string) (*models.VehicleDetail, error) {
	if vehicleID == "" {
		return nil, newValidationError(CodeBadParameter, "vehicle id is required")
	}

	vehicles, err := s.reader.FetchVehicleRefs(ctx, []string{vehicleID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	if len(vehicles) == 0 {
		return nil, &NotFoundError{Resource: "vehicle", ID: vehicleID}
	}

	samples, err := s.reader.FetchSamples(ctx, models.SampleFilter{VehicleIDs: []string{vehicleID}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}

	detail := &models.VehicleDetail{Vehicle: vehicles[0], RecentSamples: []models.LocationSample{}}
	if len(samples) > 0 {
		tail := samples
		if len(tail) > recentSampleTail {
			tail = tail[len(tail)-recentSampleTail:]
		}
		detail.RecentSamples = tail
		last := tail[len(tail)-1]
		detail.Position = &last
	}
	return detail, nil
}

// GetVehiclesInArea returns the vehicles whose latest position lies
// within radiusKm of center.
func (s *TrackingService) GetVehiclesInArea(ctx context.Context, center *models.GeoPoint, radiusKm float64) (*models.AreaResult, error) {
	if center == nil {
		return nil, newValidationError(CodeNoCenter, "center point is required")
	}
	if !center.Valid() {
		return nil, newValidationError(CodeBadCoordinates, "center point is out of coordinate range")
	}
	if radiusKm <= 0 {
		radiusKm = DefaultAreaRadiusKm
	}

	snapshots, err := s.GetAllVehiclePositions(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.AreaResult{
		Center:   *center,
		RadiusKm: radiusKm,
		Vehicles: []models.PositionSnapshot{},
	}
	for _, snap := range snapshots {
		if snap.Position == nil {
			continue
		}
		d := spatial.HaversineDistanceKm(center.Latitude, center.Longitude,
			snap.Position.Latitude, snap.Position.Longitude)
		if d <= radiusKm {
			result.Vehicles = append(result.Vehicles, snap)
		}
	}
	result.Count = len(result.Vehicles)
	return result, nil
}

// GenerateHeatmap bins the filtered samples into a spatial grid.
func (s *TrackingService) GenerateHeatmap(ctx context.Context, filter models.SampleFilter, cellSizeKm float64) (*models.HeatmapResult, error) {
	if cellSizeKm <= 0 {
		cellSizeKm = DefaultCellSizeKm
	}
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	result := analytics.BuildHeatmap(samples, cellSizeKm)
	return &result, nil
}

// GetVehicleTracks returns per-vehicle time-ordered trajectories,
// optionally stride-decimated.
func (s *TrackingService) GetVehicleTracks(ctx context.Context, filter models.SampleFilter, simplify bool) (*models.TrackResult, error) {
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	stride := 1
	if simplify {
		stride = DefaultSimplifyStride
	}
	tracks := analytics.BuildTracks(samples, stride)
	return &models.TrackResult{Tracks: tracks, Count: len(tracks)}, nil
}

// DetectSpeedViolations reports every sample at or above the threshold,
// bucketed by severity.
func (s *TrackingService) DetectSpeedViolations(ctx context.Context, filter models.SampleFilter, thresholdKmh float64) (*models.ViolationReport, error) {
	if thresholdKmh <= 0 {
		thresholdKmh = DefaultSpeedThresholdKmh
	}
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	violations := analytics.DetectSpeedViolations(samples, thresholdKmh)
	return &models.ViolationReport{
		ThresholdKmh: thresholdKmh,
		Violations:   violations,
		Count:        len(violations),
	}, nil
}

// AnalyzeIdling reports spans where vehicles sat at or below the
// stationary cutoff.
func (s *TrackingService) AnalyzeIdling(ctx context.Context, filter models.SampleFilter, idleThresholdMinutes float64) (*models.IdleReport, error) {
	if idleThresholdMinutes <= 0 {
		idleThresholdMinutes = DefaultIdleThresholdMinutes
	}
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}

	intervals := analytics.DetectIdleIntervals(samples, idleThresholdMinutes)
	report := &models.IdleReport{
		ThresholdMinutes: idleThresholdMinutes,
		Intervals:        intervals,
		Count:            len(intervals),
	}
	for _, iv := range intervals {
		report.TotalIdleMinutes += iv.DurationMinutes
		report.TotalWastedFuelL += iv.WastedFuelL
	}
	return report, nil
}

// AnalyzeMovementPatterns reports the most visited areas and a coarse
// coverage estimate for the filtered samples.
func (s *TrackingService) AnalyzeMovementPatterns(ctx context.Context, filter models.SampleFilter) (*models.MovementPatterns, error) {
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	patterns := analytics.AnalyzeMovementPatterns(samples, DefaultPatternTopK)
	return &patterns, nil
}

// OptimizeRoute orders the destinations by the nearest-neighbor
// heuristic starting from start.
func (s *TrackingService) OptimizeRoute(ctx context.Context, start *models.GeoPoint, destinations []models.GeoPoint, vehicleID string) (*models.OptimizedRoute, error) {
	if start == nil {
		return nil, newValidationError(CodeBadParameter, "start location is required")
	}
	if !start.Valid() {
		return nil, newValidationError(CodeBadCoordinates, "start location is out of coordinate range")
	}
	if len(destinations) == 0 {
		return nil, newValidationError(CodeNoDestinations, "at least one destination is required")
	}
	for _, d := range destinations {
		if !d.Valid() {
			return nil, newValidationError(CodeBadCoordinates, "destination is out of coordinate range")
		}
	}

	route := analytics.OptimizeRoute(*start, destinations)
	route.VehicleID = vehicleID
	return &route, nil
}

// GetStatistics aggregates movement and data-quality statistics over
// the filtered samples.
func (s *TrackingService) GetStatistics(ctx context.Context, filter models.SampleFilter) (*models.FleetStatistics, error) {
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	stats := analytics.ComputeStatistics(samples)
	return &stats, nil
}

// DetectGeofenceViolations runs the configured geofence evaluator over
// the filtered samples. The default no-op evaluator answers without
// consulting the repository, so it never fails and always returns an
// empty list.
func (s *TrackingService) DetectGeofenceViolations(ctx context.Context, filter models.SampleFilter) ([]models.ViolationEvent, error) {
	if _, ok := s.geofence.(analytics.NoopGeofenceEvaluator); ok {
		return []models.ViolationEvent{}, nil
	}
	samples, err := s.reader.FetchSamples(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch samples: %w", err)
	}
	return s.geofence.Evaluate(samples), nil
}
