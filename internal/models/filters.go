package models

import "time"

// TrackingQuery binds the query parameters shared by the tracking
// endpoints. Times are Unix seconds; zero means unbounded.
type TrackingQuery struct {
	StartTime  int64    `form:"startTime"`
	EndTime    int64    `form:"endTime"`
	VehicleIDs []string `form:"vehicleIds"`
}

// ToSampleFilter converts the bound query into a repository filter.
func (q TrackingQuery) ToSampleFilter() SampleFilter {
	filter := SampleFilter{VehicleIDs: q.VehicleIDs}
	if q.StartTime > 0 {
		filter.StartTime = time.Unix(q.StartTime, 0).UTC()
	}
	if q.EndTime > 0 {
		filter.EndTime = time.Unix(q.EndTime, 0).UTC()
	}
	return filter
}

// AreaQuery binds the vehicles-in-area parameters. Latitude and
// longitude are pointers so a missing center is distinguishable from
// coordinate zero.
type AreaQuery struct {
	Latitude  *float64 `form:"latitude"`
	Longitude *float64 `form:"longitude"`
	RadiusKm  float64  `form:"radiusKm"`
}

// HeatmapQuery binds the heatmap parameters.
type HeatmapQuery struct {
	TrackingQuery
	CellSizeKm float64 `form:"cellSizeKm"`
}

// TracksQuery binds the vehicle-tracks parameters.
type TracksQuery struct {
	TrackingQuery
	Simplify bool `form:"simplify"`
}

// SpeedViolationQuery binds the speed-violation parameters.
type SpeedViolationQuery struct {
	TrackingQuery
	SpeedThresholdKmh float64 `form:"speedThresholdKmh"`
}

// IdleQuery binds the idle-analysis parameters.
type IdleQuery struct {
	TrackingQuery
	IdleThresholdMinutes float64 `form:"idleThresholdMinutes"`
}

// RouteRequest is the JSON body of the route-optimization endpoint.
type RouteRequest struct {
	StartLocation *GeoPoint  `json:"startLocation"`
	Destinations  []GeoPoint `json:"destinations"`
	VehicleID     string     `json:"vehicleId"`
}
