package models

// HeatmapPoint represents one non-empty grid cell, positioned at the
// cell center.
type HeatmapPoint struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Intensity  int     `json:"intensity"`           // raw sample count
	Normalized float64 `json:"normalizedIntensity"` // 0-1, relative to the densest cell
}

// HeatmapResult is the heatmap API payload.
type HeatmapResult struct {
	Points     []HeatmapPoint `json:"points"`
	Count      int            `json:"count"`
	MaxCount   int            `json:"maxCount"`
	CellSizeKm float64        `json:"cellSizeKm"`
}

// FrequentArea is one of the top visited grid cells.
type FrequentArea struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	VisitCount int     `json:"visitCount"`
	Percentage float64 `json:"percentage"` // share of all samples, 0-100
}

// GeoBounds is the axis-aligned extent of a set of positions.
type GeoBounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// MovementPatterns summarizes where the fleet spends its time.
type MovementPatterns struct {
	TotalSamples    int            `json:"totalSamples"`
	FrequentAreas   []FrequentArea `json:"frequentAreas"`
	CoverageAreaKm2 float64        `json:"coverageAreaKm2"` // distinct cells × cell area
	ActivityCenter  *GeoPoint      `json:"activityCenter,omitempty"`
	Bounds          *GeoBounds     `json:"bounds,omitempty"`
}

// VehicleTrack is one vehicle's time-ordered trajectory.
type VehicleTrack struct {
	VehicleID  string           `json:"vehicleId"`
	Samples    []LocationSample `json:"samples"`
	Simplified bool             `json:"simplified"`
}

// TrackResult groups trajectories per vehicle.
type TrackResult struct {
	Tracks []VehicleTrack `json:"tracks"`
	Count  int            `json:"count"`
}
