package models

import "time"

// VehicleRef is the minimal vehicle identity supplied by the fleet
// store, together with the currently active operation when one exists.
type VehicleRef struct {
	VehicleID       string            `json:"vehicleId" db:"vehicle_id"`
	Name            string            `json:"name,omitempty" db:"name"`
	PlateNumber     string            `json:"plateNumber,omitempty" db:"plate_number"`
	ActiveOperation *OperationSummary `json:"activeOperation,omitempty"`
}

// OperationSummary is the slice of an operation (trip) the tracking
// layer needs: enough to say who is driving a vehicle right now.
type OperationSummary struct {
	OperationID int64     `json:"operationId" db:"operation_id"`
	DriverName  string    `json:"driverName,omitempty" db:"driver_name"`
	StartedAt   time.Time `json:"startedAt" db:"started_at"`
}

// PositionSnapshot is the latest known position of one vehicle joined
// with its active operation. Position is nil when the vehicle has no
// samples yet.
type PositionSnapshot struct {
	VehicleID       string            `json:"vehicleId"`
	Name            string            `json:"name,omitempty"`
	Position        *LocationSample   `json:"position"`
	ActiveOperation *OperationSummary `json:"activeOperation"`
}

// VehicleDetail extends the snapshot with a short tail of recent samples.
type VehicleDetail struct {
	Vehicle       VehicleRef       `json:"vehicle"`
	Position      *LocationSample  `json:"position"`
	RecentSamples []LocationSample `json:"recentSamples"`
}

// AreaResult lists the vehicles whose latest position falls within a
// radius of a center point.
type AreaResult struct {
	Center   GeoPoint           `json:"center"`
	RadiusKm float64            `json:"radiusKm"`
	Vehicles []PositionSnapshot `json:"vehicles"`
	Count    int                `json:"count"`
}

// GeoPoint is a bare coordinate pair in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point is inside coordinate ranges.
func (p GeoPoint) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
