package models

// RouteLeg is one hop of an optimized route.
type RouteLeg struct {
	Order            int      `json:"order"`            // 0-based visiting position
	DestinationIndex int      `json:"destinationIndex"` // index into the input list
	Point            GeoPoint `json:"point"`
	DistanceKm       float64  `json:"distanceKm"` // from the previous stop
}

// OptimizedRoute is a visiting order over the requested destinations plus
// the cumulative estimated distance. The ordering comes from a
// nearest-neighbor heuristic and is not guaranteed shortest-possible.
type OptimizedRoute struct {
	Start           GeoPoint   `json:"start"`
	Legs            []RouteLeg `json:"legs"`
	TotalDistanceKm float64    `json:"totalDistanceKm"`
	VehicleID       string     `json:"vehicleId,omitempty"`
}
