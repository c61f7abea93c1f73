package analytics

import (
	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/spatial"
)

// OptimizeRoute orders destinations by a nearest-neighbor heuristic:
// from the current position, always move to the closest unvisited
// destination. Ties go to the lowest input index. The result is a
// permutation of the input, not an optimal TSP tour.
func OptimizeRoute(start models.GeoPoint, destinations []models.GeoPoint) models.OptimizedRoute {
	route := models.OptimizedRoute{
		Start: start,
		Legs:  make([]models.RouteLeg, 0, len(destinations)),
	}

	visited := make([]bool, len(destinations))
	current := start

	for order := 0; order < len(destinations); order++ {
		nearest := -1
		nearestDist := 0.0
		for i, dest := range destinations {
			if visited[i] {
				continue
			}
			d := spatial.HaversineDistanceKm(current.Latitude, current.Longitude, dest.Latitude, dest.Longitude)
			if nearest == -1 || d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}

		visited[nearest] = true
		route.Legs = append(route.Legs, models.RouteLeg{
			Order:            order,
			DestinationIndex: nearest,
			Point:            destinations[nearest],
			DistanceKm:       nearestDist,
		})
		route.TotalDistanceKm += nearestDist
		current = destinations[nearest]
	}

	return route
}
