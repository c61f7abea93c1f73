package analytics

import (
	"math"
	"sort"

	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/spatial"
)

// KmPerDegree converts a cell size in kilometers to a degree-equivalent.
// This is a flat-earth approximation around mid latitudes: east-west
// cell width distorts away from the equator. It is an accepted
// simplification; changing the constant changes every heatmap and
// pattern output.
const KmPerDegree = 111.0

// patternCellSizeKm is the fixed, finer grid used for frequent-area
// pattern analysis.
const patternCellSizeKm = 0.5

type gridKey struct {
	latIdx int64
	lonIdx int64
}

type gridCell struct {
	key   gridKey
	count int
}

// binSamples buckets samples into fixed-size cells of cellSizeDeg
// degrees, keyed by the floor of (coordinate / cellSizeDeg).
func binSamples(samples []models.LocationSample, cellSizeDeg float64) map[gridKey]int {
	cells := make(map[gridKey]int)
	for _, s := range samples {
		key := gridKey{
			latIdx: int64(math.Floor(s.Latitude / cellSizeDeg)),
			lonIdx: int64(math.Floor(s.Longitude / cellSizeDeg)),
		}
		cells[key]++
	}
	return cells
}

// sortedCells flattens the cell map ordered by count descending, with
// cell indices as a deterministic tie-break.
func sortedCells(cells map[gridKey]int) []gridCell {
	out := make([]gridCell, 0, len(cells))
	for key, count := range cells {
		out = append(out, gridCell{key: key, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		if out[i].key.latIdx != out[j].key.latIdx {
			return out[i].key.latIdx < out[j].key.latIdx
		}
		return out[i].key.lonIdx < out[j].key.lonIdx
	})
	return out
}

// cellCenter returns the reported center of a cell: its floor corner
// offset by half the cell size.
func cellCenter(key gridKey, cellSizeDeg float64) (float64, float64) {
	lat := float64(key.latIdx)*cellSizeDeg + cellSizeDeg/2
	lon := float64(key.lonIdx)*cellSizeDeg + cellSizeDeg/2
	return lat, lon
}

// BuildHeatmap bins samples into cells of cellSizeKm and reports one
// point per non-empty cell with intensity normalized against the
// densest cell, sorted by intensity descending. Empty input yields an
// empty point list.
func BuildHeatmap(samples []models.LocationSample, cellSizeKm float64) models.HeatmapResult {
	result := models.HeatmapResult{
		Points:     []models.HeatmapPoint{},
		CellSizeKm: cellSizeKm,
	}
	if cellSizeKm <= 0 || len(samples) == 0 {
		return result
	}

	cellSizeDeg := cellSizeKm / KmPerDegree
	cells := sortedCells(binSamples(samples, cellSizeDeg))

	// Floor at 1 so zero cells can never divide by zero.
	maxCount := 1
	if len(cells) > 0 && cells[0].count > maxCount {
		maxCount = cells[0].count
	}

	for _, cell := range cells {
		lat, lon := cellCenter(cell.key, cellSizeDeg)
		result.Points = append(result.Points, models.HeatmapPoint{
			Latitude:   lat,
			Longitude:  lon,
			Intensity:  cell.count,
			Normalized: float64(cell.count) / float64(maxCount),
		})
	}
	result.Count = len(result.Points)
	result.MaxCount = maxCount
	return result
}

// AnalyzeMovementPatterns reuses the heatmap binning at a finer fixed
// grid to report the top-K most visited cells and a coarse coverage
// estimate (distinct non-empty cells × cell area).
func AnalyzeMovementPatterns(samples []models.LocationSample, topK int) models.MovementPatterns {
	patterns := models.MovementPatterns{
		TotalSamples:  len(samples),
		FrequentAreas: []models.FrequentArea{},
	}
	if len(samples) == 0 {
		return patterns
	}

	cellSizeDeg := patternCellSizeKm / KmPerDegree
	cells := sortedCells(binSamples(samples, cellSizeDeg))

	patterns.CoverageAreaKm2 = float64(len(cells)) * patternCellSizeKm * patternCellSizeKm

	points := make([]spatial.Point, len(samples))
	for i, s := range samples {
		points[i] = spatial.Point{Lat: s.Latitude, Lon: s.Longitude}
	}
	center := spatial.Centroid(points)
	patterns.ActivityCenter = &models.GeoPoint{Latitude: center.Lat, Longitude: center.Lon}
	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(points)
	patterns.Bounds = &models.GeoBounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}

	if topK < 0 {
		topK = 0
	}
	if topK > len(cells) {
		topK = len(cells)
	}
	for _, cell := range cells[:topK] {
		lat, lon := cellCenter(cell.key, cellSizeDeg)
		patterns.FrequentAreas = append(patterns.FrequentAreas, models.FrequentArea{
			Latitude:   lat,
			Longitude:  lon,
			VisitCount: cell.count,
			Percentage: float64(cell.count) / float64(len(samples)) * 100,
		})
	}
	return patterns
}
