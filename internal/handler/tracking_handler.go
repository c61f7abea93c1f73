package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/service"
	"github.com/fleetops/tracking-backend-go/pkg/response"
)

// TrackingHandler handles HTTP requests for the tracking and analytics
// endpoints.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// Register wires the tracking routes onto a router group.
func (h *TrackingHandler) Register(r *gin.RouterGroup) {
	r.GET("/positions", h.GetAllVehiclePositions)
	r.GET("/vehicles/:vehicle_id", h.GetVehicleDetails)
	r.GET("/area", h.GetVehiclesInArea)
	r.GET("/heatmap", h.GenerateHeatmap)
	r.GET("/tracks", h.GetVehicleTracks)
	r.GET("/violations/speed", h.DetectSpeedViolations)
	r.GET("/violations/geofence", h.DetectGeofenceViolations)
	r.GET("/idling", h.AnalyzeIdling)
	r.GET("/patterns", h.AnalyzeMovementPatterns)
	r.GET("/statistics", h.GetStatistics)
	r.POST("/routes/optimize", h.OptimizeRoute)
}

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, verr.Code, verr.Message)
		return
	}
	var nferr *service.NotFoundError
	if errors.As(err, &nferr) {
		response.NotFound(c, nferr.Error())
		return
	}
	response.InternalError(c, err.Error())
}

// GetAllVehiclePositions handles GET /api/v1/tracking/positions
func (h *TrackingHandler) GetAllVehiclePositions(c *gin.Context) {
	positions, err := h.trackingService.GetAllVehiclePositions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"positions": positions,
		"count":     len(positions),
	})
}

// GetVehicleDetails handles GET /api/v1/tracking/vehicles/:vehicle_id
func (h *TrackingHandler) GetVehicleDetails(c *gin.Context) {
	detail, err := h.trackingService.GetVehicleDetails(c.Request.Context(), c.Param("vehicle_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// GetVehiclesInArea handles GET /api/v1/tracking/area
func (h *TrackingHandler) GetVehiclesInArea(c *gin.Context) {
	var query models.AreaQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var center *models.GeoPoint
	if query.Latitude != nil && query.Longitude != nil {
		center = &models.GeoPoint{Latitude: *query.Latitude, Longitude: *query.Longitude}
	}

	result, err := h.trackingService.GetVehiclesInArea(c.Request.Context(), center, query.RadiusKm)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// GenerateHeatmap handles GET /api/v1/tracking/heatmap
func (h *TrackingHandler) GenerateHeatmap(c *gin.Context) {
	var query models.HeatmapQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.trackingService.GenerateHeatmap(c.Request.Context(), query.ToSampleFilter(), query.CellSizeKm)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// GetVehicleTracks handles GET /api/v1/tracking/tracks
func (h *TrackingHandler) GetVehicleTracks(c *gin.Context) {
	var query models.TracksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.trackingService.GetVehicleTracks(c.Request.Context(), query.ToSampleFilter(), query.Simplify)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// DetectSpeedViolations handles GET /api/v1/tracking/violations/speed
func (h *TrackingHandler) DetectSpeedViolations(c *gin.Context) {
	var query models.SpeedViolationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.trackingService.DetectSpeedViolations(c.Request.Context(), query.ToSampleFilter(), query.SpeedThresholdKmh)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, report)
}

// DetectGeofenceViolations handles GET /api/v1/tracking/violations/geofence
func (h *TrackingHandler) DetectGeofenceViolations(c *gin.Context) {
	var query models.TrackingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	violations, err := h.trackingService.DetectGeofenceViolations(c.Request.Context(), query.ToSampleFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{
		"violations": violations,
		"count":      len(violations),
	})
}

// AnalyzeIdling handles GET /api/v1/tracking/idling
func (h *TrackingHandler) AnalyzeIdling(c *gin.Context) {
	var query models.IdleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.trackingService.AnalyzeIdling(c.Request.Context(), query.ToSampleFilter(), query.IdleThresholdMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, report)
}

// AnalyzeMovementPatterns handles GET /api/v1/tracking/patterns
func (h *TrackingHandler) AnalyzeMovementPatterns(c *gin.Context) {
	var query models.TrackingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	patterns, err := h.trackingService.AnalyzeMovementPatterns(c.Request.Context(), query.ToSampleFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, patterns)
}

// GetStatistics handles GET /api/v1/tracking/statistics
func (h *TrackingHandler) GetStatistics(c *gin.Context) {
	var query models.TrackingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	stats, err := h.trackingService.GetStatistics(c.Request.Context(), query.ToSampleFilter())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, stats)
}

// OptimizeRoute handles POST /api/v1/tracking/routes/optimize
func (h *TrackingHandler) OptimizeRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	route, err := h.trackingService.OptimizeRoute(c.Request.Context(), req.StartLocation, req.Destinations, req.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, route)
}
