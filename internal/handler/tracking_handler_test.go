package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/tracking-backend-go/internal/models"
	"github.com/fleetops/tracking-backend-go/internal/service"
	"github.com/fleetops/tracking-backend-go/pkg/response"
)

type stubReader struct {
	samples  []models.LocationSample
	vehicles []models.VehicleRef
}

func (s *stubReader) FetchSamples(_ context.Context, _ models.SampleFilter) ([]models.LocationSample, error) {
	return s.samples, nil
}

func (s *stubReader) FetchVehicleRefs(_ context.Context, vehicleIDs []string) ([]models.VehicleRef, error) {
	if len(vehicleIDs) == 0 {
		return s.vehicles, nil
	}
	var out []models.VehicleRef
	for _, v := range s.vehicles {
		for _, id := range vehicleIDs {
			if v.VehicleID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func setupRouter(reader *stubReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTrackingHandler(service.NewTrackingService(reader, nil))
	h.Register(r.Group("/tracking"))
	return r
}

func doRequest(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetVehicleDetailsNotFound(t *testing.T) {
	r := setupRouter(&stubReader{})

	w := doRequest(r, "GET", "/tracking/vehicles/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllVehiclePositionsOK(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	reader := &stubReader{
		vehicles: []models.VehicleRef{{VehicleID: "v1"}},
		samples: []models.LocationSample{
			{ID: 1, VehicleID: "v1", Latitude: 52.5, Longitude: 13.4, CapturedAt: now},
		},
	}
	r := setupRouter(reader)

	w := doRequest(r, "GET", "/tracking/positions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
}

func TestGetVehiclesInAreaMissingCenter(t *testing.T) {
	r := setupRouter(&stubReader{})

	w := doRequest(r, "GET", "/tracking/area?radiusKm=5", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.CodeNoCenter, resp.ErrorCode)
}

func TestOptimizeRouteNoDestinations(t *testing.T) {
	r := setupRouter(&stubReader{})

	body := `{"startLocation": {"latitude": 52.5, "longitude": 13.4}, "destinations": []}`
	w := doRequest(r, "POST", "/tracking/routes/optimize", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.CodeNoDestinations, resp.ErrorCode)
}

func TestOptimizeRouteOK(t *testing.T) {
	r := setupRouter(&stubReader{})

	body := `{
		"startLocation": {"latitude": 52.5, "longitude": 13.4},
		"destinations": [
			{"latitude": 52.6, "longitude": 13.4},
			{"latitude": 52.51, "longitude": 13.4}
		]
	}`
	w := doRequest(r, "POST", "/tracking/routes/optimize", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.OptimizedRoute `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Legs, 2)
	assert.Equal(t, 1, resp.Data.Legs[0].DestinationIndex)
}

func TestGenerateHeatmapEmptyData(t *testing.T) {
	r := setupRouter(&stubReader{})

	w := doRequest(r, "GET", "/tracking/heatmap?cellSizeKm=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.HeatmapResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Points)
	assert.Equal(t, 2.0, resp.Data.CellSizeKm)
}
