package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/savrasov/soar_incident_api/internal/config"
	"github.com/savrasov/soar_incident_api/internal/models"
	"github.com/savrasov/soar_incident_api/internal/repository"
	"github.com/savrasov/soar_incident_api/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSeededRouter собирает роутер поверх реального сервиса и хранилища
// со стартовым набором данных - для сквозных сценариев без моков.
func newSeededRouter(t *testing.T) *gin.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIToken: config.DefaultAPIToken,
	}

	repo := repository.NewIncidentRepository()
	incidentService := service.NewIncidentService(repo, logger, nil)
	handler := NewHandler(incidentService, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/")
	handler.RegisterRoutes(api)
	return router
}

func TestFlow_CreateThenGetReturnsIdenticalFields(t *testing.T) {
	router := newSeededRouter(t)
	reqBody := CreateIncidentRequest{
		Title:    "Lateral Movement Detected",
		Severity: models.SeverityHigh,
	}

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))
	require.Equal(t, http.StatusCreated, w.Code)

	var created IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, models.StatusOpen, created.Status) // Статус по умолчанию

	w = makeRequest(router, "GET", fmt.Sprintf("/incidents/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)
}

func TestFlow_AutoIncrementingIDs(t *testing.T) {
	router := newSeededRouter(t)

	var ids []int
	for _, title := range []string{"Incident 1", "Incident 2"} {
		bodyBytes, _ := json.Marshal(CreateIncidentRequest{Title: title, Severity: models.SeverityLow})
		w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp IncidentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids = append(ids, resp.ID)
	}

	assert.Equal(t, ids[0]+1, ids[1])
}

func TestFlow_DeleteThenGetReturns404(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "DELETE", "/incidents/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, 1, deleted.ID)

	w = makeRequest(router, "GET", "/incidents/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlow_FilterBySeverityReturnsOnlyMatching(t *testing.T) {
	router := newSeededRouter(t)

	// Добавляем еще один high-инцидент к стартовому набору
	bodyBytes, _ := json.Marshal(CreateIncidentRequest{Title: "Another High", Severity: models.SeverityHigh})
	w := makeRequest(router, "POST", "/incidents", bytes.NewBuffer(bodyBytes))
	require.Equal(t, http.StatusCreated, w.Code)

	w = makeRequest(router, "GET", "/incidents?severity=high", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	for _, incident := range resp.Incidents {
		assert.Equal(t, models.SeverityHigh, incident.Severity)
	}
}

func TestFlow_CaseInsensitiveFilters(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "GET", "/incidents?status=OPEN", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	w = makeRequest(router, "GET", "/incidents?severity=HIGH", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestFlow_PaginationOverSeedData(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "GET", "/incidents?page=1&per_page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Incidents, 2)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)

	w = makeRequest(router, "GET", "/incidents?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Incidents, 1)
	assert.Equal(t, 2, resp.Page)
}

func TestFlow_PerPageCappedAt100(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "GET", "/incidents?per_page=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedIncidentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.PerPage)
}

func TestFlow_PatchChangesOnlyStatus(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "GET", "/incidents/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &before))

	bodyBytes, _ := json.Marshal(UpdateIncidentStatusRequest{Status: models.StatusClosed})
	w = makeRequest(router, "PATCH", "/incidents/1", bytes.NewBuffer(bodyBytes))
	require.Equal(t, http.StatusOK, w.Code)

	var after IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(t, models.StatusClosed, after.Status)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Severity, after.Severity)
}

func TestFlow_HealthReflectsRecordCount(t *testing.T) {
	router := newSeededRouter(t)

	w := makeRequest(router, "DELETE", "/incidents/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalIncidents)
}

func TestFlow_WrongTokenRejectedOnEveryEndpoint(t *testing.T) {
	router := newSeededRouter(t)
	headers := bearerHeader("invalid-token")

	requests := []struct {
		method string
		url    string
	}{
		{"GET", "/"},
		{"GET", "/health"},
		{"GET", "/incidents"},
		{"GET", "/incidents/1"},
		{"POST", "/incidents"},
		{"PATCH", "/incidents/1"},
		{"DELETE", "/incidents/1"},
	}

	for _, req := range requests {
		w := makeRequest(router, req.method, req.url, nil, headers)
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.url)
	}
}
