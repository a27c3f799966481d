package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/savrasov/soar_incident_api/internal/config"
	"github.com/savrasov/soar_incident_api/internal/service"
	"github.com/sirupsen/logrus"
)

// Версия API, которую отдают корневой эндпоинт и health-check
const apiVersion = "2.0"

type Handler struct {
	incidentService service.IncidentService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary API metadata
// @Description Welcome endpoint with static API information.
// @Tags Root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "SOAR Incident Mock API Simulator",
		"version":     apiVersion,
		"description": "Security automation demo API for incident management",
		"docs":        "/swagger/index.html",
		"endpoints": gin.H{
			"list_incidents":  "GET /incidents",
			"get_incident":    "GET /incidents/{id}",
			"create_incident": "POST /incidents",
			"update_incident": "PATCH /incidents/{id}",
			"delete_incident": "DELETE /incidents/{id}",
		},
	})
}

// @Summary Get application health status
// @Description Health status of the process and current record count.
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	log := h.logger.WithField("method", "healthCheck")

	total, err := h.incidentService.CountIncidents(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to count incidents in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:         "healthy",
		TotalIncidents: total,
		APIVersion:     apiVersion,
	})
}

// @Summary Get a list of incidents
// @Description Get a paginated list of incidents with optional status/severity filters. Optional bearer token.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(open, under investigation, closed)
// @Param severity query string false "Filter by severity" Enums(low, medium, high, critical)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Number of items per page (max 100)" default(10)
// @Success 200 {object} PaginatedIncidentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents").WithField("request_id", c.GetString("request_id"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	filter := service.ListFilter{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
	}

	result, err := h.incidentService.ListIncidents(c.Request.Context(), filter, page, perPage)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, PaginatedIncidentsResponse{
		Incidents:  ModelsToIncidentResponses(result.Incidents),
		Total:      result.Total,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
	})
}

// @Summary Get incident by ID
// @Description Get a single incident by its numeric ID. Optional bearer token.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			log.Warn("Incident not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to get incident from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Create a new incident
// @Description Create a new security incident. Status defaults to "open". Optional bearer token.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident").WithField("request_id", c.GetString("request_id"))

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) || errors.Is(err, service.ErrInvalidSeverity) {
			log.WithError(err).Warn("Service rejected incident fields")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Update incident status
// @Description Update the status of an existing incident. Only the status field is mutable. Optional bearer token.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incident ID"
// @Param status body UpdateIncidentStatusRequest true "Status update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [patch]
func (h *Handler) updateIncidentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "updateIncidentStatus").WithField("id", id)

	var input UpdateIncidentStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidentService.UpdateIncidentStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncidentNotFound):
			log.Warn("Incident not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		case errors.Is(err, service.ErrInvalidStatus):
			log.WithError(err).Warn("Service rejected status value")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Failed to update incident in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Delete an incident
// @Description Remove an incident from the system and return the deleted record. Optional bearer token.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	incident, err := h.incidentService.DeleteIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrIncidentNotFound) {
			log.Warn("Incident not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to delete incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}
