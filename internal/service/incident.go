package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/savrasov/soar_incident_api/internal/models"
	"github.com/savrasov/soar_incident_api/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Ошибки уровня сервиса, по которым хендлер выбирает HTTP-статус
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidStatus    = errors.New("invalid incident status")
	ErrInvalidSeverity  = errors.New("invalid incident severity")
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// ListFilter - фильтры равенства для списка инцидентов
type ListFilter struct {
	Status   string
	Severity string
}

// IncidentPage - страница списка инцидентов с метаданными пагинации
type IncidentPage struct {
	Incidents  []*models.Incident
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	List(ctx context.Context, filter ListFilter, page, perPage int) ([]*models.Incident, int, error)
	GetByID(ctx context.Context, id int) (*models.Incident, error)
	Create(ctx context.Context, incident *models.Incident) error
	UpdateStatus(ctx context.Context, id int, status string) (*models.Incident, error)
	Delete(ctx context.Context, id int) (*models.Incident, error)
	Count(ctx context.Context) (int, error)
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	ListIncidents(ctx context.Context, filter ListFilter, page, perPage int) (*IncidentPage, error)
	GetIncident(ctx context.Context, id int) (*models.Incident, error)
	CreateIncident(ctx context.Context, incident *models.Incident) error
	UpdateIncidentStatus(ctx context.Context, id int, status string) (*models.Incident, error)
	DeleteIncident(ctx context.Context, id int) (*models.Incident, error)
	CountIncidents(ctx context.Context) (int, error)
}

type incidentService struct {
	repo      IncidentRepository
	logger    *logrus.Logger
	publisher webhook.Publisher
}

func NewIncidentService(repo IncidentRepository, logger *logrus.Logger, publisher webhook.Publisher) IncidentService {
	return &incidentService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// ListIncidents возвращает страницу списка инцидентов с учетом фильтров
func (s *incidentService) ListIncidents(ctx context.Context, filter ListFilter, page, perPage int) (*IncidentPage, error) {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	// Фильтры сравниваются без учета регистра
	filter.Status = strings.ToLower(filter.Status)
	filter.Severity = strings.ToLower(filter.Severity)

	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "ListIncidents",
		"page":     page,
		"per_page": perPage,
	})
	log.Info("Listing incidents")

	incidents, total, err := s.repo.List(ctx, filter, page, perPage)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	totalPages := (total + perPage - 1) / perPage

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return &IncidentPage{
		Incidents:  incidents,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id int) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}

	log.Info("Incident fetched successfully")
	return incident, nil
}

// CreateIncident создает инцидент
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to create a new incident")

	if incident.Status == "" {
		incident.Status = models.StatusOpen
	}
	if !models.IsValidStatus(incident.Status) {
		log.WithField("status", incident.Status).Warn("Rejected incident with unknown status")
		return fmt.Errorf("service: status %q: %w", incident.Status, ErrInvalidStatus)
	}
	if !models.IsValidSeverity(incident.Severity) {
		log.WithField("severity", incident.Severity).Warn("Rejected incident with unknown severity")
		return fmt.Errorf("service: severity %q: %w", incident.Severity, ErrInvalidSeverity)
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	s.publishEvent(ctx, webhook.EventIncidentCreated, incident)

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// UpdateIncidentStatus обновляет статус существующего инцидента
func (s *incidentService) UpdateIncidentStatus(ctx context.Context, id int, status string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncidentStatus",
		"incident_id": id,
		"status":      status,
	})
	log.Info("Attempting to update incident status")

	if !models.IsValidStatus(status) {
		log.Warn("Rejected unknown status")
		return nil, fmt.Errorf("service: status %q: %w", status, ErrInvalidStatus)
	}

	incident, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		log.WithError(err).Warn("Failed to update incident status in repository")
		return nil, fmt.Errorf("service: could not update incident %d: %w", id, err)
	}

	s.publishEvent(ctx, webhook.EventIncidentStatusChanged, incident)

	log.Info("Incident status updated successfully")
	return incident, nil
}

// DeleteIncident удаляет инцидент и возвращает удаленную запись
func (s *incidentService) DeleteIncident(ctx context.Context, id int) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	log.Info("Attempting to delete incident")

	incident, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to delete incident in repository")
		return nil, fmt.Errorf("service: could not delete incident %d: %w", id, err)
	}

	log.Info("Incident deleted successfully")
	return incident, nil
}

// CountIncidents возвращает общее число инцидентов (для health-check)
func (s *incidentService) CountIncidents(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: could not count incidents: %w", err)
	}
	return count, nil
}

// publishEvent публикует событие вебхука; ошибка публикации не влияет на запрос
func (s *incidentService) publishEvent(ctx context.Context, eventType string, incident *models.Incident) {
	if s.publisher == nil {
		return
	}
	event := webhook.NewEvent(eventType, incident)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish webhook event")
	}
}
