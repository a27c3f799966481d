package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/savrasov/soar_incident_api/internal/models"
	"github.com/savrasov/soar_incident_api/internal/service"
)

// IncidentRepository - потокобезопасное in-memory хранилище инцидентов.
// Таблица живет только в памяти процесса и при каждом старте заполняется
// демонстрационным набором записей.
type IncidentRepository struct {
	mu        sync.Mutex
	incidents []*models.Incident
	nextID    int
}

// seedIncidents возвращает стартовый набор записей
func seedIncidents() []*models.Incident {
	return []*models.Incident{
		{ID: 1, Title: "Phishing Email Campaign Detected", Status: models.StatusOpen, Severity: models.SeverityHigh},
		{ID: 2, Title: "Malware Detected on Endpoint", Status: models.StatusClosed, Severity: models.SeverityMedium},
		{ID: 3, Title: "Suspicious Login from Foreign IP", Status: models.StatusUnderInvestigation, Severity: models.SeverityLow},
	}
}

func NewIncidentRepository() service.IncidentRepository {
	seed := seedIncidents()
	nextID := 0
	for _, incident := range seed {
		if incident.ID > nextID {
			nextID = incident.ID
		}
	}
	return &IncidentRepository{
		incidents: seed,
		nextID:    nextID,
	}
}

// List возвращает срез отфильтрованного списка для запрошенной страницы
// и общее число записей после фильтрации. Страница за пределами диапазона
// дает пустой срез, а не ошибку.
func (r *IncidentRepository) List(_ context.Context, filter service.ListFilter, page, perPage int) ([]*models.Incident, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]*models.Incident, 0, len(r.incidents))
	for _, incident := range r.incidents {
		if filter.Status != "" && strings.ToLower(incident.Status) != filter.Status {
			continue
		}
		if filter.Severity != "" && strings.ToLower(incident.Severity) != filter.Severity {
			continue
		}
		filtered = append(filtered, incident)
	}

	total := len(filtered)

	start := (page - 1) * perPage
	if start >= total {
		return []*models.Incident{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	items := make([]*models.Incident, 0, end-start)
	for _, incident := range filtered[start:end] {
		items = append(items, copyIncident(incident))
	}
	return items, total, nil
}

// GetByID возвращает инцидент по его ID
func (r *IncidentRepository) GetByID(_ context.Context, id int) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incident := range r.incidents {
		if incident.ID == id {
			return copyIncident(incident), nil
		}
	}
	return nil, service.ErrIncidentNotFound
}

// Create присваивает следующий ID и добавляет запись в конец таблицы
func (r *IncidentRepository) Create(_ context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ID монотонный и не переиспользуется в течение жизни процесса
	r.nextID++
	incident.ID = r.nextID
	r.incidents = append(r.incidents, copyIncident(incident))
	return nil
}

// UpdateStatus меняет статус записи на месте; остальные поля не трогает
func (r *IncidentRepository) UpdateStatus(_ context.Context, id int, status string) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incident := range r.incidents {
		if incident.ID == id {
			incident.Status = status
			return copyIncident(incident), nil
		}
	}
	return nil, service.ErrIncidentNotFound
}

// Delete удаляет запись и возвращает удаленный инцидент
func (r *IncidentRepository) Delete(_ context.Context, id int) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, incident := range r.incidents {
		if incident.ID == id {
			r.incidents = append(r.incidents[:i], r.incidents[i+1:]...)
			return incident, nil
		}
	}
	return nil, service.ErrIncidentNotFound
}

// Count возвращает общее число записей в таблице
func (r *IncidentRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.incidents), nil
}

// copyIncident отдает копию, чтобы вызывающий код не мутировал хранилище
func copyIncident(incident *models.Incident) *models.Incident {
	c := *incident
	return &c
}
