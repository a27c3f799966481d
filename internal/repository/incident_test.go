package repository

import (
	"context"
	"testing"

	"github.com/savrasov/soar_incident_api/internal/models"
	"github.com/savrasov/soar_incident_api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncidentRepository_Seed(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	incident, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Phishing Email Campaign Detected", incident.Title)
	assert.Equal(t, models.StatusOpen, incident.Status)
	assert.Equal(t, models.SeverityHigh, incident.Severity)
}

func TestCreate_AssignsMonotonicIDs(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	first := &models.Incident{Title: "Incident 1", Status: models.StatusOpen, Severity: models.SeverityLow}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 4, first.ID) // Стартовый набор содержит ID 1-3

	second := &models.Incident{Title: "Incident 2", Status: models.StatusOpen, Severity: models.SeverityMedium}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, first.ID+1, second.ID)
}

func TestCreate_IDNotReusedAfterDelete(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	// Удаляем запись с максимальным ID
	_, err := repo.Delete(ctx, 3)
	require.NoError(t, err)

	incident := &models.Incident{Title: "After delete", Status: models.StatusOpen, Severity: models.SeverityLow}
	require.NoError(t, repo.Create(ctx, incident))
	assert.Equal(t, 4, incident.ID) // ID 3 не переиспользуется
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewIncidentRepository()

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestList_FilterBySeverity(t *testing.T) {
	repo := NewIncidentRepository()

	items, total, err := repo.List(context.Background(), service.ListFilter{Severity: "high"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, models.SeverityHigh, items[0].Severity)
}

func TestList_FilterByStatus(t *testing.T) {
	repo := NewIncidentRepository()

	items, total, err := repo.List(context.Background(), service.ListFilter{Status: "closed"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
}

func TestList_CombinedFilters(t *testing.T) {
	repo := NewIncidentRepository()

	items, total, err := repo.List(context.Background(), service.ListFilter{Status: "open", Severity: "high"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestList_Pagination(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	firstPage, total, err := repo.List(ctx, service.ListFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, firstPage, 2)

	secondPage, total, err := repo.List(ctx, service.ListFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, secondPage, 1)
	assert.Equal(t, 3, secondPage[0].ID)
}

func TestList_PageOutOfRange(t *testing.T) {
	repo := NewIncidentRepository()

	// Страница за пределами диапазона - пустой срез, а не ошибка
	items, total, err := repo.List(context.Background(), service.ListFilter{}, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
}

func TestUpdateStatus_MutatesOnlyStatus(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	before, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, 1, models.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, updated.Status)
	assert.Equal(t, before.ID, updated.ID)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Severity, updated.Severity)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := NewIncidentRepository()

	_, err := repo.UpdateStatus(context.Background(), 999, models.StatusClosed)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestDelete_RemovesRecord(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted.ID)

	_, err = repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDelete_NotFound(t *testing.T) {
	repo := NewIncidentRepository()

	_, err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewIncidentRepository()
	ctx := context.Background()

	incident, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	// Мутация возвращенной записи не должна менять хранилище
	incident.Status = models.StatusClosed

	fresh, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, fresh.Status)
}
