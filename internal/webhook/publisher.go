package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/savrasov/soar_incident_api/internal/models"
)

// Типы публикуемых событий
const (
	EventIncidentCreated       = "incident.created"
	EventIncidentStatusChanged = "incident.status_changed"
)

// Event - структура для данных вебхука
type Event struct {
	Event     string           `json:"event"`
	Incident  *models.Incident `json:"incident"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewEvent создает событие вебхука с текущим временем
func NewEvent(eventType string, incident *models.Incident) Event {
	return Event{
		Event:     eventType,
		Incident:  incident,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher - интерфейс для публикации вебхуков
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Queue - реализация Publisher на буферизированном канале внутри процесса
type Queue struct {
	events chan Event
}

// NewQueue создает очередь событий заданного размера
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		events: make(chan Event, size),
	}
}

// Publish кладет событие в очередь. Не блокирует: при переполненной
// очереди событие отбрасывается с ошибкой.
func (q *Queue) Publish(ctx context.Context, event Event) error {
	select {
	case q.events <- event:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to publish webhook event: %w", ctx.Err())
	default:
		return fmt.Errorf("failed to publish webhook event: queue is full")
	}
}

// Events возвращает канал для потребления событий воркером
func (q *Queue) Events() <-chan Event {
	return q.events
}
