package v1

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Severity string `json:"severity" validate:"required,oneof=low medium high critical"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=open 'under investigation' closed"`
}

// UpdateIncidentStatusRequest DTO для обновления статуса инцидента
// @Description DTO для обновления статуса инцидента
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open 'under investigation' closed"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Severity string `json:"severity"`
}

// PaginatedIncidentsResponse DTO для постраничного списка инцидентов
// @Description DTO для постраничного списка инцидентов
type PaginatedIncidentsResponse struct {
	Incidents  []*IncidentResponse `json:"incidents"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalPages int                 `json:"total_pages"`
}

// HealthResponse DTO для ответа health-check
// @Description DTO для ответа health-check
type HealthResponse struct {
	Status         string `json:"status"`
	TotalIncidents int    `json:"total_incidents"`
	APIVersion     string `json:"api_version"`
}
