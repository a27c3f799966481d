package models

// Статусы жизненного цикла инцидента
const (
	StatusOpen               = "open"
	StatusUnderInvestigation = "under investigation"
	StatusClosed             = "closed"
)

// Уровни критичности инцидента
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Incident представляет запись об инциденте безопасности
type Incident struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Severity string `json:"severity"`
}

// IsValidStatus проверяет, что статус входит в допустимый набор
func IsValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusUnderInvestigation, StatusClosed:
		return true
	}
	return false
}

// IsValidSeverity проверяет, что уровень критичности входит в допустимый набор
func IsValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
