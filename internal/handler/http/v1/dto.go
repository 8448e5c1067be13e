package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	State          string     `json:"state,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude      *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ReporterName   string     `json:"reporter_name,omitempty" validate:"max=255"`
	ReporterEmail  string     `json:"reporter_email" validate:"required,email"`
	ReporterPhone  string     `json:"reporter_phone,omitempty" validate:"max=50"`
	DivisionID     *uuid.UUID `json:"division_id,omitempty"`
	DepartmentID   *uuid.UUID `json:"department_id,omitempty"`
	CrewID         *uuid.UUID `json:"crew_id,omitempty"`
	IncidentTypeID *uuid.UUID `json:"incident_type_id,omitempty"`
}

// UpdateIncidentRequest DTO для редактирования инцидента; отсутствующие поля не меняются
// @Description DTO для редактирования инцидента
type UpdateIncidentRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string    `json:"description,omitempty"`
	Priority        *string    `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	State           *string    `json:"state,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	Comment         string     `json:"comment,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ReporterName    *string    `json:"reporter_name,omitempty" validate:"omitempty,max=255"`
	ReporterEmail   *string    `json:"reporter_email,omitempty" validate:"omitempty,email"`
	ReporterPhone   *string    `json:"reporter_phone,omitempty" validate:"omitempty,max=50"`
	DivisionID      *uuid.UUID `json:"division_id,omitempty"`
	DepartmentID    *uuid.UUID `json:"department_id,omitempty"`
	CrewID          *uuid.UUID `json:"crew_id,omitempty"`
	IncidentTypeID  *uuid.UUID `json:"incident_type_id,omitempty"`
}

// TransitionRequest DTO для смены этапа
// @Description DTO для смены этапа
type TransitionRequest struct {
	State           string `json:"state" validate:"required"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	Comment         string `json:"comment,omitempty"`
}

// FinalizeRequest DTO для завершения работ
// @Description DTO для завершения работ
type FinalizeRequest struct {
	Comment string `json:"comment,omitempty"`
}

// ResolveRequest DTO для завершения работ бригадой
// @Description DTO для завершения работ бригадой
type ResolveRequest struct {
	EvidenceURLs []string `json:"evidence_urls" validate:"dive,omitempty,http_url,max=2048"`
	Comment      string   `json:"comment,omitempty"`
}

// RejectRequest DTO для отклонения бригадой
// @Description DTO для отклонения бригадой
type RejectRequest struct {
	Reason string `json:"reason"`
}

// EvidenceResponse DTO доказательства
// @Description DTO доказательства
type EvidenceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"url"`
	// DownloadURL - адрес выдачи файла с проверкой доступа
	DownloadURL string    `json:"download_url"`
	Category    string    `json:"category"`
	Format      string    `json:"format"`
	CreatedAt   time.Time `json:"created_at"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                uuid.UUID          `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description,omitempty"`
	State             string             `json:"state"`
	Priority          string             `json:"priority"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	ClosedAt          *time.Time         `json:"closed_at,omitempty"`
	Latitude          *float64           `json:"latitude,omitempty"`
	Longitude         *float64           `json:"longitude,omitempty"`
	ReporterName      string             `json:"reporter_name,omitempty"`
	ReporterEmail     string             `json:"reporter_email"`
	ReporterPhone     string             `json:"reporter_phone,omitempty"`
	DivisionID        *uuid.UUID         `json:"division_id,omitempty"`
	DepartmentID      *uuid.UUID         `json:"department_id,omitempty"`
	CrewID            *uuid.UUID         `json:"crew_id,omitempty"`
	IncidentTypeID    *uuid.UUID         `json:"incident_type_id,omitempty"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`
	ResolutionComment string             `json:"resolution_comment,omitempty"`
	Evidence          []EvidenceResponse `json:"evidence,omitempty"`
}

// ListIncidentsResponse DTO страницы инцидентов
// @Description DTO страницы инцидентов
type ListIncidentsResponse struct {
	Items    []*IncidentResponse `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// CrewResponse DTO бригады
// @Description DTO бригады
type CrewResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

// IncidentTypeResponse DTO типа обращения
// @Description DTO типа обращения
type IncidentTypeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
