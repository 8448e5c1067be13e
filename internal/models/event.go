package models

import (
	"time"

	"github.com/google/uuid"
)

// StateChangeEvent - снимок инцидента в момент смены этапа
type StateChangeEvent struct {
	IncidentID       uuid.UUID `json:"incident_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	PreviousState    State     `json:"previous_state"`
	NewState         State     `json:"new_state"`
	ActorName        string    `json:"actor_name"`
	ActorEmail       string    `json:"actor_email"`
	DepartmentName   string    `json:"department_name,omitempty"`
	ResponsibleName  string    `json:"responsible_name,omitempty"`
	ResponsibleEmail string    `json:"responsible_email,omitempty"`
	RejectionReason  string    `json:"rejection_reason,omitempty"`
	ChangedAt        time.Time `json:"changed_at"`
}
