package models

import (
	"time"

	"github.com/google/uuid"
)

// Division - дирекция, верхний уровень администрации
type Division struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// Department - отдел внутри дирекции
type Department struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Active               bool       `json:"active"`
	DivisionID           *uuid.UUID `json:"division_id,omitempty"`
	ResponsibleProfileID *uuid.UUID `json:"responsible_profile_id,omitempty"`
	ResponsibleName      string     `json:"responsible_name,omitempty"`
	ResponsibleEmail     string     `json:"responsible_email,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// Crew - бригада отдела
type Crew struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	MemberProfileID     *uuid.UUID `json:"member_profile_id,omitempty"`
	SupervisorProfileID *uuid.UUID `json:"supervisor_profile_id,omitempty"`
	DepartmentID        *uuid.UUID `json:"department_id,omitempty"`
}

// HasProfile сообщает, является ли профиль участником или руководителем бригады
func (c *Crew) HasProfile(profileID uuid.UUID) bool {
	if c == nil {
		return false
	}
	return (c.MemberProfileID != nil && *c.MemberProfileID == profileID) ||
		(c.SupervisorProfileID != nil && *c.SupervisorProfileID == profileID)
}

// IncidentType - справочник типов обращений
type IncidentType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
