package models

import (
	"time"

	"github.com/google/uuid"
)

// State - этап жизненного цикла инцидента
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateDone       State = "done"
	StateValidated  State = "validated"
	StateRejected   State = "rejected"
)

// AllStates перечисляет этапы в порядке жизненного цикла
var AllStates = []State{StatePending, StateInProgress, StateDone, StateValidated, StateRejected}

// Valid сообщает, является ли значение известным этапом
func (s State) Valid() bool {
	for _, st := range AllStates {
		if s == st {
			return true
		}
	}
	return false
}

// Priority - приоритет инцидента
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Incident - обращение жителя, которое проходит жизненный цикл
type Incident struct {
	ID                uuid.UUID   `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	State             State       `json:"state"`
	Priority          Priority    `json:"priority"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	ClosedAt          *time.Time  `json:"closed_at,omitempty"`
	Latitude          *float64    `json:"latitude,omitempty"`
	Longitude         *float64    `json:"longitude,omitempty"`
	ReporterName      string      `json:"reporter_name"`
	ReporterEmail     string      `json:"reporter_email"`
	ReporterPhone     string      `json:"reporter_phone"`
	DivisionID        *uuid.UUID  `json:"division_id,omitempty"`
	DepartmentID      *uuid.UUID  `json:"department_id,omitempty"`
	CrewID            *uuid.UUID  `json:"crew_id,omitempty"`
	IncidentTypeID    *uuid.UUID  `json:"incident_type_id,omitempty"`
	RejectionReason   string      `json:"rejection_reason,omitempty"`
	ResolutionComment string      `json:"resolution_comment,omitempty"`
	Evidence          []*Evidence `json:"evidence,omitempty"`
}

// IncidentUpdate - изменения из формы редактирования; nil означает "не менять"
type IncidentUpdate struct {
	Title          *string
	Description    *string
	Priority       *Priority
	Latitude       *float64
	Longitude      *float64
	ReporterName   *string
	ReporterEmail  *string
	ReporterPhone  *string
	DivisionID     *uuid.UUID
	DepartmentID   *uuid.UUID
	CrewID         *uuid.UUID
	IncidentTypeID *uuid.UUID
	State          *State
	Extra          TransitionExtra
}

// TransitionExtra - дополнительные данные перехода
type TransitionExtra struct {
	RejectionReason string
	Comment         string
}

// IncidentFilter - параметры выборки списка
type IncidentFilter struct {
	Query        string
	State        State
	DepartmentID *uuid.UUID
	Scope        Scope
	Page         int
	PageSize     int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize приводит страницу и ее размер к допустимым значениям
func (f *IncidentFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > MaxPageSize {
		f.PageSize = DefaultPageSize
	}
}

// Scope - ограничение видимости по роли пользователя
type Scope struct {
	All                  bool
	None                 bool
	CrewProfileID        *uuid.UUID
	TerritorialProfileID *uuid.UUID
	ReporterEmail        string
}
