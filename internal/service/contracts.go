package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/authz"
	"github.com/shenikar/municipal_incidents/internal/models"
)

//go:generate mockgen -source=contracts.go -destination=mocks/mock_contracts.go -package=mocks

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	// FindByTitle ищет без учета регистра; nil, nil если не найден
	FindByTitle(ctx context.Context, title string) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, int, error)
	IsVisible(ctx context.Context, id uuid.UUID, scope models.Scope) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListEvidence(ctx context.Context, incidentID uuid.UUID) ([]*models.Evidence, error)
	// WithinTx выполняет fn в одной транзакции; ошибка fn откатывает все изменения
	WithinTx(ctx context.Context, fn func(tx IncidentTx) error) error

	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// IncidentTx - операции внутри транзакции
type IncidentTx interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, incident *models.Incident) error
	CountEvidence(ctx context.Context, incidentID uuid.UUID) (int, error)
	AddEvidence(ctx context.Context, evidence *models.Evidence) error
	LinkTerritorial(ctx context.Context, incidentID, profileID uuid.UUID) error
}

// DirectoryRepository - справочники: отделы, бригады, типы, пользователи
type DirectoryRepository interface {
	GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error)
	GetCrew(ctx context.Context, id uuid.UUID) (*models.Crew, error)
	ListCrewsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*models.Crew, error)
	ListCrewsForProfile(ctx context.Context, profileID uuid.UUID) ([]*models.Crew, error)
	GetIncidentType(ctx context.Context, id uuid.UUID) (*models.IncidentType, error)
	ListIncidentTypes(ctx context.Context) ([]*models.IncidentType, error)
	GetActor(ctx context.Context, userID uuid.UUID) (*models.Actor, error)
}

// Notifier доставляет уведомление о смене этапа
type Notifier interface {
	Notify(ctx context.Context, event models.StateChangeEvent) error
}

// EvidenceStorage сохраняет файлы доказательств
type EvidenceStorage interface {
	Store(ctx context.Context, data []byte, suggestedName string) (string, error)
	Remove(ctx context.Context, url string) error
	// Locate возвращает путь к локальному файлу; false для внешних ссылок
	Locate(url string) (string, bool)
}

// EventPublisher публикует событие смены этапа во внешнюю ленту
type EventPublisher interface {
	Publish(ctx context.Context, event models.StateChangeEvent) error
}

// ActionPolicy проверяет права на действия с инцидентами
type ActionPolicy interface {
	Can(roles models.RoleSet, action authz.Action) (bool, error)
}
