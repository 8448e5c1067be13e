package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/sirupsen/logrus"
)

// DirectoryService - пользователи и справочники для HTTP-слоя
type DirectoryService interface {
	LoadActor(ctx context.Context, userID uuid.UUID) (*models.Actor, error)
	CrewsForActor(ctx context.Context, actor *models.Actor) ([]*models.Crew, error)
	ListCrewsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*models.Crew, error)
	ListIncidentTypes(ctx context.Context) ([]*models.IncidentType, error)
}

type directoryService struct {
	repo   DirectoryRepository
	logger *logrus.Logger
}

func NewDirectoryService(repo DirectoryRepository, logger *logrus.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

// LoadActor загружает пользователя из токена
func (s *directoryService) LoadActor(ctx context.Context, userID uuid.UUID) (*models.Actor, error) {
	actor, err := s.repo.GetActor(ctx, userID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "directory",
			"method":  "LoadActor",
			"user_id": userID,
		}).WithError(err).Warn("Failed to load actor")
		return nil, fmt.Errorf("service: could not load actor: %w", err)
	}
	return actor, nil
}

// CrewsForActor - бригады, где пользователь участник или руководитель
func (s *directoryService) CrewsForActor(ctx context.Context, actor *models.Actor) ([]*models.Crew, error) {
	return crewsForActor(ctx, s.repo, actor)
}

// crewsForActor общий для справочника и API бригад; без бригады - ErrNotCrewMember
func crewsForActor(ctx context.Context, repo DirectoryRepository, actor *models.Actor) ([]*models.Crew, error) {
	if actor == nil || actor.ProfileID == nil {
		return nil, apperrors.ErrNotCrewMember
	}
	crews, err := repo.ListCrewsForProfile(ctx, *actor.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load crews: %w", err)
	}
	if len(crews) == 0 {
		return nil, apperrors.ErrNotCrewMember
	}
	return crews, nil
}

// ListCrewsByDepartment - бригады отдела; отдел должен существовать
func (s *directoryService) ListCrewsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*models.Crew, error) {
	if _, err := s.repo.GetDepartment(ctx, departmentID); err != nil {
		return nil, fmt.Errorf("service: department lookup: %w", err)
	}
	crews, err := s.repo.ListCrewsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list crews: %w", err)
	}
	return crews, nil
}

func (s *directoryService) ListIncidentTypes(ctx context.Context) ([]*models.IncidentType, error) {
	types, err := s.repo.ListIncidentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list incident types: %w", err)
	}
	return types, nil
}
