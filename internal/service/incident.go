package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/authz"
	"github.com/shenikar/municipal_incidents/internal/config"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/lifecycle"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/storage"
	"github.com/sirupsen/logrus"
)

// crewListLimit - верхняя граница списка для бригады, он не постраничный
const crewListLimit = 500

// IncidentService определяет контракт бизнес-логики жизненного цикла инцидентов
type IncidentService interface {
	CreateIncident(ctx context.Context, actor *models.Actor, incident *models.Incident) error
	GetIncident(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, actor *models.Actor, filter models.IncidentFilter) ([]*models.Incident, int, error)
	UpdateIncident(ctx context.Context, actor *models.Actor, id uuid.UUID, update models.IncidentUpdate) (*models.Incident, error)
	RequestTransition(ctx context.Context, actor *models.Actor, id uuid.UUID, to models.State, extra models.TransitionExtra) (*models.Incident, error)
	AttachEvidence(ctx context.Context, actor *models.Actor, id uuid.UUID, files []models.EvidenceFile) ([]*models.Evidence, error)
	GetEvidence(ctx context.Context, actor *models.Actor, id, evidenceID uuid.UUID) (*models.Evidence, string, error)
	DeleteIncident(ctx context.Context, actor *models.Actor, id uuid.UUID) error

	ListCrewIncidents(ctx context.Context, actor *models.Actor, state models.State) ([]*models.Incident, error)
	StartWork(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Incident, error)
	ResolveWithEvidence(ctx context.Context, actor *models.Actor, id uuid.UUID, urls []string, comment string) (*models.Incident, error)
	RejectByCrew(ctx context.Context, actor *models.Actor, id uuid.UUID, reason string) (*models.Incident, error)
}

type incidentService struct {
	repo             IncidentRepository
	directory        DirectoryRepository
	policy           ActionPolicy
	notifier         Notifier
	storage          EvidenceStorage
	publisher        EventPublisher
	logger           *logrus.Logger
	maxEvidenceBytes int64
	now              func() time.Time
}

// NewIncidentService собирает сервис; publisher может быть nil, если внешняя лента не настроена
func NewIncidentService(
	repo IncidentRepository,
	directory DirectoryRepository,
	policy ActionPolicy,
	notifier Notifier,
	evidenceStorage EvidenceStorage,
	publisher EventPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:             repo,
		directory:        directory,
		policy:           policy,
		notifier:         notifier,
		storage:          evidenceStorage,
		publisher:        publisher,
		logger:           logger,
		maxEvidenceBytes: cfg.EvidenceMaxBytes,
		now:              time.Now,
	}
}

func actorID(actor *models.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.UserID.String()
}

// requireAction проверяет действие по политике; отказ - ErrForbidden
func (s *incidentService) requireAction(roles models.RoleSet, action authz.Action) error {
	ok, err := s.policy.Can(roles, action)
	if err != nil {
		return fmt.Errorf("service: policy check: %w", err)
	}
	if !ok {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateIncident создает инцидент в этапе pending
func (s *incidentService) CreateIncident(ctx context.Context, actor *models.Actor, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "incident",
		"method":   "CreateIncident",
		"actor_id": actorID(actor),
		"title":    incident.Title,
	})
	log.Info("Attempting to create a new incident")

	roles := authz.ResolveRoles(actor)
	if err := s.requireAction(roles, authz.ActionCreate); err != nil {
		log.WithError(err).Warn("Actor is not allowed to create incidents")
		return err
	}

	incident.Title = strings.TrimSpace(incident.Title)
	incident.ReporterEmail = strings.TrimSpace(incident.ReporterEmail)
	if incident.Title == "" {
		return apperrors.NewValidationError("title", "must not be empty")
	}
	if incident.ReporterEmail == "" {
		return apperrors.NewValidationError("reporter_email", "is required")
	}
	if incident.State != "" && incident.State != models.StatePending {
		return apperrors.NewValidationError("state", "a new incident must start in 'pending'")
	}
	incident.State = models.StatePending
	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}
	if !incident.Priority.Valid() {
		return apperrors.NewValidationError("priority", fmt.Sprintf("unknown priority '%s'", incident.Priority))
	}

	if err := s.ensureUniqueTitle(ctx, incident.Title, uuid.Nil); err != nil {
		return err
	}
	if err := s.validateReferences(ctx, incident, true); err != nil {
		log.WithError(err).Warn("Incident references are invalid")
		return err
	}

	err := s.repo.WithinTx(ctx, func(tx IncidentTx) error {
		if err := tx.Create(ctx, incident); err != nil {
			return err
		}
		if actor != nil && actor.ProfileID != nil {
			return tx.LinkTerritorial(ctx, incident.ID, *actor.ProfileID)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// ensureUniqueTitle - название уникально без учета регистра; self исключается из проверки
func (s *incidentService) ensureUniqueTitle(ctx context.Context, title string, self uuid.UUID) error {
	existing, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return fmt.Errorf("service: could not check title: %w", err)
	}
	if existing != nil && existing.ID != self {
		return apperrors.NewValidationError("title", "an incident with this title already exists")
	}
	return nil
}

// validateReferences проверяет отдел, дирекцию, бригаду и тип; дирекция берется из отдела
func (s *incidentService) validateReferences(ctx context.Context, incident *models.Incident, departmentChanged bool) error {
	if incident.DepartmentID != nil {
		dept, err := s.directory.GetDepartment(ctx, *incident.DepartmentID)
		if err != nil {
			return fmt.Errorf("service: department lookup: %w", err)
		}
		if departmentChanged && !dept.Active {
			return apperrors.NewValidationError("department_id", "department is not active")
		}
		if dept.DivisionID != nil {
			if incident.DivisionID != nil && *incident.DivisionID != *dept.DivisionID {
				return apperrors.NewValidationError("division_id", "department does not belong to the selected division")
			}
			divisionID := *dept.DivisionID
			incident.DivisionID = &divisionID
		}
	}

	if incident.CrewID != nil {
		crew, err := s.directory.GetCrew(ctx, *incident.CrewID)
		if err != nil {
			return fmt.Errorf("service: crew lookup: %w", err)
		}
		if incident.DepartmentID == nil || crew.DepartmentID == nil || *crew.DepartmentID != *incident.DepartmentID {
			return apperrors.NewValidationError("crew_id", "crew does not belong to the incident's department")
		}
	}

	if incident.IncidentTypeID != nil {
		if _, err := s.directory.GetIncidentType(ctx, *incident.IncidentTypeID); err != nil {
			return fmt.Errorf("service: incident type lookup: %w", err)
		}
	}
	return nil
}

// checkVisible применяет область видимости к одному инциденту
func (s *incidentService) checkVisible(ctx context.Context, actor *models.Actor, roles models.RoleSet, id uuid.UUID) error {
	scope := authz.VisibilityScope(actor, roles)
	if scope.All {
		return nil
	}
	if scope.None {
		return apperrors.ErrForbidden
	}
	visible, err := s.repo.IsVisible(ctx, id, scope)
	if err != nil {
		return fmt.Errorf("service: could not check visibility: %w", err)
	}
	if !visible {
		return apperrors.ErrForbidden
	}
	return nil
}

// GetIncident получает инцидент по ID вместе с доказательствами
func (s *incidentService) GetIncident(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
		"actor_id":    actorID(actor),
	})
	log.Debug("Fetching incident by ID")

	// вне области видимости ответ одинаков для существующих и несуществующих id
	if err := s.checkVisible(ctx, actor, authz.ResolveRoles(actor), id); err != nil {
		log.WithError(err).Warn("Incident is not visible to actor")
		return nil, err
	}

	incident, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
		incident = nil
	}

	if incident == nil {
		incident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			log.WithError(err).Warn("Failed to get incident in repository")
			return nil, fmt.Errorf("service: could not get incident: %w", err)
		}
		evidence, err := s.repo.ListEvidence(ctx, id)
		if err != nil {
			log.WithError(err).Error("Failed to load incident evidence")
			return nil, fmt.Errorf("service: could not load evidence: %w", err)
		}
		incident.Evidence = evidence

		if err := s.repo.SetIncidentCache(ctx, incident); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}

	return incident, nil
}

// ListIncidents возвращает страницу видимых пользователю инцидентов
func (s *incidentService) ListIncidents(ctx context.Context, actor *models.Actor, filter models.IncidentFilter) ([]*models.Incident, int, error) {
	filter.Normalize()
	if filter.State != "" && !filter.State.Valid() {
		return nil, 0, apperrors.NewValidationError("state", fmt.Sprintf("unknown state '%s'", filter.State))
	}
	filter.Scope = authz.VisibilityScope(actor, authz.ResolveRoles(actor))

	log := s.logger.WithFields(logrus.Fields{
		"service":   "incident",
		"method":    "ListIncidents",
		"actor_id":  actorID(actor),
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
	log.Debug("Listing incidents")

	incidents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, 0, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, total, nil
}

// applyTransition проверяет и применяет смену этапа к заблокированной записи.
// Возвращает nil-событие, если этап не меняется.
func (s *incidentService) applyTransition(
	ctx context.Context,
	tx IncidentTx,
	actor *models.Actor,
	roles models.RoleSet,
	incident *models.Incident,
	to models.State,
	extra models.TransitionExtra,
) (*models.StateChangeEvent, error) {
	from := incident.State
	if err := lifecycle.Check(from, to, roles); err != nil {
		return nil, err
	}
	if from == to {
		return nil, nil
	}

	reason := strings.TrimSpace(extra.RejectionReason)
	if to == models.StateRejected && reason == "" {
		return nil, apperrors.ErrMissingRejectionReason
	}
	if to == models.StateDone {
		count, err := tx.CountEvidence(ctx, incident.ID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperrors.ErrMissingEvidence
		}
	}

	now := s.now()
	incident.State = to
	incident.UpdatedAt = now
	switch to {
	case models.StateDone:
		closedAt := now
		incident.ClosedAt = &closedAt
	case models.StatePending, models.StateInProgress:
		incident.ClosedAt = nil
	}
	if to == models.StateRejected {
		incident.RejectionReason = reason
	}
	if comment := strings.TrimSpace(extra.Comment); comment != "" {
		incident.ResolutionComment = comment
	}

	event := &models.StateChangeEvent{
		IncidentID:      incident.ID,
		Title:           incident.Title,
		Description:     incident.Description,
		PreviousState:   from,
		NewState:        to,
		RejectionReason: incident.RejectionReason,
		ChangedAt:       now,
	}
	if to != models.StateRejected {
		event.RejectionReason = ""
	}
	if actor != nil {
		event.ActorName = actor.DisplayName()
		event.ActorEmail = actor.Email
	}
	if incident.DepartmentID != nil {
		dept, err := s.directory.GetDepartment(ctx, *incident.DepartmentID)
		switch {
		case err == nil:
			event.DepartmentName = dept.Name
			event.ResponsibleName = dept.ResponsibleName
			event.ResponsibleEmail = dept.ResponsibleEmail
		case !apperrors.IsNotFound(err):
			return nil, err
		}
	}
	return event, nil
}

// transition - общая часть всех путей смены этапа. before выполняется внутри
// транзакции после блокировки строки и до проверки перехода.
func (s *incidentService) transition(
	ctx context.Context,
	actor *models.Actor,
	id uuid.UUID,
	to models.State,
	extra models.TransitionExtra,
	before func(tx IncidentTx, incident *models.Incident) error,
) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "RequestTransition",
		"incident_id": id,
		"actor_id":    actorID(actor),
		"to":          to,
	})
	log.Info("Attempting state transition")

	roles := authz.ResolveRoles(actor)
	var (
		result *models.Incident
		event  *models.StateChangeEvent
	)
	err := s.repo.WithinTx(ctx, func(tx IncidentTx) error {
		// пути бригады проверяют назначение в before
		if before == nil {
			if err := s.checkVisible(ctx, actor, roles, id); err != nil {
				return err
			}
		}
		incident, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if before != nil {
			if err := before(tx, incident); err != nil {
				return err
			}
		}

		event, err = s.applyTransition(ctx, tx, actor, roles, incident, to, extra)
		if err != nil {
			return err
		}
		if event == nil {
			result = incident
			return nil
		}
		if err := tx.Update(ctx, incident); err != nil {
			return err
		}
		// уведомление входит в транзакцию: ошибка отправки откатывает смену этапа
		if err := s.notifier.Notify(ctx, *event); err != nil {
			return err
		}
		result = incident
		return nil
	})
	if err != nil {
		if isClientError(err) {
			log.WithError(err).Warn("State transition rejected")
		} else {
			log.WithError(err).Error("State transition failed")
		}
		return nil, fmt.Errorf("service: transition to %s: %w", to, err)
	}

	if event != nil {
		s.afterStateChange(ctx, log, *event)
		log.WithField("from", event.PreviousState).Info("State transition applied")
	}
	return result, nil
}

// afterStateChange сбрасывает кэш и публикует событие; ошибки только логируются
func (s *incidentService) afterStateChange(ctx context.Context, log *logrus.Entry, event models.StateChangeEvent) {
	if err := s.repo.InvalidateIncidentCache(ctx, event.IncidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish state change event")
	}
}

// RequestTransition меняет этап инцидента по таблице переходов и матрице ролей
func (s *incidentService) RequestTransition(ctx context.Context, actor *models.Actor, id uuid.UUID, to models.State, extra models.TransitionExtra) (*models.Incident, error) {
	return s.transition(ctx, actor, id, to, extra, nil)
}

// UpdateIncident редактирует поля и, если указан, меняет этап в одной транзакции
func (s *incidentService) UpdateIncident(ctx context.Context, actor *models.Actor, id uuid.UUID, update models.IncidentUpdate) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
		"actor_id":    actorID(actor),
	})
	log.Info("Attempting to update incident")

	roles := authz.ResolveRoles(actor)
	var (
		result *models.Incident
		event  *models.StateChangeEvent
	)
	err := s.repo.WithinTx(ctx, func(tx IncidentTx) error {
		if err := s.checkVisible(ctx, actor, roles, id); err != nil {
			return err
		}
		incident, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if reassigns(incident, update) {
			if err := s.requireAction(roles, authz.ActionAssign); err != nil {
				return err
			}
		}

		departmentChanged, err := s.applyFields(ctx, incident, update)
		if err != nil {
			return err
		}
		if err := s.validateReferences(ctx, incident, departmentChanged); err != nil {
			return err
		}

		if update.State != nil {
			event, err = s.applyTransition(ctx, tx, actor, roles, incident, *update.State, update.Extra)
			if err != nil {
				return err
			}
		}
		if event == nil {
			incident.UpdatedAt = s.now()
		}
		if err := tx.Update(ctx, incident); err != nil {
			return err
		}
		if event != nil {
			if err := s.notifier.Notify(ctx, *event); err != nil {
				return err
			}
		}
		result = incident
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update incident")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	if event != nil {
		s.afterStateChange(ctx, log, *event)
	} else if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident updated successfully")
	return result, nil
}

// reassigns - меняет ли правка отдел, дирекцию или бригаду
func reassigns(incident *models.Incident, update models.IncidentUpdate) bool {
	return changesID(incident.DepartmentID, update.DepartmentID) ||
		changesID(incident.DivisionID, update.DivisionID) ||
		changesID(incident.CrewID, update.CrewID)
}

func changesID(current, next *uuid.UUID) bool {
	return next != nil && (current == nil || *current != *next)
}

// applyFields переносит изменения формы; возвращает, сменился ли отдел
func (s *incidentService) applyFields(ctx context.Context, incident *models.Incident, update models.IncidentUpdate) (bool, error) {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return false, apperrors.NewValidationError("title", "must not be empty")
		}
		if !strings.EqualFold(title, incident.Title) {
			if err := s.ensureUniqueTitle(ctx, title, incident.ID); err != nil {
				return false, err
			}
		}
		incident.Title = title
	}
	if update.Description != nil {
		incident.Description = *update.Description
	}
	if update.Priority != nil {
		if !update.Priority.Valid() {
			return false, apperrors.NewValidationError("priority", fmt.Sprintf("unknown priority '%s'", *update.Priority))
		}
		incident.Priority = *update.Priority
	}
	if update.Latitude != nil {
		incident.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		incident.Longitude = update.Longitude
	}
	if update.ReporterName != nil {
		incident.ReporterName = *update.ReporterName
	}
	if update.ReporterEmail != nil {
		email := strings.TrimSpace(*update.ReporterEmail)
		if email == "" {
			return false, apperrors.NewValidationError("reporter_email", "is required")
		}
		incident.ReporterEmail = email
	}
	if update.ReporterPhone != nil {
		incident.ReporterPhone = *update.ReporterPhone
	}
	if update.DivisionID != nil {
		incident.DivisionID = update.DivisionID
	}

	departmentChanged := false
	if update.DepartmentID != nil {
		departmentChanged = incident.DepartmentID == nil || *incident.DepartmentID != *update.DepartmentID
		incident.DepartmentID = update.DepartmentID
		// дирекция пересчитается из нового отдела
		if departmentChanged && update.DivisionID == nil {
			incident.DivisionID = nil
		}
	}
	if update.CrewID != nil {
		incident.CrewID = update.CrewID
	}
	if update.IncidentTypeID != nil {
		incident.IncidentTypeID = update.IncidentTypeID
	}
	return departmentChanged, nil
}

// AttachEvidence сохраняет файлы и создает записи доказательств
func (s *incidentService) AttachEvidence(ctx context.Context, actor *models.Actor, id uuid.UUID, files []models.EvidenceFile) ([]*models.Evidence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "AttachEvidence",
		"incident_id": id,
		"actor_id":    actorID(actor),
		"files":       len(files),
	})
	log.Info("Attempting to attach evidence")

	if len(files) == 0 {
		return nil, apperrors.NewValidationError("files", "at least one file is required")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	if err := s.authorizeEvidence(ctx, actor, incident); err != nil {
		log.WithError(err).Warn("Actor is not allowed to attach evidence")
		return nil, err
	}

	infos := make([]storage.FileInfo, len(files))
	for i, f := range files {
		info, err := storage.Inspect(f.Data, f.FileName, s.maxEvidenceBytes)
		if err != nil {
			return nil, err
		}
		infos[i] = info
	}

	var (
		stored []string
		added  []*models.Evidence
	)
	err = s.repo.WithinTx(ctx, func(tx IncidentTx) error {
		locked, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked.State != models.StateInProgress {
			return apperrors.ErrNotInProgress
		}

		for i, f := range files {
			url, err := s.storage.Store(ctx, f.Data, f.FileName)
			if err != nil {
				return err
			}
			stored = append(stored, url)

			name := strings.TrimSpace(f.DisplayName)
			if name == "" {
				name = f.FileName
			}
			evidence := &models.Evidence{
				IncidentID: id,
				Name:       name,
				URL:        url,
				Category:   infos[i].Category,
				Format:     infos[i].Format,
			}
			if err := tx.AddEvidence(ctx, evidence); err != nil {
				return err
			}
			added = append(added, evidence)
		}
		return nil
	})
	if err != nil {
		for _, url := range stored {
			if rmErr := s.storage.Remove(ctx, url); rmErr != nil {
				log.WithError(rmErr).WithField("url", url).Warn("Failed to remove orphaned evidence file")
			}
		}
		log.WithError(err).Warn("Failed to attach evidence")
		return nil, fmt.Errorf("service: could not attach evidence: %w", err)
	}

	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	log.WithField("count", len(added)).Info("Evidence attached successfully")
	return added, nil
}

// authorizeEvidence - суперпользователь, администратор, территориальный
// или участник/руководитель назначенной бригады
func (s *incidentService) authorizeEvidence(ctx context.Context, actor *models.Actor, incident *models.Incident) error {
	roles := authz.ResolveRoles(actor)
	ok, err := s.policy.Can(roles, authz.ActionAttachEvidence)
	if err != nil {
		return fmt.Errorf("service: policy check: %w", err)
	}
	if ok {
		return s.checkVisible(ctx, actor, roles, incident.ID)
	}
	if actor == nil || actor.ProfileID == nil || incident.CrewID == nil {
		return apperrors.ErrForbidden
	}
	crew, err := s.directory.GetCrew(ctx, *incident.CrewID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("service: crew lookup: %w", err)
	}
	if !crew.HasProfile(*actor.ProfileID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// GetEvidence отдает доказательство видимого пользователю инцидента.
// Второе значение - путь к локальному файлу, пустой для внешних ссылок.
func (s *incidentService) GetEvidence(ctx context.Context, actor *models.Actor, id, evidenceID uuid.UUID) (*models.Evidence, string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetEvidence",
		"incident_id": id,
		"evidence_id": evidenceID,
		"actor_id":    actorID(actor),
	})

	if err := s.checkVisible(ctx, actor, authz.ResolveRoles(actor), id); err != nil {
		log.WithError(err).Warn("Incident is not visible to actor")
		return nil, "", err
	}

	evidence, err := s.repo.ListEvidence(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load incident evidence")
		return nil, "", fmt.Errorf("service: could not load evidence: %w", err)
	}
	for _, e := range evidence {
		if e.ID != evidenceID {
			continue
		}
		filePath, _ := s.storage.Locate(e.URL)
		return e, filePath, nil
	}
	return nil, "", fmt.Errorf("evidence with id %s: %w", evidenceID, apperrors.ErrEvidenceNotFound)
}

// DeleteIncident безвозвратно удаляет инцидент вместе с доказательствами
func (s *incidentService) DeleteIncident(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
		"actor_id":    actorID(actor),
	})
	log.Info("Attempting to delete incident")

	roles := authz.ResolveRoles(actor)
	if err := s.requireAction(roles, authz.ActionDelete); err != nil {
		log.WithError(err).Warn("Actor is not allowed to delete incidents")
		return err
	}
	if err := s.checkVisible(ctx, actor, roles, id); err != nil {
		log.WithError(err).Warn("Incident is not visible to actor")
		return err
	}

	evidence, err := s.repo.ListEvidence(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to load evidence before delete")
		return fmt.Errorf("service: could not load evidence: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	for _, e := range evidence {
		if err := s.storage.Remove(ctx, e.URL); err != nil {
			log.WithError(err).WithField("url", e.URL).Debug("Evidence file not removed")
		}
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident deleted successfully")
	return nil
}

// requireAssignedCrew - инцидент назначен одной из бригад пользователя
func requireAssignedCrew(crews []*models.Crew, incident *models.Incident) error {
	if incident.CrewID == nil {
		return apperrors.ErrForbidden
	}
	for _, c := range crews {
		if c.ID == *incident.CrewID {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// ListCrewIncidents - инциденты бригад пользователя в указанном этапе (по умолчанию in_progress)
func (s *incidentService) ListCrewIncidents(ctx context.Context, actor *models.Actor, state models.State) ([]*models.Incident, error) {
	if _, err := crewsForActor(ctx, s.directory, actor); err != nil {
		return nil, err
	}
	if !state.Valid() {
		state = models.StateInProgress
	}

	incidents, _, err := s.repo.List(ctx, models.IncidentFilter{
		State:    state,
		Scope:    models.Scope{CrewProfileID: actor.ProfileID},
		Page:     1,
		PageSize: crewListLimit,
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":  "incident",
			"method":   "ListCrewIncidents",
			"actor_id": actorID(actor),
		}).WithError(err).Error("Failed to list crew incidents")
		return nil, fmt.Errorf("service: could not list crew incidents: %w", err)
	}
	return incidents, nil
}

// StartWork переводит назначенный бригаде инцидент в работу
func (s *incidentService) StartWork(ctx context.Context, actor *models.Actor, id uuid.UUID) (*models.Incident, error) {
	crews, err := crewsForActor(ctx, s.directory, actor)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, id, models.StateInProgress, models.TransitionExtra{},
		func(_ IncidentTx, incident *models.Incident) error {
			return requireAssignedCrew(crews, incident)
		})
}

// ResolveWithEvidence добавляет ссылки на доказательства и завершает работы
func (s *incidentService) ResolveWithEvidence(ctx context.Context, actor *models.Actor, id uuid.UUID, urls []string, comment string) (*models.Incident, error) {
	crews, err := crewsForActor(ctx, s.directory, actor)
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u == "" {
			continue
		}
		if err := storage.ValidateEvidenceURL(u); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, u)
	}

	return s.transition(ctx, actor, id, models.StateDone, models.TransitionExtra{Comment: comment},
		func(tx IncidentTx, incident *models.Incident) error {
			if err := requireAssignedCrew(crews, incident); err != nil {
				return err
			}
			if incident.State != models.StateInProgress {
				return apperrors.ErrNotInProgress
			}
			for _, u := range cleaned {
				evidence := &models.Evidence{
					IncidentID: incident.ID,
					Name:       "Evidencia",
					URL:        u,
					Category:   "image",
					Format:     storage.FormatFromURL(u),
				}
				if err := tx.AddEvidence(ctx, evidence); err != nil {
					return err
				}
			}
			return nil
		})
}

// RejectByCrew отклоняет назначенный бригаде инцидент с обязательной причиной
func (s *incidentService) RejectByCrew(ctx context.Context, actor *models.Actor, id uuid.UUID, reason string) (*models.Incident, error) {
	crews, err := crewsForActor(ctx, s.directory, actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.ErrMissingRejectionReason
	}
	return s.transition(ctx, actor, id, models.StateRejected, models.TransitionExtra{RejectionReason: reason},
		func(_ IncidentTx, incident *models.Incident) error {
			return requireAssignedCrew(crews, incident)
		})
}

// isClientError - ошибки, вызванные входными данными, а не сбоем
func isClientError(err error) bool {
	return apperrors.IsValidation(err) ||
		apperrors.IsNotFound(err) ||
		apperrors.IsAuthorization(err) ||
		apperrors.IsIllegalTransition(err) ||
		errors.Is(err, apperrors.ErrMissingEvidence) ||
		errors.Is(err, apperrors.ErrMissingRejectionReason) ||
		errors.Is(err, apperrors.ErrNotInProgress)
}
