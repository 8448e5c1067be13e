package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/service"
)

// querier - общее подмножество pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const incidentColumns = `
	id,
	title,
	description,
	state,
	priority,
	created_at,
	updated_at,
	closed_at,
	latitude,
	longitude,
	reporter_name,
	reporter_email,
	reporter_phone,
	division_id,
	department_id,
	crew_id,
	incident_type_id,
	rejection_reason,
	resolution_comment`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var state, priority string
	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&state,
		&priority,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.ClosedAt,
		&incident.Latitude,
		&incident.Longitude,
		&incident.ReporterName,
		&incident.ReporterEmail,
		&incident.ReporterPhone,
		&incident.DivisionID,
		&incident.DepartmentID,
		&incident.CrewID,
		&incident.IncidentTypeID,
		&incident.RejectionReason,
		&incident.ResolutionComment,
	)
	if err != nil {
		return nil, err
	}
	incident.State = models.State(state)
	incident.Priority = models.Priority(priority)
	return incident, nil
}

// mapWriteError переводит нарушения ограничений в ошибки валидации
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.NewValidationError("title", "an incident with this title already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperrors.NewValidationError(pgErr.ConstraintName, "referenced record does not exist")
		}
	}
	return err
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return getIncident(ctx, r.db, id, false)
}

func getIncident(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	incident, err := scanIncident(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, apperrors.ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// FindByTitle ищет инцидент по названию без учета регистра
func (r *IncidentRepository) FindByTitle(ctx context.Context, title string) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE lower(title) = lower($1)`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find incident by title: %w", err)
	}
	return incident, nil
}

// List возвращает страницу инцидентов и общее количество по фильтру
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, int, error) {
	listQuery, countQuery, args := buildListQuery(filter)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, total, nil
}

// IsVisible проверяет, попадает ли инцидент в область видимости
func (r *IncidentRepository) IsVisible(ctx context.Context, id uuid.UUID, scope models.Scope) (bool, error) {
	w := &whereBuilder{}
	w.add("id = ?", id)
	applyScope(w, scope)

	var visible bool
	query := `SELECT EXISTS (SELECT 1 FROM incidents WHERE ` + w.sql() + `)`
	if err := r.db.QueryRow(ctx, query, w.args...).Scan(&visible); err != nil {
		return false, fmt.Errorf("failed to check incident visibility: %w", err)
	}
	return visible, nil
}

// Delete удаляет инцидент; доказательства и привязки удаляются каскадно
func (r *IncidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, apperrors.ErrIncidentNotFound)
	}
	return nil
}

// ListEvidence возвращает доказательства инцидента в порядке загрузки
func (r *IncidentRepository) ListEvidence(ctx context.Context, incidentID uuid.UUID) ([]*models.Evidence, error) {
	query := `
		SELECT id, incident_id, name, url, category, format, created_at
		FROM evidence
		WHERE incident_id = $1
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	evidence := make([]*models.Evidence, 0)
	for rows.Next() {
		e := &models.Evidence{}
		if err := rows.Scan(&e.ID, &e.IncidentID, &e.Name, &e.URL, &e.Category, &e.Format, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evidence row: %w", err)
		}
		evidence = append(evidence, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error evidence iteration: %w", err)
	}
	return evidence, nil
}

// WithinTx выполняет fn в транзакции pgx
func (r *IncidentRepository) WithinTx(ctx context.Context, fn func(tx service.IncidentTx) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&incidentTx{q: tx})
	})
}

type incidentTx struct {
	q querier
}

// Create создает новую запись об инциденте в бд
func (t *incidentTx) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (
			title, description, state, priority, latitude, longitude,
			reporter_name, reporter_email, reporter_phone,
			division_id, department_id, crew_id, incident_type_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at;
	`
	err := t.q.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		string(incident.State),
		string(incident.Priority),
		incident.Latitude,
		incident.Longitude,
		incident.ReporterName,
		incident.ReporterEmail,
		incident.ReporterPhone,
		incident.DivisionID,
		incident.DepartmentID,
		incident.CrewID,
		incident.IncidentTypeID,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", mapWriteError(err))
	}
	return nil
}

// GetForUpdate читает инцидент с блокировкой строки до конца транзакции
func (t *incidentTx) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return getIncident(ctx, t.q, id, true)
}

func (t *incidentTx) Update(ctx context.Context, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			title = $1,
			description = $2,
			state = $3,
			priority = $4,
			updated_at = $5,
			closed_at = $6,
			latitude = $7,
			longitude = $8,
			reporter_name = $9,
			reporter_email = $10,
			reporter_phone = $11,
			division_id = $12,
			department_id = $13,
			crew_id = $14,
			incident_type_id = $15,
			rejection_reason = $16,
			resolution_comment = $17
		WHERE id = $18;
	`
	cmdTag, err := t.q.Exec(ctx, query,
		incident.Title,
		incident.Description,
		string(incident.State),
		string(incident.Priority),
		incident.UpdatedAt,
		incident.ClosedAt,
		incident.Latitude,
		incident.Longitude,
		incident.ReporterName,
		incident.ReporterEmail,
		incident.ReporterPhone,
		incident.DivisionID,
		incident.DepartmentID,
		incident.CrewID,
		incident.IncidentTypeID,
		incident.RejectionReason,
		incident.ResolutionComment,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", mapWriteError(err))
	}

	// RowsAffected() == 0 - инцидента с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", incident.ID, apperrors.ErrIncidentNotFound)
	}
	return nil
}

func (t *incidentTx) CountEvidence(ctx context.Context, incidentID uuid.UUID) (int, error) {
	var count int
	if err := t.q.QueryRow(ctx, `SELECT COUNT(*) FROM evidence WHERE incident_id = $1`, incidentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count evidence: %w", err)
	}
	return count, nil
}

func (t *incidentTx) AddEvidence(ctx context.Context, evidence *models.Evidence) error {
	query := `
		INSERT INTO evidence (incident_id, name, url, category, format)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	err := t.q.QueryRow(ctx, query,
		evidence.IncidentID,
		evidence.Name,
		evidence.URL,
		evidence.Category,
		evidence.Format,
	).Scan(&evidence.ID, &evidence.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add evidence: %w", mapWriteError(err))
	}
	return nil
}

// LinkTerritorial привязывает инцидент к территориальному профилю; повтор не ошибка
func (t *incidentTx) LinkTerritorial(ctx context.Context, incidentID, profileID uuid.UUID) error {
	query := `
		INSERT INTO territorial_assignments (incident_id, profile_id)
		VALUES ($1, $2)
		ON CONFLICT (incident_id, profile_id) DO NOTHING;
	`
	if _, err := t.q.Exec(ctx, query, incidentID, profileID); err != nil {
		return fmt.Errorf("failed to link territorial assignment: %w", err)
	}
	return nil
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, cacheKey(incident.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
