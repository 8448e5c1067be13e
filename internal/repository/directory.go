package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/service"
)

const crewColumns = `id, name, member_profile_id, supervisor_profile_id, department_id`

type DirectoryRepository struct {
	db *pgxpool.Pool
}

func NewDirectoryRepository(db *pgxpool.Pool) service.DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// GetDepartment возвращает отдел вместе с ответственным лицом
func (r *DirectoryRepository) GetDepartment(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	query := `
		SELECT
			d.id,
			d.name,
			d.active,
			d.division_id,
			d.responsible_profile_id,
			COALESCE(NULLIF(u.full_name, ''), u.username, ''),
			COALESCE(u.email, ''),
			d.created_at
		FROM departments d
		LEFT JOIN profiles p ON p.id = d.responsible_profile_id
		LEFT JOIN users u ON u.id = p.user_id
		WHERE d.id = $1;
	`
	d := &models.Department{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Active,
		&d.DivisionID,
		&d.ResponsibleProfileID,
		&d.ResponsibleName,
		&d.ResponsibleEmail,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("department with id %s: %w", id, apperrors.ErrDepartmentNotFound)
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func scanCrew(row pgx.Row) (*models.Crew, error) {
	c := &models.Crew{}
	if err := row.Scan(&c.ID, &c.Name, &c.MemberProfileID, &c.SupervisorProfileID, &c.DepartmentID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *DirectoryRepository) GetCrew(ctx context.Context, id uuid.UUID) (*models.Crew, error) {
	crew, err := scanCrew(r.db.QueryRow(ctx, `SELECT `+crewColumns+` FROM crews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("crew with id %s: %w", id, apperrors.ErrCrewNotFound)
		}
		return nil, fmt.Errorf("failed to get crew: %w", err)
	}
	return crew, nil
}

func (r *DirectoryRepository) listCrews(ctx context.Context, query string, args ...any) ([]*models.Crew, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crews: %w", err)
	}
	defer rows.Close()

	crews := make([]*models.Crew, 0)
	for rows.Next() {
		crew, err := scanCrew(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crew row: %w", err)
		}
		crews = append(crews, crew)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error crew iteration: %w", err)
	}
	return crews, nil
}

// ListCrewsByDepartment возвращает бригады отдела по имени
func (r *DirectoryRepository) ListCrewsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]*models.Crew, error) {
	return r.listCrews(ctx, `SELECT `+crewColumns+` FROM crews WHERE department_id = $1 ORDER BY name`, departmentID)
}

// ListCrewsForProfile - бригады, где профиль участник или руководитель
func (r *DirectoryRepository) ListCrewsForProfile(ctx context.Context, profileID uuid.UUID) ([]*models.Crew, error) {
	return r.listCrews(ctx,
		`SELECT `+crewColumns+` FROM crews WHERE member_profile_id = $1 OR supervisor_profile_id = $1 ORDER BY name`,
		profileID)
}

func (r *DirectoryRepository) GetIncidentType(ctx context.Context, id uuid.UUID) (*models.IncidentType, error) {
	t := &models.IncidentType{}
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM incident_types WHERE id = $1`, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident type with id %s: %w", id, apperrors.ErrIncidentTypeNotFound)
		}
		return nil, fmt.Errorf("failed to get incident type: %w", err)
	}
	return t, nil
}

func (r *DirectoryRepository) ListIncidentTypes(ctx context.Context) ([]*models.IncidentType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM incident_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident types: %w", err)
	}
	defer rows.Close()

	types := make([]*models.IncidentType, 0)
	for rows.Next() {
		t := &models.IncidentType{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan incident type row: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incident type iteration: %w", err)
	}
	return types, nil
}

// GetActor загружает пользователя с группами и профилем
func (r *DirectoryRepository) GetActor(ctx context.Context, userID uuid.UUID) (*models.Actor, error) {
	query := `
		SELECT
			u.id,
			u.username,
			u.full_name,
			u.email,
			u.is_superuser,
			ARRAY(SELECT g.group_name FROM user_groups g WHERE g.user_id = u.id ORDER BY g.group_name),
			p.id,
			COALESCE(p.group_name, '')
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1;
	`
	a := &models.Actor{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.UserID,
		&a.Username,
		&a.FullName,
		&a.Email,
		&a.IsSuperuser,
		&a.Groups,
		&a.ProfileID,
		&a.ProfileGroup,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s: %w", userID, apperrors.ErrActorNotFound)
		}
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return a, nil
}
