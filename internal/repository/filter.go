package repository

import (
	"fmt"
	"strings"

	"github.com/shenikar/municipal_incidents/internal/models"
)

// whereBuilder собирает условия WHERE; "?" заменяется номером аргумента
type whereBuilder struct {
	conds []string
	args  []any
}

func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(b.args))))
}

func (b *whereBuilder) raw(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *whereBuilder) sql() string {
	if len(b.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(b.conds, " AND ")
}

// applyScope ограничивает выборку областью видимости пользователя
func applyScope(b *whereBuilder, scope models.Scope) {
	switch {
	case scope.None:
		b.raw("FALSE")
	case scope.All:
	case scope.CrewProfileID != nil:
		b.add("crew_id IN (SELECT c.id FROM crews c WHERE c.member_profile_id = ? OR c.supervisor_profile_id = ?)", *scope.CrewProfileID)
	case scope.TerritorialProfileID != nil:
		b.add("EXISTS (SELECT 1 FROM territorial_assignments ta WHERE ta.incident_id = incidents.id AND ta.profile_id = ?)", *scope.TerritorialProfileID)
	case scope.ReporterEmail != "":
		b.add("lower(reporter_email) = lower(?)", scope.ReporterEmail)
	default:
		b.raw("FALSE")
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildListQuery строит запросы страницы и количества; последние два аргумента - LIMIT и OFFSET
func buildListQuery(filter models.IncidentFilter) (listQuery, countQuery string, args []any) {
	w := &whereBuilder{}
	applyScope(w, filter.Scope)
	if q := strings.TrimSpace(filter.Query); q != "" {
		w.add("title ILIKE ?", "%"+escapeLike(q)+"%")
	}
	if filter.State != "" {
		w.add("state = ?", string(filter.State))
	}
	if filter.DepartmentID != nil {
		w.add("department_id = ?", *filter.DepartmentID)
	}

	where := w.sql()
	countQuery = `SELECT COUNT(*) FROM incidents WHERE ` + where

	n := len(w.args)
	listQuery = fmt.Sprintf(`SELECT %s FROM incidents WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		incidentColumns, where, n+1, n+2)

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(w.args, pageSize, (page-1)*pageSize)
	return listQuery, countQuery, args
}
