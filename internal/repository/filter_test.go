package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_AllScopeNoFilters(t *testing.T) {
	list, count, args := buildListQuery(models.IncidentFilter{Scope: models.Scope{All: true}, Page: 2, PageSize: 10})

	assert.Contains(t, list, "WHERE TRUE ORDER BY created_at DESC, id LIMIT $1 OFFSET $2")
	assert.Equal(t, "SELECT COUNT(*) FROM incidents WHERE TRUE", count)
	assert.Equal(t, []any{10, 10}, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	dept := uuid.New()
	list, count, args := buildListQuery(models.IncidentFilter{
		Query:        "bache_50%",
		State:        models.StateInProgress,
		DepartmentID: &dept,
		Scope:        models.Scope{All: true},
		Page:         1,
		PageSize:     20,
	})

	assert.Contains(t, count, "title ILIKE $1 AND state = $2 AND department_id = $3")
	assert.Contains(t, list, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{`%bache\_50\%%`, "in_progress", dept, 20, 0}, args)
}

func TestBuildListQuery_Scopes(t *testing.T) {
	profile := uuid.New()

	tests := []struct {
		name     string
		scope    models.Scope
		wantCond string
		wantArgs int
	}{
		{name: "none", scope: models.Scope{None: true}, wantCond: "WHERE FALSE", wantArgs: 2},
		{name: "empty scope closes", scope: models.Scope{}, wantCond: "WHERE FALSE", wantArgs: 2},
		{name: "crew", scope: models.Scope{CrewProfileID: &profile}, wantCond: "c.member_profile_id = $1 OR c.supervisor_profile_id = $1", wantArgs: 3},
		{name: "territorial", scope: models.Scope{TerritorialProfileID: &profile}, wantCond: "ta.profile_id = $1", wantArgs: 3},
		{name: "reporter", scope: models.Scope{ReporterEmail: "vecino@correo.cl"}, wantCond: "lower(reporter_email) = lower($1)", wantArgs: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, count, args := buildListQuery(models.IncidentFilter{Scope: tt.scope})
			assert.Contains(t, list, tt.wantCond)
			assert.Contains(t, count, tt.wantCond)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestBuildListQuery_DefaultPagination(t *testing.T) {
	_, _, args := buildListQuery(models.IncidentFilter{Scope: models.Scope{All: true}})
	assert.Equal(t, []any{20, 0}, args)
}

func TestWhereBuilder_NoConditions(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "TRUE", w.sql())
	w.add("id = ?", 1)
	w.raw("FALSE")
	assert.True(t, strings.HasPrefix(w.sql(), "id = $1 AND FALSE"))
}
