package authz

import (
	"strings"

	"github.com/shenikar/municipal_incidents/internal/models"
)

// groupRoles сопоставляет названия групп справочника с ролями
var groupRoles = map[string]models.Role{
	"administrador":     models.RoleAdministrator,
	"administrator":     models.RoleAdministrator,
	"dirección":         models.RoleDivision,
	"direccion":         models.RoleDivision,
	"division":          models.RoleDivision,
	"territorial":       models.RoleTerritorial,
	"departamento":      models.RoleDepartment,
	"department":        models.RoleDepartment,
	"jefe de cuadrilla": models.RoleCrewLead,
	"cuadrilla":         models.RoleCrewLead,
	"crew_lead":         models.RoleCrewLead,
}

// RoleFromGroup нормализует название группы; false для неизвестных групп
func RoleFromGroup(group string) (models.Role, bool) {
	role, ok := groupRoles[strings.ToLower(strings.TrimSpace(group))]
	return role, ok
}

// ResolveRoles объединяет роли из флага суперпользователя, групп и группы профиля
func ResolveRoles(actor *models.Actor) models.RoleSet {
	roles := models.NewRoleSet()
	if actor == nil {
		return roles
	}
	if actor.IsSuperuser {
		roles[models.RoleSuperuser] = struct{}{}
	}
	groups := append([]string{}, actor.Groups...)
	if actor.ProfileGroup != "" {
		groups = append(groups, actor.ProfileGroup)
	}
	for _, g := range groups {
		if role, ok := RoleFromGroup(g); ok {
			roles[role] = struct{}{}
		}
	}
	return roles
}

// VisibilityScope строит ограничение выборки. Роли проверяются по старшинству:
// первая подходящая определяет, что видит пользователь.
func VisibilityScope(actor *models.Actor, roles models.RoleSet) models.Scope {
	switch {
	case roles.HasAny(models.RoleSuperuser, models.RoleAdministrator, models.RoleDivision):
		return models.Scope{All: true}
	case roles.Has(models.RoleDepartment):
		return models.Scope{All: true}
	case roles.Has(models.RoleCrewLead):
		if actor.ProfileID == nil {
			return models.Scope{None: true}
		}
		return models.Scope{CrewProfileID: actor.ProfileID}
	case roles.Has(models.RoleTerritorial):
		if actor.ProfileID == nil {
			return models.Scope{None: true}
		}
		return models.Scope{TerritorialProfileID: actor.ProfileID}
	}
	if actor == nil || actor.Email == "" {
		return models.Scope{None: true}
	}
	return models.Scope{ReporterEmail: actor.Email}
}
