package models

import "github.com/google/uuid"

// Role - нормализованная роль пользователя
type Role string

const (
	RoleSuperuser     Role = "superuser"
	RoleAdministrator Role = "administrator"
	RoleDivision      Role = "division"
	RoleTerritorial   Role = "territorial"
	RoleDepartment    Role = "department"
	RoleCrewLead      Role = "crew_lead"
)

// RoleSet - множество ролей пользователя
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// HasAny сообщает, есть ли хотя бы одна из ролей
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Actor - аутентифицированный пользователь, выполняющий действие
type Actor struct {
	UserID       uuid.UUID  `json:"user_id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	IsSuperuser  bool       `json:"is_superuser"`
	Groups       []string   `json:"groups"`
	ProfileID    *uuid.UUID `json:"profile_id,omitempty"`
	ProfileGroup string     `json:"profile_group,omitempty"`
}

// DisplayName возвращает полное имя или логин
func (a *Actor) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}
