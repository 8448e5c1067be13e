// Package lifecycle содержит таблицу переходов и матрицу прав по ролям.
// Пакет не зависит от хранилища и HTTP и тестируется изолированно.
package lifecycle

import (
	"fmt"

	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
)

type move struct {
	from models.State
	to   models.State
}

// transitions - каноническая таблица переходов
var transitions = map[models.State][]models.State{
	models.StatePending:    {models.StateInProgress},
	models.StateInProgress: {models.StateDone},
	models.StateDone:       {models.StateValidated, models.StateRejected},
	models.StateValidated:  {},
	models.StateRejected:   {models.StateInProgress},
}

// roleMoves - какие переходы разрешены роли; nil означает любой переход из таблицы
var roleMoves = map[models.Role]map[move]struct{}{
	models.RoleSuperuser:     nil,
	models.RoleAdministrator: nil,
	models.RoleTerritorial: {
		{models.StatePending, models.StatePending}:     {},
		{models.StatePending, models.StateInProgress}:  {},
		{models.StateDone, models.StateValidated}:      {},
		{models.StateDone, models.StateRejected}:       {},
		{models.StateRejected, models.StatePending}:    {},
		{models.StateRejected, models.StateInProgress}: {},
	},
	models.RoleDepartment: {
		{models.StatePending, models.StateInProgress}: {},
	},
	models.RoleCrewLead: {
		{models.StateInProgress, models.StateDone}: {},
	},
}

// AllowedTargets возвращает этапы, достижимые из from по таблице
func AllowedTargets(from models.State) []models.State {
	targets := transitions[from]
	out := make([]models.State, len(targets))
	copy(out, targets)
	return out
}

// InTable сообщает, есть ли переход в канонической таблице
func InTable(from, to models.State) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// RolePermits сообщает, разрешает ли матрица ролей переход
func RolePermits(role models.Role, from, to models.State) bool {
	allowed, known := roleMoves[role]
	if !known {
		return false
	}
	if allowed == nil {
		return true
	}
	_, ok := allowed[move{from, to}]
	return ok
}

// IsLegal - переход допустим для роли: тот же этап, либо есть в таблице и в матрице
func IsLegal(from, to models.State, role models.Role) bool {
	if from == to {
		return true
	}
	return InTable(from, to) && RolePermits(role, from, to)
}

// Check проверяет переход для набора ролей. Сначала таблица, затем права:
// переход, которого нет в таблице, всегда TransitionError, даже для администратора.
func Check(from, to models.State, roles models.RoleSet) error {
	if !from.Valid() {
		return apperrors.NewValidationError("state", fmt.Sprintf("unknown current state '%s'", from))
	}
	if !to.Valid() {
		return apperrors.NewValidationError("state", fmt.Sprintf("unknown state '%s'", to))
	}
	if from == to {
		return nil
	}
	if !InTable(from, to) {
		return &apperrors.TransitionError{From: string(from), To: string(to), Allowed: statesToStrings(transitions[from])}
	}
	for role := range roles {
		if RolePermits(role, from, to) {
			return nil
		}
	}
	return apperrors.ErrUnauthorizedTransition
}

func statesToStrings(states []models.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
