package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/shenikar/municipal_incidents/internal/models"
)

// Action - действие над инцидентами, проверяемое политикой
type Action string

const (
	ActionCreate         Action = "create"
	ActionDelete         Action = "delete"
	ActionAttachEvidence Action = "attach_evidence"
	// ActionAssign - смена отдела, дирекции или бригады
	ActionAssign Action = "assign"
)

const incidentObject = "incident"

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var defaultPolicies = [][]string{
	{string(models.RoleAdministrator), incidentObject, string(ActionCreate)},
	{string(models.RoleAdministrator), incidentObject, string(ActionDelete)},
	{string(models.RoleAdministrator), incidentObject, string(ActionAttachEvidence)},
	{string(models.RoleTerritorial), incidentObject, string(ActionCreate)},
	{string(models.RoleTerritorial), incidentObject, string(ActionDelete)},
	{string(models.RoleTerritorial), incidentObject, string(ActionAttachEvidence)},
	{string(models.RoleAdministrator), incidentObject, string(ActionAssign)},
	{string(models.RoleTerritorial), incidentObject, string(ActionAssign)},
	{string(models.RoleDepartment), incidentObject, string(ActionAssign)},
}

// Policy отвечает на вопрос "может ли роль выполнить действие"
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy собирает политику в памяти; суперпользователь наследует права администратора
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	if _, err := e.AddGroupingPolicy(string(models.RoleSuperuser), string(models.RoleAdministrator)); err != nil {
		return nil, fmt.Errorf("failed to load role inheritance: %w", err)
	}
	return &Policy{enforcer: e}, nil
}

// Can - хотя бы одна из ролей разрешает действие
func (p *Policy) Can(roles models.RoleSet, action Action) (bool, error) {
	for role := range roles {
		ok, err := p.enforcer.Enforce(string(role), incidentObject, string(action))
		if err != nil {
			return false, fmt.Errorf("policy check failed for %s/%s: %w", role, action, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
