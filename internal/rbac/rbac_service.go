package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const modelText = `[request_definition]
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

// Role names match the employee directory's role column. Plain strings here
// keep this package free of feature imports.
const (
	roleStaff = "staff"
	roleHOD   = "hod"
	rolePS    = "principal_secretary"
)

// rolePolicies is the static permission matrix. Roles come from the employee
// record, so there is no per-request policy loading.
var rolePolicies = [][3]string{
	{roleStaff, "application", "submit"},
	{roleStaff, "application", "read"},
	{roleStaff, "balance", "read"},
	{roleStaff, "leave_type", "read"},
	{roleStaff, "employee", "read"},
	{roleStaff, "department", "read"},
	{roleStaff, "notification", "read"},

	{roleHOD, "application", "decide"},

	{rolePS, "application", "decide"},
	{rolePS, "leave_type", "manage"},
	{rolePS, "employee", "manage"},
	{rolePS, "department", "manage"},
}

// roleInheritance lets the senior roles keep the staff surface without
// duplicating every policy row.
var roleInheritance = [][2]string{
	{roleHOD, roleStaff},
	{rolePS, roleHOD},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
