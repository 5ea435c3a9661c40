package rbac

import (
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	PermissionsFor(role string) ([]Permission, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the policy table into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, edge := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(edge[0], edge[1]); err != nil {
			return err
		}
	}

	count := 0
	for role, perms := range grants {
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role, p.Resource, p.Action); err != nil {
				return err
			}
			count++
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("permissions", count), zap.Int("roles", len(grants)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if !IsValidRole(req.Role) {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// PermissionsFor returns direct and inherited grants of role, sorted.
func (s *service) PermissionsFor(role string) ([]Permission, error) {
	if !IsValidRole(role) {
		return []Permission{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[Permission]struct{}, len(rules))
	perms := make([]Permission, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		p := Permission{Resource: rule[1], Action: rule[2]}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}

	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}
