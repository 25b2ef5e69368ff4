package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
	roleAnchor      = "role:__anchor__"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy is one authorization rule.
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service wraps policy loading and authorization checks for the back office.
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService creates the authorization service.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforcer exposes the underlying enforcer.
func (s *Service) Enforcer() *casbin.SyncedEnforcer {
	if s == nil {
		return nil
	}
	return s.enforcer
}

// Enforce runs one authorization check.
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceRole checks an account role against a back office route.
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	return s.Enforce(normalized, obj, act)
}

// ReloadPolicy rereads policies from storage.
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// NormalizeRole prefixes and trims a role name.
func NormalizeRole(role string) (string, error) {
	normalized := strings.TrimSpace(role)
	if normalized == "" {
		return "", fmt.Errorf("role is required")
	}
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if !strings.HasPrefix(normalized, rolePrefix) {
		normalized = rolePrefix + normalized
	}
	if len(normalized) <= len(rolePrefix) {
		return "", fmt.Errorf("role is required")
	}
	return normalized, nil
}

// NormalizeObject strips the API version prefix so policies stay stable
// across versioned mounts.
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if normalized == "" {
		return "/"
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	if strings.HasPrefix(normalized, apiV1Prefix+"/") {
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	if normalized == apiV1Prefix {
		return "/"
	}
	return normalized
}

// NormalizeAction uppercases an HTTP method.
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
