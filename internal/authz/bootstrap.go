package authz

import "fmt"

// RoleSeed is one builtin role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds is the role matrix for the back office. ADMIN owns
// everything, GUDANG only order processing and label printing.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "GUDANG",
			Policies: []Policy{
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/orders/:id/label", Action: "POST"},
				{Object: "/admin/orders/:id/label", Action: "GET"},
			},
		},
		{
			Role:     "ADMIN",
			Inherits: []string{"GUDANG"},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the builtin roles and default policies.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
