package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 门店预置角色矩阵。
// cashier 负责收银台日常操作，manager 额外管理目录与库存，
// admin 角色放开全部管理端接口（超级管理员另有免检通道）。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "cashier",
			Policies: []Policy{
				{Object: "/admin/dashboard", Action: "GET"},
				{Object: "/admin/profile", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
				{Object: "/admin/members", Action: "*"},
				{Object: "/admin/members/:id", Action: "*"},
				{Object: "/admin/members/:id/freeze", Action: "POST"},
				{Object: "/admin/members/:id/unfreeze", Action: "POST"},
				{Object: "/admin/levels", Action: "GET"},
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/products/:id", Action: "GET"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/services", Action: "GET"},
				{Object: "/admin/services/:id", Action: "GET"},
				{Object: "/admin/staff", Action: "GET"},
				{Object: "/admin/staff/:id", Action: "GET"},
				{Object: "/admin/packages", Action: "GET"},
				{Object: "/admin/packages/:id", Action: "GET"},
				{Object: "/admin/consumes", Action: "*"},
				{Object: "/admin/consumes/:id", Action: "GET"},
				{Object: "/admin/recharges", Action: "*"},
				{Object: "/admin/recharges/:id", Action: "GET"},
				{Object: "/admin/stock/logs", Action: "GET"},
				{Object: "/admin/stock/low", Action: "GET"},
				{Object: "/admin/appointments", Action: "*"},
				{Object: "/admin/appointments/:id", Action: "*"},
				{Object: "/admin/appointments/:id/confirm", Action: "POST"},
				{Object: "/admin/appointments/:id/complete", Action: "POST"},
				{Object: "/admin/appointments/:id/cancel", Action: "POST"},
				{Object: "/admin/appointments/:id/no-show", Action: "POST"},
			},
		},
		{
			Role:     "manager",
			Inherits: []string{"cashier"},
			Policies: []Policy{
				{Object: "/admin/levels", Action: "*"},
				{Object: "/admin/levels/:id", Action: "*"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/services", Action: "*"},
				{Object: "/admin/services/:id", Action: "*"},
				{Object: "/admin/staff", Action: "*"},
				{Object: "/admin/staff/:id", Action: "*"},
				{Object: "/admin/packages", Action: "*"},
				{Object: "/admin/packages/:id", Action: "*"},
				{Object: "/admin/stock/adjust", Action: "POST"},
			},
		},
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
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
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return err
			}
		}
	}
	return nil
}
