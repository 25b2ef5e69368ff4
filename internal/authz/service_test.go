package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func mustEnforceRole(t *testing.T, svc *Service, role, obj, act string) bool {
	t.Helper()
	allow, err := svc.EnforceRole(role, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s %s failed: %v", role, act, obj, err)
	}
	return allow
}

func TestGudangCanProcessOrdersOnly(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if !mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/orders", "GET") {
		t.Fatalf("expected GUDANG to list orders")
	}
	if !mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/orders/:id/status", "PATCH") {
		t.Fatalf("expected GUDANG to update order status")
	}
	if !mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/orders/:id/label", "POST") {
		t.Fatalf("expected GUDANG to issue labels")
	}
	if mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/products", "POST") {
		t.Fatalf("expected GUDANG to be denied product writes")
	}
	if mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/users", "GET") {
		t.Fatalf("expected GUDANG to be denied user management")
	}
	if mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/reports/sales", "GET") {
		t.Fatalf("expected GUDANG to be denied reports")
	}
}

func TestAdminInheritsAndOwnsEverything(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	checks := []struct {
		obj string
		act string
	}{
		{"/api/v1/admin/orders", "GET"},
		{"/api/v1/admin/orders/:id/label", "POST"},
		{"/api/v1/admin/products", "POST"},
		{"/api/v1/admin/products/:id", "DELETE"},
		{"/api/v1/admin/users/:id", "PUT"},
		{"/api/v1/admin/reports/sales/export", "GET"},
		{"/api/v1/admin/upload", "POST"},
	}
	for _, check := range checks {
		if !mustEnforceRole(t, svc, "ADMIN", check.obj, check.act) {
			t.Fatalf("expected ADMIN allowed on %s %s", check.act, check.obj)
		}
	}
}

func TestCustomerDeniedBackOffice(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if mustEnforceRole(t, svc, "CUSTOMER", "/api/v1/admin/orders", "GET") {
		t.Fatalf("expected CUSTOMER denied on admin orders")
	}
	if mustEnforceRole(t, svc, "CUSTOMER", "/api/v1/admin/products", "GET") {
		t.Fatalf("expected CUSTOMER denied on admin products")
	}
}

func TestEnforceRoleLowercaseAction(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if !mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/orders", "get") {
		t.Fatalf("expected action matching to be case-insensitive")
	}
}

func TestEnforceRoleRejectsEmptyRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if _, err := svc.EnforceRole("  ", "/api/v1/admin/orders", "GET"); err == nil {
		t.Fatalf("expected empty role to be rejected")
	}
}

func TestBootstrapIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	if !mustEnforceRole(t, svc, "GUDANG", "/api/v1/admin/orders", "GET") {
		t.Fatalf("expected policies intact after re-bootstrap")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/v1/admin/orders", "/admin/orders"},
		{"/admin/orders", "/admin/orders"},
		{"/api/v1", "/"},
		{"  /api/v1/admin/products/:id  ", "/admin/products/:id"},
		{"", "/"},
	}
	for _, c := range cases {
		if got := NormalizeObject(c.in); got != c.want {
			t.Fatalf("NormalizeObject(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("ADMIN")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if got != "role:ADMIN" {
		t.Fatalf("NormalizeRole(ADMIN)=%q want role:ADMIN", got)
	}
	if _, err := NormalizeRole(""); err == nil {
		t.Fatalf("expected empty role error")
	}
}
