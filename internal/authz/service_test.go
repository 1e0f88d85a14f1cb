package authz

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service: %v", err)
	}
	return svc
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("cashier")
	if err != nil {
		t.Fatalf("normalize role: %v", err)
	}
	if got != "role:cashier" {
		t.Fatalf("unexpected role: %s", got)
	}

	got, err = NormalizeRole("role:manager")
	if err != nil {
		t.Fatalf("normalize prefixed role: %v", err)
	}
	if got != "role:manager" {
		t.Fatalf("unexpected role: %s", got)
	}

	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("expected error for blank role")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"/api/v1/admin/members": "/admin/members",
		"admin/products":        "/admin/products",
		"":                      "/",
		"/api/v1":               "/",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureRoleAndGrant(t *testing.T) {
	svc := newTestService(t)

	role, err := svc.EnsureRole("cashier")
	if err != nil {
		t.Fatalf("ensure role: %v", err)
	}
	if role != "role:cashier" {
		t.Fatalf("unexpected role: %s", role)
	}

	if err := svc.GrantRolePolicy("cashier", "/admin/members", "GET"); err != nil {
		t.Fatalf("grant policy: %v", err)
	}
	if err := svc.SetAdminRoles(7, []string{"cashier"}); err != nil {
		t.Fatalf("set admin roles: %v", err)
	}

	ok, err := svc.EnforceAdmin(7, "/api/v1/admin/members", "get")
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if !ok {
		t.Fatalf("expected cashier to read members")
	}

	ok, err = svc.EnforceAdmin(7, "/admin/members", "DELETE")
	if err != nil {
		t.Fatalf("enforce delete: %v", err)
	}
	if ok {
		t.Fatalf("expected delete to be denied")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := newTestService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles: %v", err)
	}

	if err := svc.SetAdminRoles(1, []string{"manager"}); err != nil {
		t.Fatalf("set manager: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"cashier"}); err != nil {
		t.Fatalf("set cashier: %v", err)
	}

	// manager 继承 cashier 的收银台权限
	ok, err := svc.EnforceAdmin(1, "/admin/consumes", "POST")
	if err != nil {
		t.Fatalf("enforce manager consume: %v", err)
	}
	if !ok {
		t.Fatalf("expected manager to create consume records")
	}

	ok, err = svc.EnforceAdmin(1, "/admin/products/12", "PUT")
	if err != nil {
		t.Fatalf("enforce manager product: %v", err)
	}
	if !ok {
		t.Fatalf("expected manager to update products")
	}

	ok, err = svc.EnforceAdmin(2, "/admin/products/12", "PUT")
	if err != nil {
		t.Fatalf("enforce cashier product: %v", err)
	}
	if ok {
		t.Fatalf("expected cashier to be denied product updates")
	}

	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:cashier" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}
