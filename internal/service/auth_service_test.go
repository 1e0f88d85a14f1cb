package service

import (
	"testing"

	"github.com/meiye-next/internal/config"
	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 2
	return NewAuthService(cfg, repository.NewAdminRepository(db))
}

func TestPasswordHashAndPolicy(t *testing.T) {
	svc := newAuthService(t)

	hash, err := svc.HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := svc.VerifyPassword(hash, "Sup3rSecret!"); err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong-password"); err == nil {
		t.Fatalf("wrong password should fail verification")
	}
	if err := svc.ValidatePassword("short"); err != ErrWeakPassword {
		t.Fatalf("short password want ErrWeakPassword, got %v", err)
	}
	if err := svc.ValidatePassword("long-enough-password"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc := newAuthService(t)

	created, err := svc.CreateOperator("frontdesk01", "Sup3rSecret!", "前台一号", constants.AdminRoleCashier)
	if err != nil {
		t.Fatalf("create operator: %v", err)
	}

	admin, token, expiresAt, err := svc.Login("frontdesk01", "Sup3rSecret!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if admin.ID != created.ID {
		t.Fatalf("login returned wrong admin: %d", admin.ID)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login time not recorded")
	}
	if !expiresAt.After(admin.CreatedAt) {
		t.Fatalf("token expiry not in the future")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AdminID != created.ID || claims.Username != "frontdesk01" || claims.Role != constants.AdminRoleCashier {
		t.Fatalf("claims wrong: %+v", claims)
	}

	if _, _, _, err := svc.Login("frontdesk01", "bad-password"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "Sup3rSecret!"); err != ErrInvalidCredentials {
		t.Fatalf("unknown user want ErrInvalidCredentials, got %v", err)
	}
}

func TestParseJWTRejectsForgedToken(t *testing.T) {
	svc := newAuthService(t)
	other := newAuthService(t)

	admin, err := svc.CreateOperator("frontdesk02", "Sup3rSecret!", "", constants.AdminRoleCashier)
	if err != nil {
		t.Fatalf("create operator: %v", err)
	}
	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	// 密钥不同的实例不接受该 Token
	other.cfg.JWT.SecretKey = "another-secret-key-0123456789abcdef"
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with other secret must be rejected")
	}
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	svc := newAuthService(t)

	admin, err := svc.CreateOperator("frontdesk03", "Sup3rSecret!", "", constants.AdminRoleCashier)
	if err != nil {
		t.Fatalf("create operator: %v", err)
	}
	oldToken, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "bad-old", "NewSecret123"); err != ErrInvalidCredentials {
		t.Fatalf("wrong old password want ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "Sup3rSecret!", "short"); err != ErrWeakPassword {
		t.Fatalf("weak new password want ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "Sup3rSecret!", "NewSecret123"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, _, err := svc.Login("frontdesk03", "Sup3rSecret!"); err != ErrInvalidCredentials {
		t.Fatalf("old password must stop working")
	}
	if _, _, _, err := svc.Login("frontdesk03", "NewSecret123"); err != nil {
		t.Fatalf("new password login: %v", err)
	}

	// Token 版本抬升，旧 Token 的版本号低于当前版本
	oldClaims, err := svc.ParseJWT(oldToken)
	if err != nil {
		t.Fatalf("parse old token: %v", err)
	}
	reloaded, err := svc.GetOperator(admin.ID)
	if err != nil {
		t.Fatalf("reload operator: %v", err)
	}
	if oldClaims.TokenVersion >= reloaded.TokenVersion {
		t.Fatalf("token version not bumped: old %d current %d", oldClaims.TokenVersion, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token invalid-before not recorded")
	}
}

func TestCreateOperatorRules(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.CreateOperator("frontdesk04", "Sup3rSecret!", "", constants.AdminRoleManager); err != nil {
		t.Fatalf("create operator: %v", err)
	}
	if _, err := svc.CreateOperator("frontdesk04", "Sup3rSecret!", "", constants.AdminRoleManager); err != ErrAdminUsernameExists {
		t.Fatalf("duplicate username want ErrAdminUsernameExists, got %v", err)
	}
	if _, err := svc.CreateOperator("frontdesk05", "short", "", constants.AdminRoleCashier); err != ErrWeakPassword {
		t.Fatalf("weak password want ErrWeakPassword, got %v", err)
	}
	if _, err := svc.CreateOperator("   ", "Sup3rSecret!", "", constants.AdminRoleCashier); err != ErrInvalidCredentials {
		t.Fatalf("blank username want ErrInvalidCredentials, got %v", err)
	}

	// 非法角色回落到收银员
	admin, err := svc.CreateOperator("frontdesk06", "Sup3rSecret!", "", "superuser")
	if err != nil {
		t.Fatalf("create operator with bad role: %v", err)
	}
	if admin.Role != constants.AdminRoleCashier {
		t.Fatalf("bad role should fall back to cashier, got %s", admin.Role)
	}
}

func TestRevokeTokensBumpsVersion(t *testing.T) {
	svc := newAuthService(t)

	admin, err := svc.CreateOperator("frontdesk07", "Sup3rSecret!", "", constants.AdminRoleCashier)
	if err != nil {
		t.Fatalf("create operator: %v", err)
	}
	before := admin.TokenVersion

	if err := svc.RevokeTokens(admin.ID); err != nil {
		t.Fatalf("revoke tokens: %v", err)
	}
	reloaded, err := svc.GetOperator(admin.ID)
	if err != nil {
		t.Fatalf("reload operator: %v", err)
	}
	if reloaded.TokenVersion != before+1 {
		t.Fatalf("token version want %d got %d", before+1, reloaded.TokenVersion)
	}

	if err := svc.RevokeTokens(9999); err != ErrAdminNotFound {
		t.Fatalf("missing admin want ErrAdminNotFound, got %v", err)
	}
}
