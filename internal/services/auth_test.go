package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

func newAuthService(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewAuthService(db, log, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log), "test-secret", time.Hour, 24*time.Hour)
	return svc, db
}

func TestAuthRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Email: " Jane@Example.com ", Password: "secret", FirstName: "Jane", LastName: "Doe"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("email=%q, want normalized", user.Email)
	}
	if user.Password == "secret" {
		t.Fatal("password stored in clear")
	}
	if user.ParsedRole() != types.RoleUser {
		t.Fatalf("role=%v, want user", user.ParsedRole())
	}

	// same email (any casing) conflicts
	_, err = svc.RegisterUser(ctx, RegisterInput{Email: "JANE@example.com", Password: "x", FirstName: "J", LastName: "D"})
	wantStatus(t, err, http.StatusConflict)

	_, err = svc.RegisterUser(ctx, RegisterInput{Password: "x", FirstName: "J", LastName: "D"})
	wantStatus(t, err, http.StatusBadRequest)
}

func TestAuthLoginRefreshLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "bob@example.com", Password: "hunter2", FirstName: "Bob", LastName: "Ray"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, err := svc.LoginUser(ctx, "bob@example.com", "wrong")
	wantStatus(t, err, http.StatusUnauthorized)
	_, err = svc.LoginUser(ctx, "nobody@example.com", "hunter2")
	wantStatus(t, err, http.StatusUnauthorized)

	pair, err := svc.LoginUser(ctx, "bob@example.com", "hunter2")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.ExpiresIn != 3600 {
		t.Fatalf("pair=%+v incomplete", pair)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || !types.IsValidID(rd.UserID) || rd.Role != types.RoleUser {
		t.Fatalf("request data=%+v incomplete", rd)
	}

	me, err := svc.GetMe(authedCtx)
	if err != nil || me.Email != "bob@example.com" {
		t.Fatalf("GetMe=%v err=%v", me, err)
	}

	// refresh rotates: the old refresh token dies with the rotation
	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	wantStatus(t, err, http.StatusUnauthorized)

	if err := svc.Logout(authedCtx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	_, err = svc.Refresh(ctx, next.RefreshToken)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestAuthTokenVerification(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SetContextFromToken(ctx, "garbage")
	wantStatus(t, err, http.StatusUnauthorized)

	// a token minted with another secret is rejected
	other := NewAuthService(db, testutil.Logger(t), repos.NewUserRepo(db, testutil.Logger(t)), repos.NewUserTokenRepo(db, testutil.Logger(t)), "other-secret", time.Hour, time.Hour)
	if _, err := other.RegisterUser(ctx, RegisterInput{Email: "eve@example.com", Password: "pw", FirstName: "E", LastName: "V"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := other.LoginUser(ctx, "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	_, err = svc.SetContextFromToken(ctx, pair.AccessToken)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestAuthRoleFromUserRow(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Email: "ops@example.com", Password: "pw", FirstName: "O", LastName: "P"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := svc.LoginUser(ctx, "ops@example.com", "pw")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	// promote after the token was minted; the gate must see the new role
	if err := db.Model(&types.User{}).Where("email = ?", "ops@example.com").Update("role", "Admin").Error; err != nil {
		t.Fatalf("promote: %v", err)
	}
	authedCtx, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd.Role != types.RoleAdmin {
		t.Fatalf("role=%v, want admin (case-insensitive row value)", rd.Role)
	}
}
