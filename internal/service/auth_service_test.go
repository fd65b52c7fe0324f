package service

import (
	"context"
	"testing"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newTestAuthService(users *mockUsersRepo) *AuthService {
	return NewAuthService(users, testSecret, time.Hour)
}

func TestAuthService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	users := &mockUsersRepo{
		GetByEmailFn: func(string) (*models.User, error) { return nil, nil },
		CreateFn:     func(models.User) error { return nil },
	}
	svc := newTestAuthService(users)

	user, token, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "s3cr3t")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	if len(users.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(users.createCalls))
	}
	stored := users.createCalls[0]
	if stored.PasswordHash == "s3cr3t" {
		t.Error("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(stored.PasswordHash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	// the issued token must resolve back to this user
	users.GetByIDFn = func(id string) (*models.User, error) {
		if id != user.ID {
			t.Fatalf("token resolved to wrong id %q", id)
		}
		return user, nil
	}
	resolved, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken on fresh token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %q, got %q", user.ID, resolved.ID)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := &models.User{ID: "u-1", Email: "alice@example.com"}
	users := &mockUsersRepo{
		GetByEmailFn: func(string) (*models.User, error) { return existing, nil },
	}
	svc := newTestAuthService(users)

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cr3t")
	if !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if err.Error() != "Email already in use" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAuthService_Register_ValidationFirstRuleWins(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantMsg  string
	}{
		{"missing name", "", "a@b.co", "secret1", "Name is required"},
		{"missing email", "Alice", "", "secret1", "Email is required"},
		{"bad email", "Alice", "not-an-email", "secret1", "Please provide a valid email"},
		{"missing password", "Alice", "a@b.co", "", "Password is required"},
		{"short password", "Alice", "a@b.co", "abc", "Password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUsersRepo{})
			_, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !apperr.Is(err, apperr.ValidationFailed) {
				t.Fatalf("expected ValidationFailed, got %v", err)
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestAuthService_Login_BadCredentialsIndistinguishable(t *testing.T) {
	hash, _ := hashPassword("rightpass")
	known := &models.User{ID: "u-1", Email: "alice@example.com", PasswordHash: hash}

	users := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "alice@example.com" {
				return known, nil
			}
			return nil, nil
		},
	}
	svc := newTestAuthService(users)

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever1")
	_, _, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrongpass")

	for _, err := range []error{unknownErr, wrongErr} {
		if !apperr.Is(err, apperr.Unauthorized) {
			t.Fatalf("expected Unauthorized, got %v", err)
		}
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("unknown email and wrong password must read identically: %q vs %q",
			unknownErr.Error(), wrongErr.Error())
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, _ := hashPassword("rightpass")
	known := &models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com", PasswordHash: hash}
	users := &mockUsersRepo{
		GetByEmailFn: func(string) (*models.User, error) { return known, nil },
		GetByIDFn:    func(string) (*models.User, error) { return known, nil },
	}
	svc := newTestAuthService(users)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "rightpass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "u-1" || token == "" {
		t.Fatalf("unexpected result: user=%+v token=%q", user, token)
	}
	if _, err := svc.VerifyToken(context.Background(), token); err != nil {
		t.Fatalf("fresh token must verify: %v", err)
	}
}

func TestAuthService_VerifyToken_Rejections(t *testing.T) {
	users := &mockUsersRepo{
		GetByIDFn: func(string) (*models.User, error) { return nil, nil }, // user vanished
	}
	svc := newTestAuthService(users)

	expired := issueTestToken(t, "u-1", testSecret, -time.Minute)
	wrongKey := issueTestToken(t, "u-1", "other-secret", time.Hour)
	vanished := issueTestToken(t, "u-1", testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"expired", expired},
		{"wrong signing key", wrongKey},
		{"user no longer exists", vanished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(context.Background(), tt.token); !apperr.Is(err, apperr.Unauthorized) {
				t.Fatalf("expected Unauthorized, got %v", err)
			}
		})
	}
}

func issueTestToken(t *testing.T, userID, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Minute)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}
