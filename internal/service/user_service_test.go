package service

import (
	"context"
	"testing"
	"time"

	"quiz-backend/internal/auth"
)

func newUserFixture(t *testing.T) (*UserService, *memUserStore) {
	t.Helper()
	users := newMemUserStore()
	authService := auth.NewService("test-secret", time.Hour)
	return NewUserService(users, authService), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Username:   "alice",
		Email:      "Alice@Example.com",
		Password:   "correct-horse",
		GradeLevel: 8,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Error("register should issue a token")
	}
	if registered.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized lowercase", registered.User.Email)
	}
	if registered.User.PasswordHash == "correct-horse" {
		t.Error("password stored unhashed")
	}

	// Login is case-insensitive on email.
	loggedIn, err := svc.Login(ctx, LoginRequest{Email: "ALICE@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Errorf("login user = %s, want %s", loggedIn.User.ID, registered.User.ID)
	}
	if loggedIn.Token == "" {
		t.Error("login should issue a token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	req := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct-horse", GradeLevel: 8}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	req.Username = "alice2"
	if _, err := svc.Register(ctx, req); Code(err) != "EMAIL_TAKEN" {
		t.Fatalf("duplicate register: got %v, want EMAIL_TAKEN", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct-horse", GradeLevel: 8,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "alice@example.com", Password: "wrong"}},
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "correct-horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.req); Code(err) != "INVALID_CREDENTIALS" {
				t.Errorf("got %v, want INVALID_CREDENTIALS", err)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct-horse", GradeLevel: 8,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.GetProfile(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.Username != "alice" || user.GradeLevel != 8 {
		t.Errorf("profile = (%s, %d), want (alice, 8)", user.Username, user.GradeLevel)
	}

	if _, err := svc.GetProfile(ctx, "missing"); Code(err) != "USER_NOT_FOUND" {
		t.Errorf("missing profile: got %v, want USER_NOT_FOUND", err)
	}
}
