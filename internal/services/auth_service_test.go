package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/testutil"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	svc := env.auth()
	ctx := context.Background()

	account, teacher := testutil.CreateTeacher(t, env.db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")
	admin := testutil.CreateAdmin(t, env.db, "Principal Skinner", "admin@classtrack.com", "admin123")

	resp, err := svc.Login(ctx, &validator.LoginRequest{Email: "Teacher@ClassTrack.com", Password: "teacher123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.User.ID != account.ID || resp.User.TeacherID == nil || *resp.User.TeacherID != teacher.ID {
		t.Errorf("user = %+v", resp.User)
	}

	claims, err := env.tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.AccountID() != account.ID || claims.TeacherID != teacher.ID || claims.Role != models.RoleTeacher {
		t.Errorf("claims = %+v", claims)
	}

	adminUser, err := svc.Authenticate(ctx, &validator.LoginRequest{Email: "admin@classtrack.com", Password: "admin123"})
	if err != nil || adminUser.ID != admin.ID || adminUser.TeacherID != nil {
		t.Errorf("admin Authenticate() = %+v, %v", adminUser, err)
	}
}

func TestAuthService_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	svc := env.auth()
	ctx := context.Background()

	testutil.CreateTeacher(t, env.db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")

	tests := []struct {
		name string
		req  *validator.LoginRequest
	}{
		{"wrong password", &validator.LoginRequest{Email: "teacher@classtrack.com", Password: "nope"}},
		{"unknown email", &validator.LoginRequest{Email: "ghost@classtrack.com", Password: "teacher123"}},
	}
	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
			}
			if ErrorCode(err) != CodeInvalidCredentials {
				t.Errorf("ErrorCode() = %s", ErrorCode(err))
			}
			messages = append(messages, err.Error())
		})
	}
	if len(messages) == 2 && messages[0] != messages[1] {
		t.Errorf("failure messages differ: %q vs %q", messages[0], messages[1])
	}
}

func TestAuthService_GetUser(t *testing.T) {
	env := newTestEnv(t)
	svc := env.auth()
	ctx := context.Background()

	account, _ := testutil.CreateTeacher(t, env.db, "Ms. Hoover", "hoover@classtrack.com", "teacher123")

	user, err := svc.GetUser(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Email != "hoover@classtrack.com" || user.TeacherID == nil {
		t.Errorf("user = %+v", user)
	}

	if _, err := svc.GetUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
}
