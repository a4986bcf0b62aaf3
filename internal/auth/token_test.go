package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

func teacherUser() *models.PublicUser {
	teacherID := "teacher-1"
	return &models.PublicUser{
		ID:        "account-1",
		Email:     "teacher@classtrack.com",
		Name:      "Ms. Krabappel",
		Role:      models.RoleTeacher,
		TeacherID: &teacherID,
	}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m, err := NewTokenManager("secret", "attendance-service", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	token, expiresAt, err := m.Issue(teacherUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiresAt %v is not in the future", expiresAt)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.AccountID() != "account-1" || claims.Role != models.RoleTeacher || claims.TeacherID != "teacher-1" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.IsAdmin() {
		t.Errorf("teacher token reported as admin")
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m, _ := NewTokenManager("secret", "attendance-service", time.Hour)
	valid, _, _ := m.Issue(teacherUser())

	otherKey, _ := NewTokenManager("other-secret", "attendance-service", time.Hour)
	forged, _, _ := otherKey.Issue(teacherUser())

	otherIssuer, _ := NewTokenManager("secret", "someone-else", time.Hour)
	wrongIssuer, _, _ := otherIssuer.Issue(teacherUser())

	expiredManager, _ := NewTokenManager("secret", "attendance-service", time.Hour)
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := expiredManager.Issue(teacherUser())

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x", Issuer: "attendance-service"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"wrong key", forged},
		{"wrong issuer", wrongIssuer},
		{"expired", expired},
		{"alg none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", "x", time.Hour); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("error = %v, want ErrMissingSecret", err)
	}
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("teacher123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword(hash, "teacher123") {
		t.Errorf("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Errorf("wrong password accepted")
	}
	BurnPasswordCheck("anything")
}
