package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when an email is unknown so both failure paths cost one bcrypt run.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("attendance-service-dummy"), bcrypt.DefaultCost)

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck runs a comparison that always fails.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
