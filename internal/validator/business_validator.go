package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

const bcryptMaxBytes = 72

// registerBusinessRules registers the custom tags used by the request DTOs.
func (v *Validator) registerBusinessRules() {
	// YYYY-MM-DD calendar date
	v.validate.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) != len(models.DateLayout) {
			return false
		}
		_, err := time.Parse(models.DateLayout, value)
		return err == nil
	})

	v.validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).IsValid()
	})

	// bcrypt hashes at most 72 bytes, not runes
	v.validate.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})

	// rejects whitespace-only strings that pass "required"
	v.validate.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
