package service

import (
	"fmt"
	"unicode"

	"github.com/tokogitar/tokogitar/internal/config"
)

type passwordPolicyError struct {
	reason string
}

func (e passwordPolicyError) Error() string {
	return e.reason
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireLetter &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{reason: fmt.Sprintf("password minimal %d karakter", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireLetter && !hasUpper && !hasLower {
		return passwordPolicyError{reason: "password harus memuat huruf"}
	}
	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{reason: "password harus memuat huruf besar"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{reason: "password harus memuat huruf kecil"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{reason: "password harus memuat angka"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{reason: "password harus memuat karakter khusus"}
	}

	return nil
}
