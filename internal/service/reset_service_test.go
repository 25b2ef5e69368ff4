package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupResetServiceTest(t *testing.T) (*ResetService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reset_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PasswordReset{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Email.ResetCode = config.ResetCodeConfig{
		ExpireMinutes:  10,
		MaxPerHour:     2,
		Length:         6,
		MaxVerifyTries: 3,
	}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true}

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	queueClient, _ := queue.NewClient(nil)
	email := NewEmailService(&cfg.Email)
	return NewResetService(cfg, userRepo, resetRepo, queueClient, email), db
}

func seedResetUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("lamabanget1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user := &models.User{
		Name:         "Budi",
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func latestResetCode(t *testing.T, db *gorm.DB, email string) *models.PasswordReset {
	t.Helper()
	var reset models.PasswordReset
	if err := db.Where("email = ?", email).Order("id DESC").First(&reset).Error; err != nil {
		t.Fatalf("load reset row failed: %v", err)
	}
	return &reset
}

func TestRequestCodeUnknownEmail(t *testing.T) {
	svc, _ := setupResetServiceTest(t)
	if err := svc.RequestCode("tidakada@example.com"); !errors.Is(err, ErrEmailNotRegistered) {
		t.Fatalf("expected ErrEmailNotRegistered, got %v", err)
	}
}

func TestRequestCodeRateLimited(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	seedResetUser(t, db, "budi@example.com")

	// Queue disabled and SMTP disabled: the inline send fails but the
	// code row is still written first.
	for i := 0; i < 2; i++ {
		err := svc.RequestCode("budi@example.com")
		if err != nil && !errors.Is(err, ErrEmailServiceDisabled) {
			t.Fatalf("request %d failed unexpectedly: %v", i, err)
		}
	}
	var count int64
	if err := db.Model(&models.PasswordReset{}).Count(&count).Error; err != nil {
		t.Fatalf("count resets failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 code rows, got %d", count)
	}

	err := svc.RequestCode("budi@example.com")
	if !errors.Is(err, ErrResetCodeRateLimit) {
		t.Fatalf("expected ErrResetCodeRateLimit, got %v", err)
	}
	// Both sends happened moments ago, so the rolling hour frees up in
	// 60 minutes and the message says so.
	if !strings.Contains(err.Error(), "coba lagi dalam 60 menit") {
		t.Fatalf("expected cooldown minutes in message, got %q", err.Error())
	}
}

func TestRequestCodeRateLimitCooldownShrinks(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	// Two requests already in the window, the older one 45 minutes ago:
	// the limit frees up when it ages out, 15 minutes from now.
	for _, age := range []time.Duration{45 * time.Minute, 5 * time.Minute} {
		reset := &models.PasswordReset{
			Email:     user.Email,
			UserID:    user.ID,
			Purpose:   constants.ResetPurposePassword,
			Code:      "123456",
			ExpiresAt: time.Now().Add(10 * time.Minute),
			SentAt:    time.Now().Add(-age),
		}
		if err := db.Create(reset).Error; err != nil {
			t.Fatalf("create reset failed: %v", err)
		}
	}

	err := svc.RequestCode("budi@example.com")
	if !errors.Is(err, ErrResetCodeRateLimit) {
		t.Fatalf("expected ErrResetCodeRateLimit, got %v", err)
	}
	if !strings.Contains(err.Error(), "coba lagi dalam 15 menit") {
		t.Fatalf("expected 15 minute cooldown, got %q", err.Error())
	}
}

func TestVerifyCodeWrongDigitsCapped(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	reset := &models.PasswordReset{
		Email:     user.Email,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		SentAt:    time.Now(),
	}
	if err := db.Create(reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.VerifyCode(user.Email, "000000"); !errors.Is(err, ErrResetCodeInvalid) {
			t.Fatalf("attempt %d: expected ErrResetCodeInvalid, got %v", i, err)
		}
	}

	// After the attempt cap, even the right code is refused.
	if err := svc.VerifyCode(user.Email, "123456"); !errors.Is(err, ErrResetCodeInvalid) {
		t.Fatalf("expected ErrResetCodeInvalid after attempt cap, got %v", err)
	}
}

func TestVerifyCodeExpired(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	reset := &models.PasswordReset{
		Email:     user.Email,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		SentAt:    time.Now().Add(-20 * time.Minute),
	}
	if err := db.Create(reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	if err := svc.VerifyCode(user.Email, "123456"); !errors.Is(err, ErrResetCodeExpired) {
		t.Fatalf("expected ErrResetCodeExpired, got %v", err)
	}
}

func TestResetPasswordConsumesCode(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	reset := &models.PasswordReset{
		Email:     user.Email,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      "654321",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		SentAt:    time.Now(),
	}
	if err := db.Create(reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	if err := svc.ResetPassword(user.Email, "654321", "barubanget9", "barubanget9"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	var reloadedUser models.User
	if err := db.First(&reloadedUser, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reloadedUser.PasswordHash), []byte("barubanget9")); err != nil {
		t.Fatalf("new password does not match: %v", err)
	}

	used := latestResetCode(t, db, user.Email)
	if used.UsedAt == nil {
		t.Fatalf("expected used_at to be set")
	}

	// Consumed code cannot be replayed.
	if err := svc.ResetPassword(user.Email, "654321", "lainlagi123", "lainlagi123"); err == nil {
		t.Fatalf("expected error for consumed code")
	}
}

func TestResetPasswordRejectsMismatchedConfirmation(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	reset := &models.PasswordReset{
		Email:     user.Email,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      "777888",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		SentAt:    time.Now(),
	}
	if err := db.Create(reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	err := svc.ResetPassword(user.Email, "777888", "barubanget9", "bedabanget9")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	// A mismatch happens before the code is even looked at, so it burns
	// neither the code nor a verify attempt.
	row := latestResetCode(t, db, user.Email)
	if row.UsedAt != nil || row.AttemptCount != 0 {
		t.Fatalf("mismatch must not touch the code row: used_at=%v attempts=%d", row.UsedAt, row.AttemptCount)
	}
	if err := svc.ResetPassword(user.Email, "777888", "barubanget9", "barubanget9"); err != nil {
		t.Fatalf("reset after mismatch failed: %v", err)
	}
}

func TestResetPasswordEnforcesPolicy(t *testing.T) {
	svc, db := setupResetServiceTest(t)
	user := seedResetUser(t, db, "budi@example.com")

	reset := &models.PasswordReset{
		Email:     user.Email,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      "111222",
		ExpiresAt: time.Now().Add(10 * time.Minute),
		SentAt:    time.Now(),
	}
	if err := db.Create(reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	if err := svc.ResetPassword(user.Email, "111222", "x", "x"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	// A rejected password must not burn the code.
	if err := svc.ResetPassword(user.Email, "111222", "layakdipakai8", "layakdipakai8"); err != nil {
		t.Fatalf("reset with valid password failed: %v", err)
	}
}
