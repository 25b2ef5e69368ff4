package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/logger"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/queue"
	"github.com/tokogitar/tokogitar/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetService runs the OTP password reset flow.
type ResetService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	queueClient *queue.Client
	email       *EmailService
}

// NewResetService creates the reset service.
func NewResetService(cfg *config.Config, userRepo repository.UserRepository, resetRepo repository.PasswordResetRepository, queueClient *queue.Client, email *EmailService) *ResetService {
	return &ResetService{
		cfg:         cfg,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		queueClient: queueClient,
		email:       email,
	}
}

// RequestCode generates and mails a fresh OTP for the account.
// Sends are capped per rolling hour to keep the mailbox from being flooded.
func (s *ResetService) RequestCode(email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotRegistered
	}

	now := time.Now()
	sent, err := s.resetRepo.CountSentSince(normalized, constants.ResetPurposePassword, now.Add(-time.Hour))
	if err != nil {
		return err
	}
	if sent >= int64(s.maxPerHour()) {
		return s.rateLimitError(normalized, now)
	}

	code, err := randomNumericCode(s.codeLength())
	if err != nil {
		return err
	}

	reset := &models.PasswordReset{
		Email:     normalized,
		UserID:    user.ID,
		Purpose:   constants.ResetPurposePassword,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(s.expireMinutes()) * time.Minute),
		SentAt:    now,
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	// Mail delivery goes through the queue so the HTTP request never waits
	// on SMTP. Without a queue the mail is sent inline.
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueResetCodeEmail(queue.ResetCodeEmailPayload{Email: normalized, Code: code}); err != nil {
			logger.Warnw("reset_code_enqueue_failed", "email", normalized, "error", err)
			return err
		}
		return nil
	}
	if s.email == nil {
		return ErrEmailServiceNotConfigured
	}
	return s.email.SendResetCode(normalized, code)
}

// resetRateLimitError carries the remaining cooldown so the customer
// knows when the next request will go through.
type resetRateLimitError struct {
	retryAfterMinutes int
}

func (e resetRateLimitError) Error() string {
	return fmt.Sprintf("permintaan kode OTP terlalu sering, coba lagi dalam %d menit", e.retryAfterMinutes)
}

func (e resetRateLimitError) Is(target error) bool {
	return target == ErrResetCodeRateLimit
}

// rateLimitError reports how long until the oldest in-window request
// ages out of the rolling hour.
func (s *ResetService) rateLimitError(email string, now time.Time) error {
	oldest, err := s.resetRepo.OldestSentSince(email, constants.ResetPurposePassword, now.Add(-time.Hour))
	if err != nil || oldest == nil {
		return ErrResetCodeRateLimit
	}
	wait := oldest.Add(time.Hour).Sub(now)
	minutes := int((wait + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return resetRateLimitError{retryAfterMinutes: minutes}
}

// VerifyCode checks the submitted digits without consuming the code.
func (s *ResetService) VerifyCode(email, code string) error {
	_, err := s.lookupActiveCode(email, code)
	return err
}

// ResetPassword consumes a valid code and replaces the password in one
// transaction, so a crash can never burn the code without the new password.
// A confirmation mismatch is rejected before the code is even looked at.
func (s *ResetService) ResetPassword(email, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	reset, err := s.lookupActiveCode(email, code)
	if err != nil {
		return err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.resetRepo.WithTx(tx).MarkUsed(reset.ID, now); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).UpdatePasswordHash(reset.UserID, string(hash))
	})
}

func (s *ResetService) lookupActiveCode(email, code string) (*models.PasswordReset, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	reset, err := s.resetRepo.GetLatestActive(normalized, constants.ResetPurposePassword, time.Now())
	if err != nil {
		return nil, err
	}
	if reset == nil {
		return nil, ErrResetCodeExpired
	}
	if reset.AttemptCount >= s.maxVerifyTries() {
		return nil, ErrResetCodeInvalid
	}
	if reset.Code != code {
		if err := s.resetRepo.IncrementAttempts(reset.ID); err != nil {
			logger.Warnw("reset_attempt_count_update_failed", "reset_id", reset.ID, "error", err)
		}
		return nil, ErrResetCodeInvalid
	}
	return reset, nil
}

func (s *ResetService) expireMinutes() int {
	if s.cfg != nil && s.cfg.Email.ResetCode.ExpireMinutes > 0 {
		return s.cfg.Email.ResetCode.ExpireMinutes
	}
	return 10
}

func (s *ResetService) maxPerHour() int {
	if s.cfg != nil && s.cfg.Email.ResetCode.MaxPerHour > 0 {
		return s.cfg.Email.ResetCode.MaxPerHour
	}
	return 5
}

func (s *ResetService) codeLength() int {
	if s.cfg != nil && s.cfg.Email.ResetCode.Length > 0 {
		return s.cfg.Email.ResetCode.Length
	}
	return 6
}

func (s *ResetService) maxVerifyTries() int {
	if s.cfg != nil && s.cfg.Email.ResetCode.MaxVerifyTries > 0 {
		return s.cfg.Email.ResetCode.MaxVerifyTries
	}
	return 5
}

func randomNumericCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
