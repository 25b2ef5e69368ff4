package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token parsing.
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// JWTClaims carries the authenticated identity.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for the user.
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a token and returns its claims.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token tidak valid")
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a customer account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	normalized, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = resolveNameFromEmail(normalized)
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        normalized,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         constants.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns the user with a signed token.
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// GetUserByID fetches the account behind a token.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func resolveNameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}
