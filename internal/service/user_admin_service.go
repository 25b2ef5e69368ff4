package service

import (
	"strings"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/models"
	"github.com/tokogitar/tokogitar/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserAdminService is account management for the back office.
type UserAdminService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAdminService creates the user admin service.
func NewUserAdminService(cfg *config.Config, userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{cfg: cfg, userRepo: userRepo}
}

func validRole(role string) bool {
	switch role {
	case constants.RoleCustomer, constants.RoleGudang, constants.RoleAdmin:
		return true
	}
	return false
}

// ListUsers returns accounts for the back office.
func (s *UserAdminService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetUser returns one account.
func (s *UserAdminService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UserCreateInput carries the fields for a staff-created account.
type UserCreateInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser creates an account with an explicit role.
func (s *UserAdminService) CreateUser(input UserCreateInput) (*models.User, error) {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if !validRole(role) {
		return nil, ErrRoleInvalid
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserUpdateInput carries the editable account fields. Empty password
// leaves the current one in place.
type UserUpdateInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateUser edits an account.
func (s *UserAdminService) UpdateUser(id uint, input UserUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if input.Name != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if input.Phone != "" {
		user.Phone = strings.TrimSpace(input.Phone)
	}
	if input.Role != "" {
		role := strings.ToUpper(strings.TrimSpace(input.Role))
		if !validRole(role) {
			return nil, ErrRoleInvalid
		}
		user.Role = role
	}
	if input.Password != "" {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes an account. The caller cannot delete itself,
// so an admin cannot lock the back office shut by accident.
func (s *UserAdminService) DeleteUser(id, actorID uint) error {
	if id == actorID {
		return ErrRoleInvalid
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}
