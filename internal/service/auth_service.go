package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields of an account registration.
type RegisterInput struct {
	Username   string
	Password   string
	Role       auth.Role
	EmployeeID *uint
}

// AuthService authenticates credentials and registers accounts.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, role auth.Role, err error)
	Register(ctx context.Context, p auth.Principal, input RegisterInput) error
}

type authService struct {
	accounts   repository.AccountRepository
	employees  repository.EmployeeRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts repository.AccountRepository, employees repository.EmployeeRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		accounts:   accounts,
		employees:  employees,
		jwtService: jwtService,
	}
}

// Login verifies the username/password pair and issues a token. Unknown
// usernames and wrong passwords produce the same error so callers
// cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, username, password string) (string, auth.Role, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(account.Username, account.Role)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}

	return token, account.Role, nil
}

// Register creates a new account, optionally linked to an employee.
// Only admins may register accounts.
func (s *authService) Register(ctx context.Context, p auth.Principal, input RegisterInput) error {
	if !p.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}

	taken, err := s.accounts.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return apperrors.ErrUsernameTaken
	}

	if input.EmployeeID != nil {
		if _, err := s.employees.FindByID(ctx, *input.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrOwnerNotFound
			}
			return fmt.Errorf("find employee: %w", err)
		}

		// One account per employee.
		if _, err := s.accounts.FindByEmployeeID(ctx, *input.EmployeeID); err == nil {
			return apperrors.ErrOwnerAlreadyLinked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check employee link: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Username:     input.Username,
		PasswordHash: string(hashed),
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
