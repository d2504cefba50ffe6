package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockAccountRepository)
		expectedError error
		expectedRole  auth.Role
	}{
		{
			name:     "successful admin login",
			username: "admin",
			password: "admin123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.Account{
					ID:           1,
					Username:     "admin",
					PasswordHash: string(hashed),
					Role:         auth.RoleAdmin,
				}, nil)
			},
			expectedRole: auth.RoleAdmin,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "admin123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.Account{
					ID:           1,
					Username:     "admin",
					PasswordHash: string(hashed),
					Role:         auth.RoleAdmin,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccounts := new(MockAccountRepository)
			mockEmployees := new(MockEmployeeRepository)
			tt.setupMock(mockAccounts)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockAccounts, mockEmployees, jwtService)

			token, role, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRole, role)

				// The issued token must validate back to the same identity.
				principal, err := jwtService.Validate(token)
				assert.NoError(t, err)
				assert.Equal(t, tt.username, principal.Username)
				assert.Equal(t, tt.expectedRole, principal.Role)
			}

			mockAccounts.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	admin := auth.Principal{Username: "admin", Role: auth.RoleAdmin}
	employeeID := uint(4)

	tests := []struct {
		name          string
		principal     auth.Principal
		input         RegisterInput
		setupMock     func(*MockAccountRepository, *MockEmployeeRepository)
		expectedError error
	}{
		{
			name:      "non-admin denied",
			principal: auth.Principal{Username: "user", Role: auth.RoleUser},
			input:     RegisterInput{Username: "new", Password: "secret1", Role: auth.RoleUser},
			setupMock: func(ma *MockAccountRepository, me *MockEmployeeRepository) {},

			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "username taken",
			principal: admin,
			input:     RegisterInput{Username: "admin", Password: "secret1", Role: auth.RoleUser},
			setupMock: func(ma *MockAccountRepository, me *MockEmployeeRepository) {
				ma.On("ExistsByUsername", mock.Anything, "admin").Return(true, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:      "owner not found",
			principal: admin,
			input:     RegisterInput{Username: "new", Password: "secret1", Role: auth.RoleUser, EmployeeID: &employeeID},
			setupMock: func(ma *MockAccountRepository, me *MockEmployeeRepository) {
				ma.On("ExistsByUsername", mock.Anything, "new").Return(false, nil)
				me.On("FindByID", mock.Anything, employeeID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrOwnerNotFound,
		},
		{
			name:      "owner already linked",
			principal: admin,
			input:     RegisterInput{Username: "new", Password: "secret1", Role: auth.RoleUser, EmployeeID: &employeeID},
			setupMock: func(ma *MockAccountRepository, me *MockEmployeeRepository) {
				ma.On("ExistsByUsername", mock.Anything, "new").Return(false, nil)
				me.On("FindByID", mock.Anything, employeeID).Return(&model.Employee{ID: employeeID}, nil)
				ma.On("FindByEmployeeID", mock.Anything, employeeID).Return(&model.Account{ID: 2}, nil)
			},
			expectedError: apperrors.ErrOwnerAlreadyLinked,
		},
		{
			name:      "successful registration with link",
			principal: admin,
			input:     RegisterInput{Username: "new", Password: "secret1", Role: auth.RoleUser, EmployeeID: &employeeID},
			setupMock: func(ma *MockAccountRepository, me *MockEmployeeRepository) {
				ma.On("ExistsByUsername", mock.Anything, "new").Return(false, nil)
				me.On("FindByID", mock.Anything, employeeID).Return(&model.Employee{ID: employeeID}, nil)
				ma.On("FindByEmployeeID", mock.Anything, employeeID).Return(nil, gorm.ErrRecordNotFound)
				ma.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
					return a.Username == "new" &&
						a.Role == auth.RoleUser &&
						a.EmployeeID != nil && *a.EmployeeID == employeeID &&
						bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret1")) == nil
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccounts := new(MockAccountRepository)
			mockEmployees := new(MockEmployeeRepository)
			tt.setupMock(mockAccounts, mockEmployees)

			svc := NewAuthService(mockAccounts, mockEmployees, auth.NewJWTService("test-secret"))
			err := svc.Register(context.Background(), tt.principal, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockAccounts.AssertExpectations(t)
			mockEmployees.AssertExpectations(t)
		})
	}
}
