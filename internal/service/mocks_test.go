package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"worklog/internal/model"
	"worklog/internal/repository"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindByEmployeeID(ctx context.Context, employeeID uint) (*model.Account, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListByTeamID(ctx context.Context, teamID uint) ([]model.Employee, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

// MockWorklogRepository is a mock implementation of WorklogRepository.
type MockWorklogRepository struct {
	mock.Mock
}

func (m *MockWorklogRepository) Create(ctx context.Context, worklog *model.Worklog) error {
	args := m.Called(ctx, worklog)
	return args.Error(0)
}

func (m *MockWorklogRepository) Update(ctx context.Context, worklog *model.Worklog) error {
	args := m.Called(ctx, worklog)
	return args.Error(0)
}

func (m *MockWorklogRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorklogRepository) FindByID(ctx context.Context, id uint) (*model.Worklog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Worklog), args.Error(1)
}

func (m *MockWorklogRepository) List(ctx context.Context, filter repository.WorklogFilter) ([]model.Worklog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Worklog), args.Error(1)
}

// MockTeamRepository is a mock implementation of TeamRepository.
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamRepository) FindByName(ctx context.Context, name string) (*model.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Team), args.Error(1)
}
