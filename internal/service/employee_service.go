package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/repository"
)

// EmployeeInput carries the writable fields of an employee.
type EmployeeInput struct {
	Name    string
	Surname string
	TeamID  uint
}

// EmployeeService handles employee CRUD. The whole surface is
// admin-only; regular users never browse the employee directory.
type EmployeeService interface {
	List(ctx context.Context, p auth.Principal, teamID *uint) ([]model.Employee, error)
	Get(ctx context.Context, p auth.Principal, id uint) (*model.Employee, error)
	Create(ctx context.Context, p auth.Principal, input EmployeeInput) (*model.Employee, error)
	Update(ctx context.Context, p auth.Principal, id uint, input EmployeeInput) (*model.Employee, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type employeeService struct {
	repo  repository.EmployeeRepository
	teams repository.TeamRepository
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(repo repository.EmployeeRepository, teams repository.TeamRepository) EmployeeService {
	return &employeeService{
		repo:  repo,
		teams: teams,
	}
}

func (s *employeeService) List(ctx context.Context, p auth.Principal, teamID *uint) ([]model.Employee, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var (
		employees []model.Employee
		err       error
	)
	if teamID != nil {
		employees, err = s.repo.ListByTeamID(ctx, *teamID)
	} else {
		employees, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) Get(ctx context.Context, p auth.Principal, id uint) (*model.Employee, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.find(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, p auth.Principal, input EmployeeInput) (*model.Employee, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if err := s.checkTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	employee := &model.Employee{
		Name:    input.Name,
		Surname: input.Surname,
		TeamID:  input.TeamID,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return s.find(ctx, employee.ID)
}

func (s *employeeService) Update(ctx context.Context, p auth.Principal, id uint, input EmployeeInput) (*model.Employee, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	employee.Name = input.Name
	employee.Surname = input.Surname
	employee.TeamID = input.TeamID
	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return s.find(ctx, id)
}

func (s *employeeService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if !p.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (s *employeeService) find(ctx context.Context, id uint) (*model.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return employee, nil
}

func (s *employeeService) checkTeam(ctx context.Context, teamID uint) error {
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidTeamRef
		}
		return fmt.Errorf("find team: %w", err)
	}
	return nil
}
