package repository

import (
	"context"

	"gorm.io/gorm"

	"worklog/internal/model"
)

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListByTeamID(ctx context.Context, teamID uint) ([]model.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository builds a GORM-backed repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Employee{}, id).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Preload("Team").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := r.db.WithContext(ctx).Preload("Team").Order("surname, name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) ListByTeamID(ctx context.Context, teamID uint) ([]model.Employee, error) {
	var employees []model.Employee
	if err := r.db.WithContext(ctx).Preload("Team").
		Where("team_id = ?", teamID).Order("surname, name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}
