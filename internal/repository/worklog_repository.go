package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"worklog/internal/model"
)

// WorklogFilter narrows worklog listings. Nil fields are ignored.
type WorklogFilter struct {
	EmployeeID *uint
	From       *time.Time
	To         *time.Time
}

// WorklogRepository defines worklog persistence operations.
type WorklogRepository interface {
	Create(ctx context.Context, worklog *model.Worklog) error
	Update(ctx context.Context, worklog *model.Worklog) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Worklog, error)
	List(ctx context.Context, filter WorklogFilter) ([]model.Worklog, error)
}

type worklogRepository struct {
	db *gorm.DB
}

// NewWorklogRepository builds a GORM-backed repository.
func NewWorklogRepository(db *gorm.DB) WorklogRepository {
	return &worklogRepository{db: db}
}

func (r *worklogRepository) Create(ctx context.Context, worklog *model.Worklog) error {
	return r.db.WithContext(ctx).Create(worklog).Error
}

func (r *worklogRepository) Update(ctx context.Context, worklog *model.Worklog) error {
	return r.db.WithContext(ctx).Save(worklog).Error
}

func (r *worklogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Worklog{}, id).Error
}

func (r *worklogRepository) FindByID(ctx context.Context, id uint) (*model.Worklog, error) {
	var worklog model.Worklog
	if err := r.db.WithContext(ctx).Preload("Employee").First(&worklog, id).Error; err != nil {
		return nil, err
	}
	return &worklog, nil
}

func (r *worklogRepository) List(ctx context.Context, filter WorklogFilter) ([]model.Worklog, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.From != nil {
		q = q.Where("work_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("work_date <= ?", *filter.To)
	}

	var worklogs []model.Worklog
	if err := q.Order("work_date, id").Find(&worklogs).Error; err != nil {
		return nil, err
	}
	return worklogs, nil
}
