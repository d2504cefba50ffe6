package repository

import (
	"context"

	"gorm.io/gorm"

	"worklog/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByEmployeeID(ctx context.Context, employeeID uint) (*model.Account, error)
	Count(ctx context.Context) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository builds a GORM-backed repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) FindByEmployeeID(ctx context.Context, employeeID uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
