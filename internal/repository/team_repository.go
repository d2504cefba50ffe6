package repository

import (
	"context"

	"gorm.io/gorm"

	"worklog/internal/model"
)

// TeamRepository defines team persistence operations.
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Team, error)
	FindByName(ctx context.Context, name string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository builds a GORM-backed repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Team{}, id).Error
}

func (r *teamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByName(ctx context.Context, name string) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := r.db.WithContext(ctx).Order("name").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
