package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"worklog/internal/auth"
	"worklog/internal/cache"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/repository"
)

const (
	teamListCacheKey = "teams"
	teamCacheTTL     = 5 * time.Minute
)

// TeamService handles team CRUD. Reads are open to any authenticated
// caller; writes require an admin principal.
type TeamService interface {
	List(ctx context.Context) ([]model.Team, error)
	Get(ctx context.Context, id uint) (*model.Team, error)
	Create(ctx context.Context, p auth.Principal, name string) (*model.Team, error)
	Update(ctx context.Context, p auth.Principal, id uint, name string) (*model.Team, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type teamService struct {
	repo  repository.TeamRepository
	cache *cache.Client
}

// NewTeamService creates a new team service.
func NewTeamService(repo repository.TeamRepository, cache *cache.Client) TeamService {
	return &teamService{
		repo:  repo,
		cache: cache,
	}
}

// List returns all teams, served from cache when possible.
func (s *teamService) List(ctx context.Context) ([]model.Team, error) {
	if data, _ := s.cache.Get(ctx, teamListCacheKey); data != nil {
		var cached []model.Team
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	if payload, err := json.Marshal(teams); err == nil {
		_ = s.cache.Set(ctx, teamListCacheKey, payload, teamCacheTTL)
	}
	return teams, nil
}

// Get returns one team by id.
func (s *teamService) Get(ctx context.Context, id uint) (*model.Team, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return team, nil
}

// Create adds a team with a unique name.
func (s *teamService) Create(ctx context.Context, p auth.Principal, name string) (*model.Team, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, apperrors.ErrTeamNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check team name: %w", err)
	}

	team := &model.Team{Name: name}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	_ = s.cache.Delete(ctx, teamListCacheKey)
	return team, nil
}

// Update renames a team, keeping names unique.
func (s *teamService) Update(ctx context.Context, p auth.Principal, id uint, name string) (*model.Team, error) {
	if !p.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if team.Name != name {
		if _, err := s.repo.FindByName(ctx, name); err == nil {
			return nil, apperrors.ErrTeamNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check team name: %w", err)
		}
	}

	team.Name = name
	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}

	_ = s.cache.Delete(ctx, teamListCacheKey)
	return team, nil
}

// Delete removes a team.
func (s *teamService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if !p.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	_ = s.cache.Delete(ctx, teamListCacheKey)
	return nil
}
