package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/repository"
)

// WorklogInput carries the writable fields of a worklog. OwnerID is
// the client-supplied owner; for non-admin callers it is overridden by
// the policy with the caller's own linked employee.
type WorklogInput struct {
	WorkDate time.Time
	OwnerID  uint
	Hours    decimal.Decimal
	Meals    int
	Nights   int
}

// ListFilter narrows worklog listings. Non-admin callers are always
// scoped to their own records; OwnerID is honored for admins only.
type ListFilter struct {
	OwnerID *uint
	From    *time.Time
	To      *time.Time
}

// WorklogService wraps worklog CRUD with ownership resolution and the
// authorization policy. Every operation takes the caller's principal
// explicitly; there is no ambient identity.
type WorklogService interface {
	List(ctx context.Context, p auth.Principal, filter ListFilter) ([]model.Worklog, error)
	Get(ctx context.Context, p auth.Principal, id uint) (*model.Worklog, error)
	Create(ctx context.Context, p auth.Principal, input WorklogInput) (*model.Worklog, error)
	Update(ctx context.Context, p auth.Principal, id uint, input WorklogInput) (*model.Worklog, error)
	Delete(ctx context.Context, p auth.Principal, id uint) error
}

type worklogService struct {
	worklogs  repository.WorklogRepository
	employees repository.EmployeeRepository
	resolver  OwnershipResolver
}

// NewWorklogService creates a new worklog access service.
func NewWorklogService(worklogs repository.WorklogRepository, employees repository.EmployeeRepository, resolver OwnershipResolver) WorklogService {
	return &worklogService{
		worklogs:  worklogs,
		employees: employees,
		resolver:  resolver,
	}
}

// callerOwner resolves ownership for non-admin callers. Admins skip
// the lookup entirely; their access never depends on a link.
func (s *worklogService) callerOwner(ctx context.Context, p auth.Principal) (auth.OwnerRef, error) {
	if p.Role.IsAdmin() {
		return auth.OwnerRef{}, nil
	}
	return s.resolver.Resolve(ctx, p.Username)
}

// List returns the worklogs the caller may see. Admins get everything,
// optionally filtered; non-admins are scoped to their own employee and
// any client-supplied owner filter is ignored. An unlinked caller gets
// an empty set rather than an error.
func (s *worklogService) List(ctx context.Context, p auth.Principal, filter ListFilter) ([]model.Worklog, error) {
	owner, err := s.callerOwner(ctx, p)
	if err != nil {
		return nil, err
	}

	decision := auth.Decide(auth.Input{Role: p.Role, Owner: owner, Action: auth.ActionList})
	if !decision.Allowed {
		return []model.Worklog{}, nil
	}

	repoFilter := repository.WorklogFilter{From: filter.From, To: filter.To}
	if p.Role.IsAdmin() {
		repoFilter.EmployeeID = filter.OwnerID
	} else {
		repoFilter.EmployeeID = &owner.ID
	}

	worklogs, err := s.worklogs.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("list worklogs: %w", err)
	}
	return worklogs, nil
}

// Get returns one worklog. A missing record surfaces as NotFound only
// to admins; non-admins get the same Forbidden for missing and foreign
// records so a denial never confirms existence.
func (s *worklogService) Get(ctx context.Context, p auth.Principal, id uint) (*model.Worklog, error) {
	owner, err := s.callerOwner(ctx, p)
	if err != nil {
		return nil, err
	}

	worklog, err := s.worklogs.FindByID(ctx, id)
	if err != nil {
		return nil, s.missingErr(p, err)
	}

	decision := auth.Decide(auth.Input{
		Role:          p.Role,
		Owner:         owner,
		Action:        auth.ActionGet,
		TargetOwnerID: worklog.EmployeeID,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrForbidden
	}
	return worklog, nil
}

// Create persists a new worklog. Non-admins always write their own
// employee id regardless of the request; admins write the requested
// owner, which must reference an existing employee.
func (s *worklogService) Create(ctx context.Context, p auth.Principal, input WorklogInput) (*model.Worklog, error) {
	owner, err := s.callerOwner(ctx, p)
	if err != nil {
		return nil, err
	}

	decision := auth.Decide(auth.Input{
		Role:             p.Role,
		Owner:            owner,
		Action:           auth.ActionCreate,
		RequestedOwnerID: input.OwnerID,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrForbidden
	}

	if err := s.checkEmployee(ctx, decision.OwnerID); err != nil {
		return nil, err
	}

	worklog := &model.Worklog{
		WorkDate:   input.WorkDate,
		EmployeeID: decision.OwnerID,
		Hours:      input.Hours,
		Meals:      input.Meals,
		Nights:     input.Nights,
		CreatedBy:  p.Username,
	}
	if err := s.worklogs.Create(ctx, worklog); err != nil {
		return nil, fmt.Errorf("create worklog: %w", err)
	}
	return s.worklogs.FindByID(ctx, worklog.ID)
}

// Update rewrites an existing worklog under the same ownership rules
// as Get plus forced ownership on the write itself.
func (s *worklogService) Update(ctx context.Context, p auth.Principal, id uint, input WorklogInput) (*model.Worklog, error) {
	owner, err := s.callerOwner(ctx, p)
	if err != nil {
		return nil, err
	}

	existing, err := s.worklogs.FindByID(ctx, id)
	if err != nil {
		return nil, s.missingErr(p, err)
	}

	// An admin request that names no owner keeps the record where it
	// is; the admin's own identity never becomes the owner.
	requested := input.OwnerID
	if requested == 0 {
		requested = existing.EmployeeID
	}

	decision := auth.Decide(auth.Input{
		Role:             p.Role,
		Owner:            owner,
		Action:           auth.ActionUpdate,
		TargetOwnerID:    existing.EmployeeID,
		RequestedOwnerID: requested,
	})
	if !decision.Allowed {
		return nil, apperrors.ErrForbidden
	}

	if err := s.checkEmployee(ctx, decision.OwnerID); err != nil {
		return nil, err
	}

	existing.WorkDate = input.WorkDate
	existing.EmployeeID = decision.OwnerID
	existing.Hours = input.Hours
	existing.Meals = input.Meals
	existing.Nights = input.Nights
	if err := s.worklogs.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update worklog: %w", err)
	}
	return s.worklogs.FindByID(ctx, id)
}

// Delete removes a worklog under the same ownership rules as Get.
func (s *worklogService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	owner, err := s.callerOwner(ctx, p)
	if err != nil {
		return err
	}

	existing, err := s.worklogs.FindByID(ctx, id)
	if err != nil {
		return s.missingErr(p, err)
	}

	decision := auth.Decide(auth.Input{
		Role:          p.Role,
		Owner:         owner,
		Action:        auth.ActionDelete,
		TargetOwnerID: existing.EmployeeID,
	})
	if !decision.Allowed {
		return apperrors.ErrForbidden
	}

	if err := s.worklogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete worklog: %w", err)
	}
	return nil
}

// missingErr translates a record lookup failure. Admins learn that the
// record does not exist; everyone else gets the same Forbidden as for
// a foreign record.
func (s *worklogService) missingErr(p auth.Principal, err error) error {
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find worklog: %w", err)
	}
	if p.Role.IsAdmin() {
		return apperrors.ErrWorklogNotFound
	}
	return apperrors.ErrForbidden
}

// checkEmployee validates that the effective owner references an
// existing employee. Worklogs without an owner cannot exist.
func (s *worklogService) checkEmployee(ctx context.Context, employeeID uint) error {
	if employeeID == 0 {
		return apperrors.ErrInvalidOwnerID
	}
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOwnerNotFound
		}
		return fmt.Errorf("find employee: %w", err)
	}
	return nil
}
