package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"worklog/internal/auth"
	"worklog/internal/repository"
)

// OwnershipResolver maps an authenticated username to the one employee
// that account acts as. It is the single source of truth for "which
// records does this identity own" and is consulted on every non-admin
// worklog operation. A missing account or an unlinked one both resolve
// to the zero OwnerRef, which the policy treats as no access at all.
type OwnershipResolver interface {
	Resolve(ctx context.Context, username string) (auth.OwnerRef, error)
}

type ownershipResolver struct {
	accounts repository.AccountRepository
}

// NewOwnershipResolver creates a resolver backed by the account store.
func NewOwnershipResolver(accounts repository.AccountRepository) OwnershipResolver {
	return &ownershipResolver{accounts: accounts}
}

func (r *ownershipResolver) Resolve(ctx context.Context, username string) (auth.OwnerRef, error) {
	account, err := r.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.OwnerRef{}, nil
		}
		return auth.OwnerRef{}, fmt.Errorf("resolve account %q: %w", username, err)
	}
	if account.EmployeeID == nil {
		return auth.OwnerRef{}, nil
	}
	return auth.OwnerRef{ID: *account.EmployeeID, Linked: true}, nil
}
