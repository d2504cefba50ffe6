package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
	"worklog/internal/model"
	"worklog/internal/repository"
)

var (
	adminPrincipal = auth.Principal{Username: "admin", Role: auth.RoleAdmin}
	alicePrincipal = auth.Principal{Username: "alice", Role: auth.RoleUser}
	bobPrincipal   = auth.Principal{Username: "bob", Role: auth.RoleUser}
)

func linkedAccount(username string, employeeID uint) *model.Account {
	return &model.Account{Username: username, Role: auth.RoleUser, EmployeeID: &employeeID}
}

// newWorklogService wires the service with a real resolver over the
// mocked account repository, so link resolution is exercised end to end.
func newWorklogService(worklogs *MockWorklogRepository, employees *MockEmployeeRepository, accounts *MockAccountRepository) WorklogService {
	return NewWorklogService(worklogs, employees, NewOwnershipResolver(accounts))
}

func TestWorklogService_List(t *testing.T) {
	aliceID := uint(1)
	otherID := uint(2)
	sample := []model.Worklog{{ID: 10, EmployeeID: aliceID}}

	tests := []struct {
		name      string
		principal auth.Principal
		filter    ListFilter
		setupMock func(*MockWorklogRepository, *MockAccountRepository)
		expected  int
	}{
		{
			name:      "user scoped to own employee",
			principal: alicePrincipal,
			filter:    ListFilter{OwnerID: &otherID}, // ignored for non-admins
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "alice").Return(linkedAccount("alice", aliceID), nil)
				mw.On("List", mock.Anything, mock.MatchedBy(func(f repository.WorklogFilter) bool {
					return f.EmployeeID != nil && *f.EmployeeID == aliceID
				})).Return(sample, nil)
			},
			expected: 1,
		},
		{
			name:      "unlinked user gets empty set",
			principal: bobPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "bob").Return(&model.Account{Username: "bob", Role: auth.RoleUser}, nil)
			},
			expected: 0,
		},
		{
			name:      "admin sees everything unfiltered",
			principal: adminPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("List", mock.Anything, mock.MatchedBy(func(f repository.WorklogFilter) bool {
					return f.EmployeeID == nil
				})).Return(sample, nil)
			},
			expected: 1,
		},
		{
			name:      "admin owner filter passed through",
			principal: adminPrincipal,
			filter:    ListFilter{OwnerID: &otherID},
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("List", mock.Anything, mock.MatchedBy(func(f repository.WorklogFilter) bool {
					return f.EmployeeID != nil && *f.EmployeeID == otherID
				})).Return([]model.Worklog{}, nil)
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorklogs := new(MockWorklogRepository)
			mockEmployees := new(MockEmployeeRepository)
			mockAccounts := new(MockAccountRepository)
			tt.setupMock(mockWorklogs, mockAccounts)

			svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
			worklogs, err := svc.List(context.Background(), tt.principal, tt.filter)

			assert.NoError(t, err)
			assert.NotNil(t, worklogs)
			assert.Len(t, worklogs, tt.expected)
			mockWorklogs.AssertExpectations(t)
			mockAccounts.AssertExpectations(t)
		})
	}
}

func TestWorklogService_Get(t *testing.T) {
	aliceID := uint(1)
	record := &model.Worklog{ID: 10, EmployeeID: aliceID}

	tests := []struct {
		name          string
		principal     auth.Principal
		setupMock     func(*MockWorklogRepository, *MockAccountRepository)
		expectedError error
	}{
		{
			name:      "owner reads own record",
			principal: alicePrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "alice").Return(linkedAccount("alice", aliceID), nil)
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
			},
		},
		{
			name:      "foreign record is forbidden",
			principal: bobPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "bob").Return(linkedAccount("bob", uint(2)), nil)
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "missing record is forbidden for users",
			principal: bobPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "bob").Return(linkedAccount("bob", uint(2)), nil)
				mw.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "missing record is not found for admins",
			principal: adminPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrWorklogNotFound,
		},
		{
			name:      "admin reads any record",
			principal: adminPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorklogs := new(MockWorklogRepository)
			mockEmployees := new(MockEmployeeRepository)
			mockAccounts := new(MockAccountRepository)
			tt.setupMock(mockWorklogs, mockAccounts)

			svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
			got, err := svc.Get(context.Background(), tt.principal, 10)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, record.ID, got.ID)
			}
			mockWorklogs.AssertExpectations(t)
		})
	}
}

func TestWorklogService_Create(t *testing.T) {
	aliceID := uint(1)
	workDate := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	input := WorklogInput{
		WorkDate: workDate,
		OwnerID:  5, // users must not be able to write for employee 5
		Hours:    decimal.NewFromInt(8),
		Meals:    1,
	}

	t.Run("user ownership is forced and creator stamped", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		mockAccounts.On("FindByUsername", mock.Anything, "alice").Return(linkedAccount("alice", aliceID), nil)
		mockEmployees.On("FindByID", mock.Anything, aliceID).Return(&model.Employee{ID: aliceID}, nil)
		mockWorklogs.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Worklog) bool {
			return w.EmployeeID == aliceID && w.CreatedBy == "alice"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Worklog).ID = 42
		}).Return(nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(42)).Return(&model.Worklog{ID: 42, EmployeeID: aliceID, CreatedBy: "alice"}, nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		created, err := svc.Create(context.Background(), alicePrincipal, input)

		assert.NoError(t, err)
		assert.Equal(t, aliceID, created.EmployeeID)
		assert.Equal(t, "alice", created.CreatedBy)
		mockWorklogs.AssertExpectations(t)
		mockEmployees.AssertExpectations(t)
	})

	t.Run("unlinked user is forbidden", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		mockAccounts.On("FindByUsername", mock.Anything, "bob").Return(&model.Account{Username: "bob", Role: auth.RoleUser}, nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		_, err := svc.Create(context.Background(), bobPrincipal, input)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockWorklogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin writes requested owner", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		mockEmployees.On("FindByID", mock.Anything, uint(5)).Return(&model.Employee{ID: 5}, nil)
		mockWorklogs.On("Create", mock.Anything, mock.MatchedBy(func(w *model.Worklog) bool {
			return w.EmployeeID == 5 && w.CreatedBy == "admin"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Worklog).ID = 43
		}).Return(nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(43)).Return(&model.Worklog{ID: 43, EmployeeID: 5}, nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		created, err := svc.Create(context.Background(), adminPrincipal, input)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), created.EmployeeID)
		mockWorklogs.AssertExpectations(t)
	})

	t.Run("admin without owner gets invalid owner id", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		_, err := svc.Create(context.Background(), adminPrincipal, WorklogInput{WorkDate: workDate, Hours: decimal.NewFromInt(8)})

		assert.ErrorIs(t, err, apperrors.ErrInvalidOwnerID)
	})

	t.Run("admin naming unknown employee gets owner not found", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		mockEmployees.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		_, err := svc.Create(context.Background(), adminPrincipal, input)

		assert.ErrorIs(t, err, apperrors.ErrOwnerNotFound)
		mockWorklogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestWorklogService_Update(t *testing.T) {
	aliceID := uint(1)
	workDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("owner updates own record, ownership stays forced", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		existing := &model.Worklog{ID: 10, EmployeeID: aliceID, CreatedBy: "alice"}
		mockAccounts.On("FindByUsername", mock.Anything, "alice").Return(linkedAccount("alice", aliceID), nil)
		mockEmployees.On("FindByID", mock.Anything, aliceID).Return(&model.Employee{ID: aliceID}, nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(10)).Return(existing, nil)
		mockWorklogs.On("Update", mock.Anything, mock.MatchedBy(func(w *model.Worklog) bool {
			return w.ID == 10 && w.EmployeeID == aliceID && w.Meals == 2
		})).Return(nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		// The request names a foreign owner; the write must ignore it.
		updated, err := svc.Update(context.Background(), alicePrincipal, 10, WorklogInput{
			WorkDate: workDate,
			OwnerID:  2,
			Hours:    decimal.NewFromInt(6),
			Meals:    2,
		})

		assert.NoError(t, err)
		assert.Equal(t, aliceID, updated.EmployeeID)
		mockWorklogs.AssertExpectations(t)
	})

	t.Run("foreign record is forbidden", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		mockAccounts.On("FindByUsername", mock.Anything, "bob").Return(linkedAccount("bob", uint(2)), nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(10)).Return(&model.Worklog{ID: 10, EmployeeID: aliceID}, nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		_, err := svc.Update(context.Background(), bobPrincipal, 10, WorklogInput{WorkDate: workDate, Hours: decimal.NewFromInt(8)})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockWorklogs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin update without owner keeps the record's owner", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		existing := &model.Worklog{ID: 10, EmployeeID: aliceID}
		mockEmployees.On("FindByID", mock.Anything, aliceID).Return(&model.Employee{ID: aliceID}, nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(10)).Return(existing, nil)
		mockWorklogs.On("Update", mock.Anything, mock.MatchedBy(func(w *model.Worklog) bool {
			return w.EmployeeID == aliceID
		})).Return(nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		updated, err := svc.Update(context.Background(), adminPrincipal, 10, WorklogInput{WorkDate: workDate, Hours: decimal.NewFromInt(8)})

		assert.NoError(t, err)
		assert.Equal(t, aliceID, updated.EmployeeID)
		mockWorklogs.AssertExpectations(t)
	})

	t.Run("admin reassigns owner", func(t *testing.T) {
		mockWorklogs := new(MockWorklogRepository)
		mockEmployees := new(MockEmployeeRepository)
		mockAccounts := new(MockAccountRepository)

		existing := &model.Worklog{ID: 10, EmployeeID: aliceID}
		mockEmployees.On("FindByID", mock.Anything, uint(2)).Return(&model.Employee{ID: 2}, nil)
		mockWorklogs.On("FindByID", mock.Anything, uint(10)).Return(existing, nil)
		mockWorklogs.On("Update", mock.Anything, mock.MatchedBy(func(w *model.Worklog) bool {
			return w.EmployeeID == 2
		})).Return(nil)

		svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
		updated, err := svc.Update(context.Background(), adminPrincipal, 10, WorklogInput{
			WorkDate: workDate,
			OwnerID:  2,
			Hours:    decimal.NewFromInt(8),
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(2), updated.EmployeeID)
		mockWorklogs.AssertExpectations(t)
	})
}

func TestWorklogService_Delete(t *testing.T) {
	aliceID := uint(1)
	record := &model.Worklog{ID: 10, EmployeeID: aliceID}

	tests := []struct {
		name          string
		principal     auth.Principal
		setupMock     func(*MockWorklogRepository, *MockAccountRepository)
		expectedError error
	}{
		{
			name:      "owner deletes own record",
			principal: alicePrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "alice").Return(linkedAccount("alice", aliceID), nil)
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
				mw.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
		},
		{
			name:      "foreign record is forbidden",
			principal: bobPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				ma.On("FindByUsername", mock.Anything, "bob").Return(linkedAccount("bob", uint(2)), nil)
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "missing record is not found for admins",
			principal: adminPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrWorklogNotFound,
		},
		{
			name:      "admin deletes any record",
			principal: adminPrincipal,
			setupMock: func(mw *MockWorklogRepository, ma *MockAccountRepository) {
				mw.On("FindByID", mock.Anything, uint(10)).Return(record, nil)
				mw.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorklogs := new(MockWorklogRepository)
			mockEmployees := new(MockEmployeeRepository)
			mockAccounts := new(MockAccountRepository)
			tt.setupMock(mockWorklogs, mockAccounts)

			svc := newWorklogService(mockWorklogs, mockEmployees, mockAccounts)
			err := svc.Delete(context.Background(), tt.principal, 10)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockWorklogs.AssertExpectations(t)
		})
	}
}
