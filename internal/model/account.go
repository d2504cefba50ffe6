package model

import (
	"time"

	"worklog/internal/auth"
)

// Account represents a login identity. An account may be linked to at
// most one employee; the link decides which worklogs a non-admin
// caller owns.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         auth.Role `json:"role" gorm:"size:20;not null;default:'USER'"`
	EmployeeID   *uint     `json:"employee_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}
