package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Worklog is one day of work logged for an employee.
type Worklog struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	WorkDate   time.Time       `json:"work_date" gorm:"type:date;not null;index"`
	EmployeeID uint            `json:"employee_id" gorm:"not null;index"`
	Hours      decimal.Decimal `json:"hours" gorm:"type:decimal(4,2);not null"`
	Meals      int             `json:"meals" gorm:"not null"`
	Nights     int             `json:"nights" gorm:"not null"`
	CreatedBy  string          `json:"created_by,omitempty" gorm:"size:100"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Employee Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}
