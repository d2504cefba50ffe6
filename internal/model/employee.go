package model

import (
	"time"

	"gorm.io/gorm"
)

// Employee is the person whose hours are tracked. Worklogs reference
// employees, not accounts; an account gains access to an employee's
// records only through its one-to-one link.
type Employee struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Surname   string         `json:"surname" gorm:"size:255;not null"`
	TeamID    uint           `json:"team_id" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Team Team `json:"-" gorm:"foreignKey:TeamID"`
}
