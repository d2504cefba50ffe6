package model

import (
	"time"

	"gorm.io/gorm"
)

// Team groups employees. Team names are unique.
type Team struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:TeamID"`
}
