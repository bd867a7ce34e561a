package models

import "time"

// Project groups quotes under a team.
type Project struct {
	ID        uint   `gorm:"primaryKey"`
	TeamID    uint   `gorm:"not null;index"`
	Team      Team   `gorm:"foreignKey:TeamID"`
	Name      string `gorm:"not null"`
	Quotes    []Quote
	CreatedAt time.Time
	UpdatedAt time.Time
}
