package models

import "time"

// Team roles. A team has exactly one OWNER plus zero or more MEMBERs.
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// Team owns projects and the shared product library.
type Team struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	LogoURL   string
	OwnerID   uint `gorm:"not null;index"`
	Owner     User `gorm:"foreignKey:OwnerID"`
	Members   []TeamMember
	Projects  []Project
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamMember struct {
	ID        uint   `gorm:"primaryKey"`
	TeamID    uint   `gorm:"not null;index:idx_team_user,unique,priority:1"`
	UserID    uint   `gorm:"not null;index:idx_team_user,unique,priority:2"`
	User      User   `gorm:"foreignKey:UserID"`
	Role      string `gorm:"not null;default:'MEMBER'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
