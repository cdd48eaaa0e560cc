package models

import (
	"time"
)

type User struct {
	ID                  uint64     `gorm:"primarykey" json:"id"`
	Name                string     `gorm:"type:varchar(255);not null" json:"name"`
	Email               string     `gorm:"type:varchar(255);index;not null" json:"email"`
	PasswordHash        string     `gorm:"type:varchar(255);not null" json:"-"`
	IsDeleted           bool       `gorm:"not null;default:false;index" json:"-"`
	ResetToken          *string    `gorm:"type:varchar(64);index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
}
