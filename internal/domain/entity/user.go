package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is an operator of the back office. Salesmen are tied to a
// branch; admins may have none.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FullName     string         `gorm:"size:255;not null" json:"full_name"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         enum.Role      `gorm:"type:varchar(20);not null;default:'salesman'" json:"role"`
	BranchID     *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	IsApproved   bool           `gorm:"default:false" json:"is_approved"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Actor returns the acting-user value services take as caller identity.
func (u *User) Actor() ActingUser {
	return ActingUser{ID: u.ID, Role: u.Role, BranchID: u.BranchID}
}
