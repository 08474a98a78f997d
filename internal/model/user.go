package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Credentials never leave the server.
type User struct {
	ID             uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	LoginName      string    `json:"login_name" gorm:"uniqueIndex;size:255;not null"`
	PasswordDigest string    `json:"-" gorm:"size:255;not null"`
	Salt           string    `json:"-" gorm:"size:64;not null"`
	FirstName      string    `json:"first_name" gorm:"size:255;not null"`
	LastName       string    `json:"last_name" gorm:"size:255;not null"`
	Location       string    `json:"location" gorm:"size:255"`
	Description    string    `json:"description" gorm:"type:text"`
	Occupation     string    `json:"occupation" gorm:"size:255"`
	CreatedAt      time.Time `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the list/login representation of a user.
type UserSummary struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// UserProfile is the detail representation of a user.
type UserProfile struct {
	ID          uuid.UUID `json:"_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

// RegisteredUser is returned after a successful registration.
type RegisteredUser struct {
	ID        uuid.UUID `json:"_id"`
	LoginName string    `json:"login_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Summary returns the public summary of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// Profile returns the public profile of u.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}

// Registered returns the registration response for u.
func (u *User) Registered() RegisteredUser {
	return RegisteredUser{ID: u.ID, LoginName: u.LoginName, FirstName: u.FirstName, LastName: u.LastName}
}
