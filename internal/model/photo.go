package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is an uploaded image owned by one user. Its comments are appended,
// never edited or removed.
type Photo struct {
	ID       uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	FileName string    `json:"file_name" gorm:"size:512;not null"`
	DateTime time.Time `json:"date_time" gorm:"not null;index"`

	// Relations
	Comments []Comment `json:"comments" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Comment belongs to exactly one photo. UserID is a weak reference: the
// author may no longer resolve.
type Comment struct {
	ID       uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	PhotoID  uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Comment  string    `json:"comment" gorm:"type:text;not null"`
	DateTime time.Time `json:"date_time" gorm:"not null"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnerCount is one row of a group-by-user count.
type OwnerCount struct {
	UserID uuid.UUID
	Count  int64
}
