package model

import (
	"time"

	"github.com/google/uuid"
)

// CommentAuthor is the joined author of a comment. ID is nil for the
// placeholder used when the author no longer resolves.
type CommentAuthor struct {
	ID        *uuid.UUID `json:"_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
}

// UnknownAuthor returns the placeholder author.
func UnknownAuthor() CommentAuthor {
	return CommentAuthor{FirstName: "Unknown", LastName: "User"}
}

// AuthorOf builds the joined author for u.
func AuthorOf(u *User) CommentAuthor {
	id := u.ID
	return CommentAuthor{ID: &id, FirstName: u.FirstName, LastName: u.LastName}
}

// CommentDetail is a comment with its author resolved.
type CommentDetail struct {
	ID       uuid.UUID     `json:"_id"`
	Comment  string        `json:"comment"`
	DateTime time.Time     `json:"date_time"`
	UserID   uuid.UUID     `json:"user_id"`
	User     CommentAuthor `json:"user"`
}

// PhotoDetail is a photo whose comments have their authors resolved.
type PhotoDetail struct {
	ID       uuid.UUID       `json:"_id"`
	UserID   uuid.UUID       `json:"user_id"`
	FileName string          `json:"file_name"`
	DateTime time.Time       `json:"date_time"`
	Comments []CommentDetail `json:"comments"`
}

// PhotoSummary identifies the parent photo of a comment.
type PhotoSummary struct {
	ID       uuid.UUID `json:"_id"`
	FileName string    `json:"file_name"`
	UserID   uuid.UUID `json:"user_id"`
}

// UserComment is one entry of a user's comment history.
type UserComment struct {
	ID       uuid.UUID    `json:"_id"`
	Text     string       `json:"text"`
	DateTime time.Time    `json:"date_time"`
	Photo    PhotoSummary `json:"photo"`
}
