package model

import (
	"time"

	"gorm.io/datatypes"
)

// FileAttachment describes one uploaded file attached to a response:
// the name the client sent and the unique name it is stored under.
type FileAttachment struct {
	OriginalName   string `json:"originalName"`
	StoredFileName string `json:"storedFileName"`
}

// Response is a user's answer to a checklist item. At most one row exists per
// (user, item); users within the same company each hold their own row for a
// shared item. CompanyID is denormalized from the user for query efficiency.
type Response struct {
	ID        uint                                `json:"id" gorm:"primaryKey"`
	UserID    uint                                `json:"user_id" gorm:"not null;uniqueIndex:idx_user_item"`
	ItemID    uint                                `json:"item_id" gorm:"not null;uniqueIndex:idx_user_item"`
	CompanyID uint                                `json:"company_id" gorm:"index;not null"`
	Response  string                              `json:"response" gorm:"type:text;not null"`
	FilePaths datatypes.JSONSlice[FileAttachment] `json:"file_paths"`
	CreatedAt time.Time                           `json:"created_at"`
	UpdatedAt time.Time                           `json:"updated_at"`
}

// TableName keeps the table name the frontend and reporting queries expect.
func (Response) TableName() string {
	return "user_responses"
}

// HasFile reports whether the response references the given stored name.
func (r *Response) HasFile(storedFileName string) bool {
	for _, f := range r.FilePaths {
		if f.StoredFileName == storedFileName {
			return true
		}
	}
	return false
}
