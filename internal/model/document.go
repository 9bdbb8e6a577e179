package model

import "time"

// Document is a standalone upload tied to a single user, independent of
// checklist items. FilePath holds the unique stored name of the backing blob;
// signed retrieval URLs are generated on read and never persisted.
type Document struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	FileName  string    `json:"file_name" gorm:"size:255;not null"`
	FilePath  string    `json:"file_path" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}
