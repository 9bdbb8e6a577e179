package model

import "time"

// Company is the tenant boundary: users, responses and documents are scoped
// under exactly one company.
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"foreignKey:CompanyID"`
}

// CompanyCounts carries the per-company ownership counts used by the
// referential deletion guard.
type CompanyCounts struct {
	Users     int64 `json:"users"`
	Responses int64 `json:"responses"`
	Documents int64 `json:"documents"`
}

// Empty reports whether a company owns no data and may be deleted.
func (c CompanyCounts) Empty() bool {
	return c.Users == 0 && c.Responses == 0 && c.Documents == 0
}
