package model

// ChecklistCategory groups checklist items. Reference data, read-only at
// runtime.
type ChecklistCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`

	Items []ChecklistItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

// ChecklistItem is a single due-diligence question.
type ChecklistItem struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	CategoryID uint   `json:"category_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text;not null"`
}

// ChecklistItemView is an item joined with its category name.
type ChecklistItemView struct {
	ID           uint   `json:"id"`
	CategoryID   uint   `json:"category_id"`
	Text         string `json:"text"`
	CategoryName string `json:"category_name"`
}
