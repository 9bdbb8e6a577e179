package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

// ChecklistRepository reads checklist reference data. Items and categories are
// immutable at runtime.
type ChecklistRepository interface {
	Categories(ctx context.Context) ([]model.ChecklistCategory, error)
	ItemsByCategory(ctx context.Context, categoryID uint) ([]model.ChecklistItem, error)
	FindItem(ctx context.Context, id uint) (*model.ChecklistItem, error)
	Items(ctx context.Context) ([]model.ChecklistItemView, error)
}

type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new checklist repository.
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepository{db: db}
}

func (r *checklistRepository) Categories(ctx context.Context) ([]model.ChecklistCategory, error) {
	var categories []model.ChecklistCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *checklistRepository) ItemsByCategory(ctx context.Context, categoryID uint) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *checklistRepository) FindItem(ctx context.Context, id uint) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *checklistRepository) Items(ctx context.Context) ([]model.ChecklistItemView, error) {
	var items []model.ChecklistItemView
	err := r.db.WithContext(ctx).Model(&model.ChecklistItem{}).
		Select("checklist_items.id, checklist_items.category_id, checklist_items.text, checklist_categories.name AS category_name").
		Joins("JOIN checklist_categories ON checklist_categories.id = checklist_items.category_id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
