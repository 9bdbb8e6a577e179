package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	FindByID(ctx context.Context, id, companyID uint) (*model.Document, error)
	ListByCompany(ctx context.Context, companyID uint) ([]model.Document, error)
	Delete(ctx context.Context, id, companyID uint) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id, companyID uint) (*model.Document, error) {
	var document model.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) ListByCompany(ctx context.Context, companyID uint) ([]model.Document, error) {
	var documents []model.Document
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) Delete(ctx context.Context, id, companyID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&model.Document{})
	return res.RowsAffected, res.Error
}
