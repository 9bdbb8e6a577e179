package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

// ResponseRepository defines checklist response persistence operations. All
// lookups that feed reconciliation decisions are company scoped.
type ResponseRepository interface {
	Create(ctx context.Context, response *model.Response) error
	Update(ctx context.Context, response *model.Response) error
	FindByUserAndItem(ctx context.Context, userID, itemID, companyID uint) (*model.Response, error)
	FindByCompanyAndItem(ctx context.Context, companyID, itemID uint) (*model.Response, error)
	FindByID(ctx context.Context, id, companyID uint) (*model.Response, error)
	ListByCompany(ctx context.Context, companyID uint) ([]model.Response, error)
	ExistsForItemInCompany(ctx context.Context, companyID, itemID, excludeUserID uint) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ResponseRepository) error) error
}

type responseRepository struct {
	db *gorm.DB
}

// NewResponseRepository creates a new response repository.
func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(ctx context.Context, response *model.Response) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *responseRepository) Update(ctx context.Context, response *model.Response) error {
	return r.db.WithContext(ctx).Save(response).Error
}

func (r *responseRepository) FindByUserAndItem(ctx context.Context, userID, itemID, companyID uint) (*model.Response, error) {
	var response model.Response
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ? AND company_id = ?", userID, itemID, companyID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByCompanyAndItem(ctx context.Context, companyID, itemID uint) (*model.Response, error) {
	var response model.Response
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND item_id = ?", companyID, itemID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByID(ctx context.Context, id, companyID uint) (*model.Response, error) {
	var response model.Response
	err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) ListByCompany(ctx context.Context, companyID uint) ([]model.Response, error) {
	var responses []model.Response
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) ExistsForItemInCompany(ctx context.Context, companyID, itemID, excludeUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Response{}).
		Where("company_id = ? AND item_id = ? AND user_id <> ?", companyID, itemID, excludeUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// WithTransaction executes fn within a database transaction, handing it a
// repository bound to that transaction.
func (r *responseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ResponseRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &responseRepository{db: tx})
	})
}
