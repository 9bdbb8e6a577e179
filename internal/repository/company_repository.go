package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

// CompanyRepository defines company persistence operations.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id uint) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id uint) (int64, error)
	Counts(ctx context.Context, id uint) (model.CompanyCounts, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uint) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Company{}, id)
	return res.RowsAffected, res.Error
}

// Counts returns how many users, responses and documents the company owns,
// for the referential deletion guard.
func (r *companyRepository) Counts(ctx context.Context, id uint) (model.CompanyCounts, error) {
	var counts model.CompanyCounts
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("company_id = ?", id).Count(&counts.Users).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Response{}).
		Where("company_id = ?", id).Count(&counts.Responses).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("company_id = ?", id).Count(&counts.Documents).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
