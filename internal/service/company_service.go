package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

// CompanyWithCounts is a company decorated with its ownership counts.
type CompanyWithCounts struct {
	model.Company
	Counts model.CompanyCounts `json:"counts"`
}

// CompanyService handles company administration.
type CompanyService interface {
	Create(ctx context.Context, name string) (*model.Company, error)
	Get(ctx context.Context, id uint) (*model.Company, error)
	List(ctx context.Context) ([]CompanyWithCounts, error)
	Update(ctx context.Context, id uint, name string) (*model.Company, error)
	Delete(ctx context.Context, id uint) error
}

type companyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService creates a new company service.
func NewCompanyService(companies repository.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Create(ctx context.Context, name string) (*model.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	company := &model.Company{Name: name}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Get(ctx context.Context, id uint) (*model.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: company", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) List(ctx context.Context) ([]CompanyWithCounts, error) {
	companies, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CompanyWithCounts, 0, len(companies))
	for _, company := range companies {
		counts, err := s.companies.Counts(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CompanyWithCounts{Company: company, Counts: counts})
	}
	return out, nil
}

func (s *companyService) Update(ctx context.Context, id uint, name string) (*model.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = name
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete refuses to remove a company that still owns users, responses or
// documents. Referential guard, not a cascading delete.
func (s *companyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	counts, err := s.companies.Counts(ctx, id)
	if err != nil {
		return err
	}
	if !counts.Empty() {
		return apperrors.ErrCompanyNotEmpty
	}

	affected, err := s.companies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: company", apperrors.ErrNotFound)
	}
	return nil
}
