package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

// MockResponseRepository is a mock implementation of ResponseRepository.
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *model.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) Update(ctx context.Context, response *model.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) FindByUserAndItem(ctx context.Context, userID, itemID, companyID uint) (*model.Response, error) {
	args := m.Called(ctx, userID, itemID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Response), args.Error(1)
}

func (m *MockResponseRepository) FindByCompanyAndItem(ctx context.Context, companyID, itemID uint) (*model.Response, error) {
	args := m.Called(ctx, companyID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Response), args.Error(1)
}

func (m *MockResponseRepository) FindByID(ctx context.Context, id, companyID uint) (*model.Response, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Response), args.Error(1)
}

func (m *MockResponseRepository) ListByCompany(ctx context.Context, companyID uint) ([]model.Response, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Response), args.Error(1)
}

func (m *MockResponseRepository) ExistsForItemInCompany(ctx context.Context, companyID, itemID, excludeUserID uint) (bool, error) {
	args := m.Called(ctx, companyID, itemID, excludeUserID)
	return args.Bool(0), args.Error(1)
}

// WithTransaction runs fn against the mock itself, standing in for a repo
// bound to a transaction.
func (m *MockResponseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ResponseRepository) error) error {
	return fn(ctx, m)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uint) (*model.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) Counts(ctx context.Context, id uint) (model.CompanyCounts, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CompanyCounts), args.Error(1)
}

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *model.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id, companyID uint) (*model.Document, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByCompany(ctx context.Context, companyID uint) ([]model.Document, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id, companyID uint) (int64, error) {
	args := m.Called(ctx, id, companyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlobStore is a mock implementation of BlobStore. Upload echoes the
// unique name it was given unless the expectation overrides it.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, data []byte, uniqueName string) (string, error) {
	args := m.Called(ctx, data, uniqueName)
	if s := args.String(0); s != "" {
		return s, args.Error(1)
	}
	return uniqueName, args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, uniqueName string) error {
	args := m.Called(ctx, uniqueName)
	return args.Error(0)
}

func (m *MockBlobStore) Download(ctx context.Context, uniqueName string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, uniqueName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

// MockSigner is a mock implementation of URLSigner.
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) Sign(fileNameOrURL string, expiry time.Duration) (string, error) {
	args := m.Called(fileNameOrURL, expiry)
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of MailSender.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, text, html string) error {
	args := m.Called(to, subject, text, html)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockChecklistRepository is a mock implementation of ChecklistRepository.
type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) Categories(ctx context.Context) ([]model.ChecklistCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChecklistCategory), args.Error(1)
}

func (m *MockChecklistRepository) ItemsByCategory(ctx context.Context, categoryID uint) ([]model.ChecklistItem, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChecklistItem), args.Error(1)
}

func (m *MockChecklistRepository) FindItem(ctx context.Context, id uint) (*model.ChecklistItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistItem), args.Error(1)
}

func (m *MockChecklistRepository) Items(ctx context.Context) ([]model.ChecklistItemView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChecklistItemView), args.Error(1)
}
