package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
	"github.com/HUPCF/Due-Diligence-Backend/internal/storage"
)

// DocumentView is a document whose file path is replaced by a fresh signed
// URL for the frontend.
type DocumentView struct {
	model.Document
	FilePath string `json:"file_path"`
}

// DocumentService handles standalone per-user document uploads.
type DocumentService interface {
	Upload(ctx context.Context, actorCompanyID, targetUserID uint, file FileUpload) (*model.Document, error)
	ListForUser(ctx context.Context, viewedUserID uint) ([]DocumentView, error)
	Delete(ctx context.Context, id, companyID uint) error
}

type documentService struct {
	documents repository.DocumentRepository
	users     repository.UserRepository
	blobs     BlobStore
	signer    URLSigner
	urlExpiry time.Duration
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	documents repository.DocumentRepository,
	users repository.UserRepository,
	blobs BlobStore,
	signer URLSigner,
	urlExpiry time.Duration,
) DocumentService {
	return &documentService{
		documents: documents,
		users:     users,
		blobs:     blobs,
		signer:    signer,
		urlExpiry: urlExpiry,
	}
}

// Upload stores the blob, then records the document for the target user under
// the acting user's company.
func (s *documentService) Upload(ctx context.Context, actorCompanyID, targetUserID uint, file FileUpload) (*model.Document, error) {
	if actorCompanyID == 0 {
		return nil, apperrors.ErrNoCompany
	}
	if targetUserID == 0 {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", apperrors.ErrValidation)
	}

	stored, err := s.blobs.Upload(ctx, file.Data, storage.UniqueName(file.Name))
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	document := &model.Document{
		UserID:    targetUserID,
		CompanyID: actorCompanyID,
		FileName:  file.Name,
		FilePath:  stored,
	}
	if err := s.documents.Create(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

// ListForUser returns every document in the viewed user's company with signed
// retrieval URLs.
func (s *documentService) ListForUser(ctx context.Context, viewedUserID uint) ([]DocumentView, error) {
	viewed, err := s.users.FindByID(ctx, viewedUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if viewed.CompanyID == nil {
		return nil, fmt.Errorf("%w: company for the specified user", apperrors.ErrNotFound)
	}

	documents, err := s.documents.ListByCompany(ctx, *viewed.CompanyID)
	if err != nil {
		return nil, err
	}

	views := make([]DocumentView, 0, len(documents))
	for _, doc := range documents {
		secureURL, err := s.signer.Sign(doc.FilePath, s.urlExpiry)
		if err != nil {
			return nil, err
		}
		views = append(views, DocumentView{Document: doc, FilePath: secureURL})
	}
	return views, nil
}

// Delete removes the blob first, then the registry row. The gateway treats a
// missing blob as deleted, so storage drift never strands the row.
func (s *documentService) Delete(ctx context.Context, id, companyID uint) error {
	if companyID == 0 {
		return apperrors.ErrNoCompany
	}

	document, err := s.documents.FindByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: document", apperrors.ErrNotFound)
		}
		return err
	}

	if document.FilePath != "" {
		if err := s.blobs.Delete(ctx, document.FilePath); err != nil {
			return err
		}
	}

	affected, err := s.documents.Delete(ctx, id, companyID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: document", apperrors.ErrNotFound)
	}
	return nil
}
