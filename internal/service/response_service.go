package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
	"github.com/HUPCF/Due-Diligence-Backend/internal/storage"
)

// BlobStore is the subset of the storage gateway the services depend on.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, uniqueName string) (string, error)
	Delete(ctx context.Context, uniqueName string) error
	Download(ctx context.Context, uniqueName string) (io.ReadCloser, string, error)
}

// URLSigner produces signed retrieval URLs for stored blobs.
type URLSigner interface {
	Sign(fileNameOrURL string, expiry time.Duration) (string, error)
}

// SubmissionOutcome distinguishes what a submission did, for accurate status
// codes and observability.
type SubmissionOutcome string

const (
	OutcomeCreated   SubmissionOutcome = "created"
	OutcomeUpdated   SubmissionOutcome = "updated"
	OutcomeUnchanged SubmissionOutcome = "unchanged"
)

// FileUpload is one incoming multipart file.
type FileUpload struct {
	Name string
	Data []byte
}

// SubmissionTarget identifies the user and company a submission applies to,
// resolved once at the boundary. CompanyID zero means the user has no company
// assignment yet.
type SubmissionTarget struct {
	UserID    uint
	CompanyID uint
}

// ResolveSubmissionTarget applies the admin override: an admin supplying both
// target ids acts on behalf of that user and company, everyone else submits
// as themselves.
func ResolveSubmissionTarget(actor *model.User, targetUserID, targetCompanyID uint) SubmissionTarget {
	if actor.IsAdmin() && targetUserID != 0 && targetCompanyID != 0 {
		return SubmissionTarget{UserID: targetUserID, CompanyID: targetCompanyID}
	}
	target := SubmissionTarget{UserID: actor.ID}
	if actor.CompanyID != nil {
		target.CompanyID = *actor.CompanyID
	}
	return target
}

// SubmissionResult is the outcome of a checklist submission.
type SubmissionResult struct {
	Outcome  SubmissionOutcome
	Response *model.Response
}

// SignedAttachment is a file descriptor decorated with a fresh signed URL.
// Signed URLs embed an expiry and are never persisted.
type SignedAttachment struct {
	OriginalName   string `json:"originalName"`
	StoredFileName string `json:"storedFileName"`
	SecureURL      string `json:"secureUrl"`
}

// ResponseView is a response with signed URLs for its attachments.
type ResponseView struct {
	model.Response
	FilePaths []SignedAttachment `json:"file_paths"`
}

// ResponseService implements the checklist response reconciliation.
type ResponseService interface {
	Submit(ctx context.Context, target SubmissionTarget, itemID uint, text string, files []FileUpload) (*SubmissionResult, error)
	ListForUser(ctx context.Context, viewedUserID uint) ([]ResponseView, error)
	GetByItem(ctx context.Context, companyID, itemID uint) (*ResponseView, error)
	UpdateText(ctx context.Context, id, companyID uint, text string) error
	DeleteFile(ctx context.Context, id, companyID uint, storedFileName string) error
	Download(ctx context.Context, fileName string) (stream io.ReadCloser, contentType, downloadName string, err error)
}

type responseService struct {
	responses repository.ResponseRepository
	users     repository.UserRepository
	blobs     BlobStore
	signer    URLSigner
	urlExpiry time.Duration
}

// NewResponseService creates a new response service.
func NewResponseService(
	responses repository.ResponseRepository,
	users repository.UserRepository,
	blobs BlobStore,
	signer URLSigner,
	urlExpiry time.Duration,
) ResponseService {
	return &responseService{
		responses: responses,
		users:     users,
		blobs:     blobs,
		signer:    signer,
		urlExpiry: urlExpiry,
	}
}

// Submit creates or updates the target user's answer to a checklist item.
func (s *responseService) Submit(ctx context.Context, target SubmissionTarget, itemID uint, text string, files []FileUpload) (*SubmissionResult, error) {
	if target.CompanyID == 0 {
		return nil, apperrors.ErrNoCompany
	}
	if itemID == 0 {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: response text is required", apperrors.ErrValidation)
	}

	// Uploads happen before the database is touched. A failed upload aborts
	// the whole submission with no partial write; blobs already stored for
	// sibling files in the batch stay behind.
	attachments := make([]model.FileAttachment, 0, len(files))
	for _, f := range files {
		stored, err := s.blobs.Upload(ctx, f.Data, storage.UniqueName(f.Name))
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		attachments = append(attachments, model.FileAttachment{OriginalName: f.Name, StoredFileName: stored})
	}

	var result *SubmissionResult
	err := s.responses.WithTransaction(ctx, func(ctx context.Context, repo repository.ResponseRepository) error {
		existing, err := repo.FindByUserAndItem(ctx, target.UserID, itemID, target.CompanyID)
		switch {
		case err == nil:
			result, err = s.applyUpdate(ctx, repo, existing, text, attachments)
			return err

		case errors.Is(err, gorm.ErrRecordNotFound):
			// Items are shared within a company but answers are per user:
			// another user holding a response does not block this one.
			if shared, serr := repo.ExistsForItemInCompany(ctx, target.CompanyID, itemID, target.UserID); serr == nil && shared {
				zap.L().Debug("item already answered by another user in company",
					zap.Uint("item_id", itemID), zap.Uint("company_id", target.CompanyID))
			}

			response := &model.Response{
				UserID:    target.UserID,
				ItemID:    itemID,
				CompanyID: target.CompanyID,
				Response:  text,
				FilePaths: attachments,
			}
			if err := repo.Create(ctx, response); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Lost the race on (user_id, item_id): a concurrent
					// submission created the row between lookup and insert.
					// Retry as an update.
					existing, ferr := repo.FindByUserAndItem(ctx, target.UserID, itemID, target.CompanyID)
					if ferr != nil {
						return ferr
					}
					result, err = s.applyUpdate(ctx, repo, existing, text, attachments)
					return err
				}
				return err
			}
			result = &SubmissionResult{Outcome: OutcomeCreated, Response: response}
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyUpdate merges a resubmission into an existing response. New files are
// always appended, never replacing the list; identical text with no new files
// is a true no-op.
func (s *responseService) applyUpdate(ctx context.Context, repo repository.ResponseRepository, existing *model.Response, text string, newFiles []model.FileAttachment) (*SubmissionResult, error) {
	textChanged := existing.Response != text
	if !textChanged && len(newFiles) == 0 {
		return &SubmissionResult{Outcome: OutcomeUnchanged, Response: existing}, nil
	}

	existing.Response = text
	existing.FilePaths = append(existing.FilePaths, newFiles...)
	if err := repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return &SubmissionResult{Outcome: OutcomeUpdated, Response: existing}, nil
}

// ListForUser returns every response in the viewed user's company, each file
// entry decorated with a fresh signed URL.
func (s *responseService) ListForUser(ctx context.Context, viewedUserID uint) ([]ResponseView, error) {
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

	responses, err := s.responses.ListByCompany(ctx, *viewed.CompanyID)
	if err != nil {
		return nil, err
	}

	views := make([]ResponseView, 0, len(responses))
	for i := range responses {
		view, err := s.decorate(&responses[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetByItem returns the first response for an item within the company, or nil
// when nobody answered yet.
func (s *responseService) GetByItem(ctx context.Context, companyID, itemID uint) (*ResponseView, error) {
	if companyID == 0 {
		return nil, apperrors.ErrNoCompany
	}
	if itemID == 0 {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}

	response, err := s.responses.FindByCompanyAndItem(ctx, companyID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.decorate(response)
}

// UpdateText replaces the answer text of a company-owned response, keeping
// the file list untouched.
func (s *responseService) UpdateText(ctx context.Context, id, companyID uint, text string) error {
	if companyID == 0 {
		return apperrors.ErrNoCompany
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: response text is required", apperrors.ErrValidation)
	}

	response, err := s.responses.FindByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: response", apperrors.ErrNotFound)
		}
		return err
	}

	response.Response = text
	return s.responses.Update(ctx, response)
}

// DeleteFile removes one attachment: blob first, then the rewritten file
// list. A storage failure aborts the database update.
func (s *responseService) DeleteFile(ctx context.Context, id, companyID uint, storedFileName string) error {
	if companyID == 0 {
		return apperrors.ErrNoCompany
	}
	if storedFileName == "" {
		return fmt.Errorf("%w: file name to delete is required", apperrors.ErrValidation)
	}

	response, err := s.responses.FindByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: response", apperrors.ErrNotFound)
		}
		return err
	}
	if !response.HasFile(storedFileName) {
		return fmt.Errorf("%w: file in this response", apperrors.ErrNotFound)
	}

	if err := s.blobs.Delete(ctx, storedFileName); err != nil {
		return err
	}

	kept := response.FilePaths[:0:0]
	for _, f := range response.FilePaths {
		if f.StoredFileName != storedFileName {
			kept = append(kept, f)
		}
	}
	response.FilePaths = kept
	return s.responses.Update(ctx, response)
}

// Download streams a stored blob through the server. The input may be a bare
// stored name or a full URL a client copied out of an older record.
func (s *responseService) Download(ctx context.Context, fileName string) (io.ReadCloser, string, string, error) {
	if fileName == "" {
		return nil, "", "", fmt.Errorf("%w: file name is required", apperrors.ErrValidation)
	}

	name := fileName
	if u, err := url.Parse(fileName); err == nil && u.Scheme != "" && u.Host != "" {
		name = strings.TrimPrefix(u.Path, "/")
	}

	stream, contentType, err := s.blobs.Download(ctx, name)
	if err != nil {
		return nil, "", "", err
	}
	return stream, contentType, storage.OriginalName(path.Base(name)), nil
}

func (s *responseService) decorate(response *model.Response) (*ResponseView, error) {
	signed := make([]SignedAttachment, 0, len(response.FilePaths))
	for _, f := range response.FilePaths {
		secureURL, err := s.signer.Sign(f.StoredFileName, s.urlExpiry)
		if err != nil {
			return nil, err
		}
		signed = append(signed, SignedAttachment{
			OriginalName:   f.OriginalName,
			StoredFileName: f.StoredFileName,
			SecureURL:      secureURL,
		})
	}
	return &ResponseView{Response: *response, FilePaths: signed}, nil
}
