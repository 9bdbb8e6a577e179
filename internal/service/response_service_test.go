package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func newResponseFixture() (*MockResponseRepository, *MockUserRepository, *MockBlobStore, *MockSigner, ResponseService) {
	responses := new(MockResponseRepository)
	users := new(MockUserRepository)
	blobs := new(MockBlobStore)
	signer := new(MockSigner)
	svc := NewResponseService(responses, users, blobs, signer, time.Hour)
	return responses, users, blobs, signer, svc
}

func TestResolveSubmissionTarget(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin, CompanyID: uintPtr(9)}
	regular := &model.User{ID: 7, Role: model.RoleUser, CompanyID: uintPtr(3)}
	unassigned := &model.User{ID: 8, Role: model.RoleUser}

	tests := []struct {
		name            string
		actor           *model.User
		targetUser      uint
		targetCompany   uint
		wantUserID      uint
		wantCompanyID   uint
	}{
		{"admin override takes explicit target", admin, 7, 3, 7, 3},
		{"admin without target submits as self", admin, 0, 0, 1, 9},
		{"admin with partial target submits as self", admin, 7, 0, 1, 9},
		{"regular user ignores target fields", regular, 99, 42, 7, 3},
		{"unassigned user resolves zero company", unassigned, 0, 0, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := ResolveSubmissionTarget(tt.actor, tt.targetUser, tt.targetCompany)
			assert.Equal(t, tt.wantUserID, target.UserID)
			assert.Equal(t, tt.wantCompanyID, target.CompanyID)
		})
	}
}

func TestResponseService_SubmitCreates(t *testing.T) {
	responses, _, blobs, _, svc := newResponseFixture()
	target := SubmissionTarget{UserID: 7, CompanyID: 3}

	storedName := regexp.MustCompile(`^\d+_A\.pdf$`)
	blobs.On("Upload", mock.Anything, []byte("pdf"), mock.MatchedBy(storedName.MatchString)).Return("", nil)
	responses.On("FindByUserAndItem", mock.Anything, uint(7), uint(12), uint(3)).Return(nil, gorm.ErrRecordNotFound)
	responses.On("ExistsForItemInCompany", mock.Anything, uint(3), uint(12), uint(7)).Return(false, nil)
	responses.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Response) bool {
		return r.UserID == 7 && r.ItemID == 12 && r.CompanyID == 3 && r.Response == "Yes" && len(r.FilePaths) == 1
	})).Return(nil)

	result, err := svc.Submit(context.Background(), target, 12, "Yes", []FileUpload{{Name: "A.pdf", Data: []byte("pdf")}})
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	require.Len(t, result.Response.FilePaths, 1)
	assert.Equal(t, "A.pdf", result.Response.FilePaths[0].OriginalName)
	assert.Regexp(t, `^\d+_A\.pdf$`, result.Response.FilePaths[0].StoredFileName)
	responses.AssertExpectations(t)
}

func TestResponseService_SubmitValidation(t *testing.T) {
	_, _, _, _, svc := newResponseFixture()

	_, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 7}, 12, "Yes", nil)
	assert.ErrorIs(t, err, apperrors.ErrNoCompany)

	_, err = svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 0, "Yes", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 12, "  ", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResponseService_SubmitUploadFailureAbortsBeforeDB(t *testing.T) {
	responses, _, blobs, _, svc := newResponseFixture()

	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

	_, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 12, "Yes",
		[]FileUpload{{Name: "A.pdf", Data: []byte("pdf")}})
	require.Error(t, err)

	responses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	responses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	responses.AssertNotCalled(t, "FindByUserAndItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResponseService_SubmitUnchangedIsNoOp(t *testing.T) {
	responses, _, _, _, svc := newResponseFixture()
	existing := &model.Response{ID: 41, UserID: 7, ItemID: 12, CompanyID: 3, Response: "Yes",
		FilePaths: []model.FileAttachment{{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"}}}

	responses.On("FindByUserAndItem", mock.Anything, uint(7), uint(12), uint(3)).Return(existing, nil)

	result, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 12, "Yes", nil)
	require.NoError(t, err)

	assert.Equal(t, OutcomeUnchanged, result.Outcome)
	assert.Len(t, result.Response.FilePaths, 1)
	responses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResponseService_SubmitSameTextNewFilesAppends(t *testing.T) {
	responses, _, blobs, _, svc := newResponseFixture()
	existing := &model.Response{ID: 41, UserID: 7, ItemID: 12, CompanyID: 3, Response: "Yes",
		FilePaths: []model.FileAttachment{{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"}}}

	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	responses.On("FindByUserAndItem", mock.Anything, uint(7), uint(12), uint(3)).Return(existing, nil)
	responses.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Response) bool {
		return r.ID == 41 && len(r.FilePaths) == 2 && r.FilePaths[0].OriginalName == "A.pdf" && r.FilePaths[1].OriginalName == "B.pdf"
	})).Return(nil)

	result, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 12, "Yes",
		[]FileUpload{{Name: "B.pdf", Data: []byte("pdf")}})
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, result.Outcome)
	assert.Equal(t, "Yes", result.Response.Response)
	responses.AssertExpectations(t)
}

func TestResponseService_SubmitSecondUserGetsOwnRow(t *testing.T) {
	responses, _, _, _, svc := newResponseFixture()

	responses.On("FindByUserAndItem", mock.Anything, uint(8), uint(12), uint(3)).Return(nil, gorm.ErrRecordNotFound)
	responses.On("ExistsForItemInCompany", mock.Anything, uint(3), uint(12), uint(8)).Return(true, nil)
	responses.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Response) bool {
		return r.UserID == 8 && r.ItemID == 12
	})).Return(nil)

	result, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 8, CompanyID: 3}, 12, "No", nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, result.Outcome)
	responses.AssertExpectations(t)
}

func TestResponseService_SubmitDuplicateKeyRetriesAsUpdate(t *testing.T) {
	responses, _, _, _, svc := newResponseFixture()
	raced := &model.Response{ID: 55, UserID: 7, ItemID: 12, CompanyID: 3, Response: "Maybe"}

	responses.On("FindByUserAndItem", mock.Anything, uint(7), uint(12), uint(3)).Return(nil, gorm.ErrRecordNotFound).Once()
	responses.On("ExistsForItemInCompany", mock.Anything, uint(3), uint(12), uint(7)).Return(false, nil)
	responses.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	responses.On("FindByUserAndItem", mock.Anything, uint(7), uint(12), uint(3)).Return(raced, nil).Once()
	responses.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Response) bool {
		return r.ID == 55 && r.Response == "Yes"
	})).Return(nil)

	result, err := svc.Submit(context.Background(), SubmissionTarget{UserID: 7, CompanyID: 3}, 12, "Yes", nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, result.Outcome)
	responses.AssertExpectations(t)
}

func TestResponseService_DeleteFile(t *testing.T) {
	responses, _, blobs, _, svc := newResponseFixture()
	existing := &model.Response{ID: 41, CompanyID: 3, Response: "Yes", FilePaths: []model.FileAttachment{
		{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"},
		{OriginalName: "B.pdf", StoredFileName: "2_B.pdf"},
	}}

	responses.On("FindByID", mock.Anything, uint(41), uint(3)).Return(existing, nil)
	blobs.On("Delete", mock.Anything, "1_A.pdf").Return(nil)
	responses.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Response) bool {
		return len(r.FilePaths) == 1 && r.FilePaths[0].StoredFileName == "2_B.pdf"
	})).Return(nil)

	err := svc.DeleteFile(context.Background(), 41, 3, "1_A.pdf")
	require.NoError(t, err)
	responses.AssertExpectations(t)
}

func TestResponseService_DeleteFileStorageFailureAbortsUpdate(t *testing.T) {
	responses, _, blobs, _, svc := newResponseFixture()
	existing := &model.Response{ID: 41, CompanyID: 3, FilePaths: []model.FileAttachment{
		{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"},
	}}

	responses.On("FindByID", mock.Anything, uint(41), uint(3)).Return(existing, nil)
	blobs.On("Delete", mock.Anything, "1_A.pdf").Return(assert.AnError)

	err := svc.DeleteFile(context.Background(), 41, 3, "1_A.pdf")
	require.Error(t, err)
	responses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResponseService_DeleteFileUnknownName(t *testing.T) {
	responses, _, _, _, svc := newResponseFixture()
	existing := &model.Response{ID: 41, CompanyID: 3, FilePaths: []model.FileAttachment{
		{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"},
	}}

	responses.On("FindByID", mock.Anything, uint(41), uint(3)).Return(existing, nil)

	err := svc.DeleteFile(context.Background(), 41, 3, "9_missing.pdf")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResponseService_ListForUserSignsAttachments(t *testing.T) {
	responses, users, _, signer, svc := newResponseFixture()

	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, CompanyID: uintPtr(3)}, nil)
	responses.On("ListByCompany", mock.Anything, uint(3)).Return([]model.Response{
		{ID: 41, CompanyID: 3, Response: "Yes", FilePaths: []model.FileAttachment{
			{OriginalName: "A.pdf", StoredFileName: "1_A.pdf"},
		}},
	}, nil)
	signer.On("Sign", "1_A.pdf", time.Hour).Return("https://cdn.example.com/dd/1_A.pdf?token=x&expires=1", nil)

	views, err := svc.ListForUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].FilePaths, 1)
	assert.Equal(t, "https://cdn.example.com/dd/1_A.pdf?token=x&expires=1", views[0].FilePaths[0].SecureURL)
}

func TestResponseService_ListForUserWithoutCompany(t *testing.T) {
	_, users, _, _, svc := newResponseFixture()

	users.On("FindByID", mock.Anything, uint(8)).Return(&model.User{ID: 8}, nil)

	_, err := svc.ListForUser(context.Background(), 8)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResponseService_DownloadStripsFullURL(t *testing.T) {
	_, _, blobs, _, svc := newResponseFixture()

	blobs.On("Download", mock.Anything, "uploads/1700_report.pdf").
		Return(nil, "application/pdf", apperrors.ErrBlobNotFound)

	_, _, _, err := svc.Download(context.Background(), "https://cdn.example.com/uploads/1700_report.pdf")
	assert.ErrorIs(t, err, apperrors.ErrBlobNotFound)
	blobs.AssertExpectations(t)
}
