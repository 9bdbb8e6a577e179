package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
)

const testLoginURL = "https://app.example.com/login"

func newUserFixture() (*MockUserRepository, *MockCompanyRepository, *MockMailer, UserService) {
	users := new(MockUserRepository)
	companies := new(MockCompanyRepository)
	mailer := new(MockMailer)
	svc := NewUserService(users, companies, mailer, testLoginURL)
	return users, companies, mailer, svc
}

func TestUserService_Create(t *testing.T) {
	users, companies, mailer, svc := newUserFixture()

	companies.On("FindByID", mock.Anything, uint(3)).Return(&model.Company{ID: 3}, nil)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" && u.Role == model.RoleUser && *u.CompanyID == 3 &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)
	mailer.On("Send", "new@example.com", "Your New Account", mock.Anything, "").Return(nil)

	user, err := svc.Create(context.Background(), "new@example.com", "password123", "manager", 3)
	require.NoError(t, err)

	// Unknown roles are demoted to the regular role.
	assert.Equal(t, model.RoleUser, user.Role)
	users.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestUserService_CreateEmailTaken(t *testing.T) {
	users, companies, _, svc := newUserFixture()

	companies.On("FindByID", mock.Anything, uint(3)).Return(&model.Company{ID: 3}, nil)
	users.On("FindByEmail", mock.Anything, "dup@example.com").Return(&model.User{ID: 2}, nil)

	_, err := svc.Create(context.Background(), "dup@example.com", "password123", model.RoleUser, 3)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateShortPassword(t *testing.T) {
	_, _, _, svc := newUserFixture()

	_, err := svc.Create(context.Background(), "a@example.com", "short", model.RoleUser, 3)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_CreateInvalidCompany(t *testing.T) {
	users, companies, _, svc := newUserFixture()

	companies.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), "a@example.com", "password123", model.RoleUser, 99)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_CreateMailFailureDoesNotFail(t *testing.T) {
	users, companies, mailer, svc := newUserFixture()

	companies.On("FindByID", mock.Anything, uint(3)).Return(&model.Company{ID: 3}, nil)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Create(context.Background(), "new@example.com", "password123", model.RoleAdmin, 3)
	require.NoError(t, err)
}

func TestUserService_ResetPassword(t *testing.T) {
	users, _, _, svc := newUserFixture()

	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7}, nil)
	users.On("UpdatePassword", mock.Anything, uint(7), mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")) == nil
	})).Return(nil)

	err := svc.ResetPassword(context.Background(), 7, "newpassword")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), 7, "short")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_SendCredentials(t *testing.T) {
	users, _, mailer, svc := newUserFixture()

	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Email: "u@example.com"}, nil)
	mailer.On("Send", "u@example.com", "Your Account Credentials", mock.Anything, mock.Anything).
		Return(assert.AnError)

	err := svc.SendCredentials(context.Background(), 7, "password123")
	require.Error(t, err)

	err = svc.SendCredentials(context.Background(), 7, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
