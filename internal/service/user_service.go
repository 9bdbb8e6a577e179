package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/HUPCF/Due-Diligence-Backend/internal/errors"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

const bcryptCost = 10

const minPasswordLength = 8

// MailSender is the outbound mail dependency. Failures are logged, never
// propagated to the primary operation.
type MailSender interface {
	Send(to, subject, text, html string) error
}

// UserService handles user administration.
type UserService interface {
	Create(ctx context.Context, email, password, role string, companyID uint) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uint) error
	ResetPassword(ctx context.Context, id uint, password string) error
	SendCredentials(ctx context.Context, id uint, password string) error
}

type userService struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	mailer    MailSender
	loginURL  string
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, companies repository.CompanyRepository, mailer MailSender, loginURL string) UserService {
	return &userService{
		users:     users,
		companies: companies,
		mailer:    mailer,
		loginURL:  loginURL,
	}
}

// Create provisions a user with an admin supplied password and notifies them
// by email. The notification never includes the password and its failure
// never fails the creation.
func (s *userService) Create(ctx context.Context, email, password, role string, companyID uint) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidation, minPasswordLength)
	}

	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid company id", apperrors.ErrValidation)
		}
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		CompanyID:    &companyID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	text := fmt.Sprintf("Hello,\n\nAn account has been created for you.\n\nLogin URL: %s\nEmail: %s\n\nIf you did not expect this account, please contact your administrator.\n\nThank you.", s.loginURL, email)
	if err := s.mailer.Send(email, "Your New Account", text, ""); err != nil {
		zap.L().Warn("welcome email failed", zap.String("email", email), zap.Error(err))
	}

	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// ResetPassword sets a new admin supplied password.
func (s *userService) ResetPassword(ctx context.Context, id uint, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidation, minPasswordLength)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, string(hashed))
}

// SendCredentials emails the user their login details. Unlike the welcome
// notification, this is the primary operation, so a mail failure is returned.
func (s *userService) SendCredentials(ctx context.Context, id uint, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required to send credentials email", apperrors.ErrValidation)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Hello,\n\nYour account credentials are:\n\nEmail: %s\nPassword: %s\n\nLogin URL: %s\n\nIf you did not request this information, please contact your administrator immediately.\n\nThank you.", user.Email, password, s.loginURL)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your Account Credentials</h2>
  <p>Hello,</p>
  <p>Your account credentials are:</p>
  <p><strong>Email:</strong> %s<br/><strong>Password:</strong> %s</p>
  <p><a href="%s">Login Here</a></p>
  <p>If you did not request this information, please contact your administrator immediately.</p>
</div>`, user.Email, password, s.loginURL)

	if err := s.mailer.Send(user.Email, "Your Account Credentials", text, html); err != nil {
		return fmt.Errorf("send credentials email: %w", err)
	}
	return nil
}
