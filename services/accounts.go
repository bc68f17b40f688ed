package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/models"
	"gorm.io/gorm"
)

const (
	msgEmailExists        = "Email already exists"
	msgUserNotFound       = "User was not found"
	msgInvalidCredentials = "Invalid email or password"
	msgUserDoesNotExist   = "User does not exist"
	msgFacultyNotFound    = "Faculty does not exist"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=5,max=72"`
	FullName string `json:"fullName" validate:"required,max=200"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch edits the caller's profile. Nil fields are left as they are.
type ProfilePatch struct {
	FullName    *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

func (p ProfilePatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.FullName != nil {
		fields["fullname"] = *p.FullName
	}
	if p.Bio != nil {
		fields["bio"] = *p.Bio
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

type FacultyInput struct {
	FacultyID uint `json:"facultyId" validate:"required"`
}

type AccountService struct {
	store     Store
	tokens    *TokenIssuer
	reference *ReferenceCache
	now       func() time.Time
}

func NewAccountService(store Store, tokens *TokenIssuer, reference *ReferenceCache) *AccountService {
	return &AccountService{
		store:     store,
		tokens:    tokens,
		reference: reference,
		now:       time.Now,
	}
}

// Register creates a user and returns an access token for it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := normalizeEmail(in.Email)

	_, err := s.store.Users().FindByEmail(ctx, email)
	if err == nil {
		return "", errs.NewConflictError(msgEmailExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.NewDatabaseError("find", "user", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to hash password", err)
	}

	user := &models.User{
		Email:    email,
		FullName: in.FullName,
		Password: hash,
	}
	if err := s.store.Users().Add(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", errs.NewConflictError(msgEmailExists)
		}
		return "", errs.NewDatabaseError("create", "user", err)
	}

	return s.issue(user.ID)
}

// Login checks the credentials, records the login time and returns an access token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewUnauthorizedError(msgUserNotFound)
		}
		return "", errs.NewDatabaseError("find", "user", err)
	}

	if !checkPassword(user.Password, in.Password) {
		return "", errs.NewUnauthorizedError(msgInvalidCredentials)
	}

	if err := s.store.Users().TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		return "", errs.NewDatabaseError("update", "user", err)
	}

	return s.issue(user.ID)
}

func (s *AccountService) issue(userID uint) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to sign token", err)
	}
	return token, nil
}

// Profile returns the user with faculty and categories. A token for a user
// that no longer exists gets a forbidden error.
func (s *AccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewForbiddenError(msgUserDoesNotExist)
		}
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	user.Password = ""
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) error {
	if err := s.ensureUser(ctx, s.store, userID); err != nil {
		return err
	}
	if err := s.store.Users().UpdateFields(ctx, userID, patch.fields()); err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}
	return nil
}

func (s *AccountService) Faculties(ctx context.Context) ([]models.Faculty, error) {
	return s.reference.Faculties(ctx)
}

func (s *AccountService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.reference.ReferenceCategories(ctx)
}

// SetCategories replaces the user's categories with the reconciled selection.
func (s *AccountService) SetCategories(ctx context.Context, userID uint, sel CategorySelection) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if err := s.ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		categories, err := ReconcileCategories(ctx, tx.Categories(), sel)
		if err != nil {
			return err
		}
		if err := tx.Users().ReplaceCategories(ctx, userID, categories); err != nil {
			return errs.NewDatabaseError("update", "user categories", err)
		}
		return nil
	})
}

func (s *AccountService) SetFaculty(ctx context.Context, userID uint, in FacultyInput) error {
	if err := s.ensureUser(ctx, s.store, userID); err != nil {
		return err
	}
	if _, err := s.store.Faculties().FindByID(ctx, in.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewBadRequestErrorWithField(msgFacultyNotFound, "facultyId", "")
		}
		return errs.NewDatabaseError("find", "faculty", err)
	}
	if err := s.store.Users().SetFaculty(ctx, userID, in.FacultyID); err != nil {
		return errs.NewDatabaseError("update", "user", err)
	}
	return nil
}

func (s *AccountService) ensureUser(ctx context.Context, store Store, userID uint) error {
	if _, err := store.Users().FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewBadRequestError(msgUserDoesNotExist)
		}
		return errs.NewDatabaseError("find", "user", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
