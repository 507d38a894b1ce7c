package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agromopomulo.id/bankpohon/models"
)

// UserService handles portal accounts.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a plain user account.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	return s.create(ctx, email, password, fullName, models.RoleUser)
}

func (s *UserService) create(ctx context.Context, email, password, fullName, role string) (*models.User, error) {
	email = NormalizeEmail(email)

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, translate(err, ErrEmailTaken)
	}
	return &u, nil
}

// Authenticate checks email and password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return &u, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

// List returns one page of accounts ordered by email.
func (s *UserService) List(ctx context.Context, params models.ListParams) (models.Page[models.User], error) {
	page := models.Page[models.User]{Page: params.Page, Limit: params.Limit, Data: []models.User{}}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&page.Total).Error; err != nil {
		return page, err
	}
	err := db.Order("email").Limit(params.Limit).Offset(params.Offset()).Find(&page.Data).Error
	return page, err
}

// SetRole changes the role of an account.
func (s *UserService) SetRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

// EnsureAdmin creates the admin account, or promotes the existing account with
// that email. The password of an existing account is left unchanged.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, bool, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error
	switch {
	case err == nil:
		if u.Role != models.RoleAdmin {
			if err := s.db.WithContext(ctx).Model(&u).Update("role", models.RoleAdmin).Error; err != nil {
				return nil, false, err
			}
			u.Role = models.RoleAdmin
		}
		return &u, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created, err := s.create(ctx, email, password, "Administrator", models.RoleAdmin)
		return created, err == nil, err
	default:
		return nil, false, err
	}
}
