// Package auth handles credentials, session tokens and federated sign-in.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andrewpaige1/learning-tracker/models"
	"github.com/andrewpaige1/learning-tracker/validation"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a password account. req must already be validated.
func (s *Service) Register(ctx context.Context, req validation.RegisterRequest) (*models.User, error) {
	req.Normalize()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
	}
	// The count above races with concurrent registrations; the unique
	// index has the final say.
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("registered user")
	return user, nil
}

// Login checks credentials. Every failure returns ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err != nil || user.PasswordHash == nil {
		burnCompare(password)
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(*user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindOrCreate returns the user with the given email, creating one for
// first-time federated sign-ins. Name and image are filled in when missing.
func (s *Service) FindOrCreate(ctx context.Context, email, name, image string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("federated identity has no email")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Email: email, Name: name}
		if image != "" {
			user.Image = &image
		}
		err := s.db.WithContext(ctx).Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with another first sign-in for this email
			return s.FindOrCreate(ctx, email, name, image)
		}
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		log.Info().Str("user_id", user.ID).Msg("created user from federated login")
		return &user, nil
	case err != nil:
		return nil, fmt.Errorf("find user: %w", err)
	}

	updates := map[string]interface{}{}
	if user.Name == "" && name != "" {
		updates["name"] = name
	}
	if user.Image == nil && image != "" {
		updates["image"] = image
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return &user, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
