// Package store abstracts access to persisted user records so handlers
// don't talk to gorm directly and tests can swap in mocks
package store

import (
	"bitwise74/account-api/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned by lookups when no record matches
var ErrUserNotFound = errors.New("user not found")

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
}

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to query user by email, %w", err)
	}

	return &user, nil
}

func (s *GormUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to query user by id, %w", err)
	}

	return &user, nil
}

func (s *GormUserStore) Create(ctx context.Context, u *model.User) error {
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user, %w", err)
	}

	return nil
}

func (s *GormUserStore) Save(ctx context.Context, u *model.User) error {
	if err := s.DB.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("failed to save user, %w", err)
	}

	return nil
}
