package store

import (
	"context"

	"enquirycrm/internal/domain"

	"gorm.io/gorm"
)

// UserStore persists authentication identities.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

// Create inserts u. A taken username or email surfaces as a conflict.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error, "user")
}

func (s *UserStore) Save(ctx context.Context, u *domain.User) error {
	return translate(s.db.WithContext(ctx).Save(u).Error, "user")
}
