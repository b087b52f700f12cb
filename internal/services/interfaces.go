package services

import (
	"context"

	"enquirycrm/internal/domain"
)

// EnquiryRepository is the entity store the enquiry services read and write.
type EnquiryRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Enquiry, error)
	Create(ctx context.Context, e *domain.Enquiry) error
	Save(ctx context.Context, e *domain.Enquiry) error
	Delete(ctx context.Context, id uint) error
	Find(ctx context.Context, f domain.EnquiryFilter, sort domain.Sort) ([]domain.Enquiry, error)
	FindPage(ctx context.Context, f domain.EnquiryFilter, p domain.PageRequest) ([]domain.Enquiry, int64, error)
	Count(ctx context.Context, f domain.EnquiryFilter) (int64, error)
}

// SalesPersonRepository stores sales representatives.
type SalesPersonRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.SalesPerson, error)
	FindByEmail(ctx context.Context, email string) (*domain.SalesPerson, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.SalesPerson, error)
	Create(ctx context.Context, sp *domain.SalesPerson) error
	Save(ctx context.Context, sp *domain.SalesPerson) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, availableOnly bool) ([]domain.SalesPerson, error)
	FindPage(ctx context.Context, term string, p domain.PageRequest) ([]domain.SalesPerson, int64, error)
	Count(ctx context.Context, availableOnly bool) (int64, error)
}

// UserDirectory looks up authentication identities.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserRepository is a UserDirectory that can also write.
type UserRepository interface {
	UserDirectory
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
}

// CommentRepository stores comments and assigns their numbers.
type CommentRepository interface {
	ListByEnquiry(ctx context.Context, enquiryID uint) ([]domain.Comment, error)
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
	Add(ctx context.Context, c *domain.Comment) error
	Count(ctx context.Context, enquiryID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// ActivityRepository stores the sales activity log.
type ActivityRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Activity, error)
	Create(ctx context.Context, a *domain.Activity) error
	Save(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id uint) error
	FindPage(ctx context.Context, f domain.ActivityFilter, p domain.PageRequest) ([]domain.Activity, int64, error)
	Count(ctx context.Context, f domain.ActivityFilter) (int64, error)
}
