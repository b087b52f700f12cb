package store

import (
	"context"
	"strings"

	"enquirycrm/internal/domain"

	"gorm.io/gorm"
)

// SalesPersonStore persists sales representatives.
type SalesPersonStore struct {
	db *gorm.DB
}

// NewSalesPersonStore creates a new sales person store
func NewSalesPersonStore(db *gorm.DB) *SalesPersonStore {
	return &SalesPersonStore{db: db}
}

func (s *SalesPersonStore) FindByID(ctx context.Context, id uint) (*domain.SalesPerson, error) {
	var sp domain.SalesPerson
	if err := s.db.WithContext(ctx).First(&sp, id).Error; err != nil {
		return nil, translate(err, "sales person")
	}
	return &sp, nil
}

// FindByEmail returns the lowest-id sales person with exactly this email.
func (s *SalesPersonStore) FindByEmail(ctx context.Context, email string) (*domain.SalesPerson, error) {
	var sp domain.SalesPerson
	err := s.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&sp).Error
	if err != nil {
		return nil, translate(err, "sales person")
	}
	return &sp, nil
}

// FindByIDs loads the sales persons that still exist among ids.
func (s *SalesPersonStore) FindByIDs(ctx context.Context, ids []uint) ([]domain.SalesPerson, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []domain.SalesPerson
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err, "sales person")
	}
	return rows, nil
}

func (s *SalesPersonStore) Create(ctx context.Context, sp *domain.SalesPerson) error {
	return translate(s.db.WithContext(ctx).Create(sp).Error, "sales person")
}

func (s *SalesPersonStore) Save(ctx context.Context, sp *domain.SalesPerson) error {
	return translate(s.db.WithContext(ctx).Save(sp).Error, "sales person")
}

// Delete removes the sales person. Enquiries keep their dangling reference.
func (s *SalesPersonStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.SalesPerson{}, id)
	if res.Error != nil {
		return translate(res.Error, "sales person")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "sales person")
	}
	return nil
}

// List returns sales persons in id order, optionally only available ones.
// Auto-assignment relies on this order for tie-breaking.
func (s *SalesPersonStore) List(ctx context.Context, availableOnly bool) ([]domain.SalesPerson, error) {
	q := s.db.WithContext(ctx).Model(&domain.SalesPerson{})
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	var rows []domain.SalesPerson
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "sales person")
	}
	return rows, nil
}

// FindPage pages through sales persons sorted by name. A non-blank term
// matches name, email or phone case-insensitively.
func (s *SalesPersonStore) FindPage(ctx context.Context, term string, p domain.PageRequest) ([]domain.SalesPerson, int64, error) {
	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&domain.SalesPerson{})
		if t := strings.TrimSpace(term); t != "" {
			pat := containsPattern(t)
			q = q.Where(
				"(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!' OR LOWER(phone) LIKE ? ESCAPE '!')",
				pat, pat, pat,
			)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translate(err, "sales person")
	}
	var rows []domain.SalesPerson
	if err := paginate(orderBy(base(), p.Sort), p).Find(&rows).Error; err != nil {
		return nil, 0, translate(err, "sales person")
	}
	return rows, total, nil
}

func (s *SalesPersonStore) Count(ctx context.Context, availableOnly bool) (int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.SalesPerson{})
	if availableOnly {
		q = q.Where("available = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate(err, "sales person")
	}
	return n, nil
}
