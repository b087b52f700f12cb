package store

import (
	"context"
	"strings"

	"enquirycrm/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnquiryStore persists enquiries.
type EnquiryStore struct {
	db *gorm.DB
}

// NewEnquiryStore creates a new enquiry store
func NewEnquiryStore(db *gorm.DB) *EnquiryStore {
	return &EnquiryStore{db: db}
}

// FindByID loads one enquiry.
func (s *EnquiryStore) FindByID(ctx context.Context, id uint) (*domain.Enquiry, error) {
	var e domain.Enquiry
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err, "enquiry")
	}
	return &e, nil
}

// Create inserts e and fills in its id.
func (s *EnquiryStore) Create(ctx context.Context, e *domain.Enquiry) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error, "enquiry")
}

// Save writes every column of e.
func (s *EnquiryStore) Save(ctx context.Context, e *domain.Enquiry) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error, "enquiry")
}

// Delete removes the enquiry. Comments and activities are left in place.
func (s *EnquiryStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Enquiry{}, id)
	if res.Error != nil {
		return translate(res.Error, "enquiry")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "enquiry")
	}
	return nil
}

// Find returns every enquiry matching f in the given order.
func (s *EnquiryStore) Find(ctx context.Context, f domain.EnquiryFilter, sort domain.Sort) ([]domain.Enquiry, error) {
	var rows []domain.Enquiry
	q := orderBy(s.filtered(ctx, f), sort)
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err, "enquiry")
	}
	return rows, nil
}

// FindPage returns one page of enquiries matching f plus the total match count.
func (s *EnquiryStore) FindPage(ctx context.Context, f domain.EnquiryFilter, p domain.PageRequest) ([]domain.Enquiry, int64, error) {
	total, err := s.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	var rows []domain.Enquiry
	q := paginate(orderBy(s.filtered(ctx, f), p.Sort), p)
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, translate(err, "enquiry")
	}
	return rows, total, nil
}

// Count returns the number of enquiries matching f.
func (s *EnquiryStore) Count(ctx context.Context, f domain.EnquiryFilter) (int64, error) {
	var n int64
	if err := s.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err, "enquiry")
	}
	return n, nil
}

func (s *EnquiryStore) filtered(ctx context.Context, f domain.EnquiryFilter) *gorm.DB {
	return s.db.WithContext(ctx).Model(&domain.Enquiry{}).Scopes(enquiryFilter(f))
}

// enquiryFilter turns f into WHERE clauses. Listing and counting share it so
// their results always agree.
func enquiryFilter(f domain.EnquiryFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.Status != nil {
			q = q.Where("status = ?", *f.Status)
		}
		if f.InterestLevel != nil {
			q = q.Where("interest_level = ?", *f.InterestLevel)
		}
		if f.SalesPersonID != nil {
			q = q.Where("sales_person_id = ?", *f.SalesPersonID)
		} else if f.Unassigned {
			q = q.Where("sales_person_id IS NULL")
		}
		if f.ActiveOnly {
			q = q.Where("status IN ?", domain.ActiveStatuses())
		}
		// Stored timestamps are UTC; bounds must be too for sqlite text comparison.
		if f.CreatedFrom != nil {
			q = q.Where("created_at >= ?", f.CreatedFrom.UTC())
		}
		if f.CreatedTo != nil {
			q = q.Where("created_at <= ?", f.CreatedTo.UTC())
		}
		if f.FollowUpFrom != nil {
			q = q.Where("next_follow_up_at >= ?", f.FollowUpFrom.UTC())
		}
		if f.FollowUpTo != nil {
			q = q.Where("next_follow_up_at <= ?", f.FollowUpTo.UTC())
		}
		if term := strings.TrimSpace(f.Term); term != "" {
			p := containsPattern(term)
			q = q.Where(
				"(LOWER(customer_name) LIKE ? ESCAPE '!' OR LOWER(customer_email) LIKE ? ESCAPE '!' "+
					"OR LOWER(customer_phone) LIKE ? ESCAPE '!' OR LOWER(remarks) LIKE ? ESCAPE '!')",
				p, p, p, p,
			)
		}
		return q
	}
}
