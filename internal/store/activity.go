package store

import (
	"context"
	"strings"

	"enquirycrm/internal/domain"

	"gorm.io/gorm"
)

// ActivityStore persists the sales activity log.
type ActivityStore struct {
	db *gorm.DB
}

// NewActivityStore creates a new activity store
func NewActivityStore(db *gorm.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) FindByID(ctx context.Context, id uint) (*domain.Activity, error) {
	var a domain.Activity
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, "activity")
	}
	return &a, nil
}

func (s *ActivityStore) Create(ctx context.Context, a *domain.Activity) error {
	return translate(s.db.WithContext(ctx).Create(a).Error, "activity")
}

// Save writes every column of a.
func (s *ActivityStore) Save(ctx context.Context, a *domain.Activity) error {
	return translate(s.db.WithContext(ctx).Save(a).Error, "activity")
}

func (s *ActivityStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Activity{}, id)
	if res.Error != nil {
		return translate(res.Error, "activity")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "activity")
	}
	return nil
}

// FindPage returns activities matching f, newest first.
func (s *ActivityStore) FindPage(ctx context.Context, f domain.ActivityFilter, p domain.PageRequest) ([]domain.Activity, int64, error) {
	total, err := s.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	var rows []domain.Activity
	q := paginate(orderBy(s.filtered(ctx, f), p.Sort), p)
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, translate(err, "activity")
	}
	return rows, total, nil
}

func (s *ActivityStore) Count(ctx context.Context, f domain.ActivityFilter) (int64, error) {
	var n int64
	if err := s.filtered(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err, "activity")
	}
	return n, nil
}

func (s *ActivityStore) filtered(ctx context.Context, f domain.ActivityFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.Activity{})
	if f.EnquiryID != nil {
		q = q.Where("enquiry_id = ?", *f.EnquiryID)
	}
	if f.SalesPersonID != nil {
		q = q.Where("sales_person_id = ?", *f.SalesPersonID)
	}
	if f.ActivityType != nil {
		q = q.Where("activity_type = ?", *f.ActivityType)
	}
	if f.From != nil {
		q = q.Where("activity_date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("activity_date <= ?", f.To.UTC())
	}
	if t := strings.TrimSpace(f.Term); t != "" {
		q = q.Where("LOWER(notes) LIKE ? ESCAPE '!'", containsPattern(t))
	}
	return q
}
