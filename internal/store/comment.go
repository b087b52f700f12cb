package store

import (
	"context"

	"enquirycrm/internal/domain"

	"gorm.io/gorm"
)

// CommentStore persists enquiry comments and owns their numbering.
type CommentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a new comment store
func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByEnquiry returns the comments of one enquiry in number order.
func (s *CommentStore) ListByEnquiry(ctx context.Context, enquiryID uint) ([]domain.Comment, error) {
	var rows []domain.Comment
	err := s.db.WithContext(ctx).
		Where("enquiry_id = ?", enquiryID).
		Order("comment_number").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "comment")
	}
	return rows, nil
}

func (s *CommentStore) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "comment")
	}
	return &c, nil
}

// Add assigns c the next number for its enquiry and inserts it. The unique
// (enquiry_id, comment_number) index rejects a concurrent duplicate as a
// conflict instead of reusing a number.
func (s *CommentStore) Add(ctx context.Context, c *domain.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&domain.Comment{}).
			Where("enquiry_id = ?", c.EnquiryID).
			Select("COALESCE(MAX(comment_number), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		c.CommentNumber = last + 1
		return tx.Create(c).Error
	})
	return translate(err, "comment")
}

func (s *CommentStore) Count(ctx context.Context, enquiryID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Comment{}).Where("enquiry_id = ?", enquiryID).Count(&n).Error
	if err != nil {
		return 0, translate(err, "comment")
	}
	return n, nil
}

func (s *CommentStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if res.Error != nil {
		return translate(res.Error, "comment")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "comment")
	}
	return nil
}
