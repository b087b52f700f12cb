package services

import (
	"context"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
)

// CommentInput is the body of a new comment.
type CommentInput struct {
	CommentText string `json:"commentText" validate:"required,max=1000"`
	UserID      *uint  `json:"userId"`
}

// CommentService manages the numbered comments of an enquiry.
type CommentService struct {
	comments  CommentRepository
	enquiries EnquiryRepository
	settings
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentRepository, enquiries EnquiryRepository, opts ...Option) *CommentService {
	return &CommentService{comments: comments, enquiries: enquiries, settings: newSettings(opts)}
}

// List returns the enquiry's comments in number order.
func (s *CommentService) List(ctx context.Context, enquiryID uint) ([]domain.Comment, error) {
	if _, err := s.enquiries.FindByID(ctx, enquiryID); err != nil {
		return nil, err
	}
	return s.comments.ListByEnquiry(ctx, enquiryID)
}

// Add appends a comment; the store assigns the next number.
func (s *CommentService) Add(ctx context.Context, enquiryID uint, in CommentInput) (*domain.Comment, error) {
	log := logger.For("COMMENT").WithField("enquiry_id", enquiryID)
	in.CommentText = trimmedValue(in.CommentText)

	if err := validateStruct(in); err != nil {
		log.WithError(err).Warn("Add failed: validation error")
		return nil, err
	}
	if _, err := s.enquiries.FindByID(ctx, enquiryID); err != nil {
		log.WithError(err).Warn("Add failed: enquiry lookup")
		return nil, err
	}

	now := s.stamp()
	c := &domain.Comment{
		EnquiryID:   enquiryID,
		UserID:      in.UserID,
		CommentText: in.CommentText,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.comments.Add(ctx, c); err != nil {
		log.WithError(err).Error("Add failed: database error")
		return nil, err
	}
	log.WithField("number", c.CommentNumber).Info("Add successful")
	return c, nil
}

func (s *CommentService) Count(ctx context.Context, enquiryID uint) (int64, error) {
	return s.comments.Count(ctx, enquiryID)
}

func (s *CommentService) Delete(ctx context.Context, commentID uint) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	logger.For("COMMENT").WithField("id", commentID).Info("Delete successful")
	return nil
}
