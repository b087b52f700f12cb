package services

import (
	"context"
	"strings"
	"time"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	apperrors "enquirycrm/pkg/errors"
)

// ActivityInput is the body for logging or replacing an activity.
type ActivityInput struct {
	EnquiryID     *uint               `json:"enquiryId"`
	SalesPersonID *uint               `json:"salesPersonId"`
	ActivityType  domain.ActivityType `json:"activityType" validate:"required,enum"`
	Notes         *string             `json:"notes" validate:"omitnil,max=1000"`
	ActivityDate  *time.Time          `json:"activityDate"`
}

// ActivityService keeps the sales activity log.
type ActivityService struct {
	activities ActivityRepository
	settings
}

var defaultActivitySort = domain.Sort{Column: "activity_date", Desc: true}

var activitySortColumns = map[string]string{
	"id":           "id",
	"activityDate": "activity_date",
	"activityType": "activity_type",
}

// NewActivityService creates a new activity service
func NewActivityService(activities ActivityRepository, opts ...Option) *ActivityService {
	return &ActivityService{activities: activities, settings: newSettings(opts)}
}

// ParseActivitySort resolves an API sort key, defaulting to newest first.
func ParseActivitySort(field, dir string) (domain.Sort, error) {
	sort := defaultActivitySort
	if field != "" {
		col, ok := activitySortColumns[field]
		if !ok {
			return domain.Sort{}, apperrors.Validation("unsupported sort field %q", field)
		}
		sort.Column = col
	}
	switch strings.ToLower(dir) {
	case "":
	case "asc":
		sort.Desc = false
	case "desc":
		sort.Desc = true
	default:
		return domain.Sort{}, apperrors.Validation("unsupported sort direction %q", dir)
	}
	return sort, nil
}

// Log records a new activity dated now unless the input says otherwise.
func (s *ActivityService) Log(ctx context.Context, in ActivityInput) (*domain.Activity, error) {
	log := logger.For("ACTIVITY")
	if err := validateStruct(in); err != nil {
		log.WithError(err).Warn("Log failed: validation error")
		return nil, err
	}
	a := &domain.Activity{}
	s.fill(a, in)
	if err := s.activities.Create(ctx, a); err != nil {
		log.WithError(err).Error("Log failed: database error")
		return nil, err
	}
	log.WithFields(map[string]any{"id": a.ID, "type": a.ActivityType}).Info("Log successful")
	return a, nil
}

func (s *ActivityService) Get(ctx context.Context, id uint) (*domain.Activity, error) {
	return s.activities.FindByID(ctx, id)
}

// Update replaces every field of the activity.
func (s *ActivityService) Update(ctx context.Context, id uint, in ActivityInput) (*domain.Activity, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	a, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fill(a, in)
	if err := s.activities.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ActivityService) fill(a *domain.Activity, in ActivityInput) {
	a.EnquiryID = in.EnquiryID
	a.SalesPersonID = in.SalesPersonID
	a.ActivityType = in.ActivityType
	a.Notes = in.Notes
	a.ActivityDate = s.stamp()
	if in.ActivityDate != nil {
		a.ActivityDate = in.ActivityDate.UTC()
	}
}

func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	return s.activities.Delete(ctx, id)
}

// Find pages through activities matching f.
func (s *ActivityService) Find(ctx context.Context, f domain.ActivityFilter, p domain.PageRequest) (domain.Page[domain.Activity], error) {
	p, err := checkPage(p, defaultActivitySort)
	if err != nil {
		return domain.Page[domain.Activity]{}, err
	}
	rows, total, err := s.activities.FindPage(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Activity]{}, err
	}
	return domain.NewPage(rows, p.Page, p.Size, total), nil
}

// Recent returns the latest limit activities.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	page, err := s.Find(ctx, domain.ActivityFilter{}, domain.PageRequest{Size: limit})
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// ByEnquiry lists every activity of one enquiry, newest first.
func (s *ActivityService) ByEnquiry(ctx context.Context, enquiryID uint) ([]domain.Activity, error) {
	return s.all(ctx, domain.ActivityFilter{EnquiryID: &enquiryID})
}

// BySalesPerson lists every activity of one sales person, newest first.
func (s *ActivityService) BySalesPerson(ctx context.Context, salesPersonID uint) ([]domain.Activity, error) {
	return s.all(ctx, domain.ActivityFilter{SalesPersonID: &salesPersonID})
}

// ByType lists every activity of one type, newest first.
func (s *ActivityService) ByType(ctx context.Context, t domain.ActivityType) ([]domain.Activity, error) {
	return s.all(ctx, domain.ActivityFilter{ActivityType: &t})
}

func (s *ActivityService) Count(ctx context.Context, f domain.ActivityFilter) (int64, error) {
	return s.activities.Count(ctx, f)
}

func (s *ActivityService) all(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	page, err := s.Find(ctx, f, domain.PageRequest{Size: domain.MaxPageSize})
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}
