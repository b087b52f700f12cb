package services

import (
	"context"
	"strings"
	"time"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"
)

// FilterParams is the dashboard filter. Nil fields are unconstrained.
type FilterParams struct {
	Status        *domain.EnquiryStatus
	InterestLevel *domain.InterestLevel
	SalesPersonID *uint
	ActiveOnly    bool
	From          *time.Time
	To            *time.Time
}

// Filter converts p into the store predicate.
func (p FilterParams) Filter() domain.EnquiryFilter {
	return domain.EnquiryFilter{
		Status:        p.Status,
		InterestLevel: p.InterestLevel,
		SalesPersonID: p.SalesPersonID,
		ActiveOnly:    p.ActiveOnly,
		CreatedFrom:   p.From,
		CreatedTo:     p.To,
	}
}

// QueryService answers listing, search and count requests. It never writes.
type QueryService struct {
	enquiries EnquiryRepository
}

// NewQueryService creates a new query service
func NewQueryService(enquiries EnquiryRepository) *QueryService {
	return &QueryService{enquiries: enquiries}
}

// List pages through all enquiries.
func (s *QueryService) List(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{}, p)
}

// Search matches term against name, email, phone and remarks. A blank term
// matches every enquiry.
func (s *QueryService) Search(ctx context.Context, term string, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{Term: strings.TrimSpace(term)}, p)
}

// Filtered applies the AND of every set field in f.
func (s *QueryService) Filtered(ctx context.Context, f FilterParams, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, f.Filter(), p)
}

func (s *QueryService) ByStatus(ctx context.Context, status domain.EnquiryStatus, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{Status: &status}, p)
}

func (s *QueryService) ByInterestLevel(ctx context.Context, level domain.InterestLevel, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{InterestLevel: &level}, p)
}

func (s *QueryService) BySalesPerson(ctx context.Context, salesPersonID uint, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{SalesPersonID: &salesPersonID}, p)
}

// Unassigned lists enquiries with no sales person. Enquiries whose sales
// person was deleted still count as assigned.
func (s *QueryService) Unassigned(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.page(ctx, domain.EnquiryFilter{Unassigned: true}, p)
}

// Active lists enquiries in IN_PROGRESS.
func (s *QueryService) Active(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.ByStatus(ctx, domain.StatusInProgress, p)
}

// HotLeads lists enquiries with interest level HOT.
func (s *QueryService) HotLeads(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	return s.ByInterestLevel(ctx, domain.InterestHot, p)
}

func (s *QueryService) CountTotal(ctx context.Context) (int64, error) {
	return s.enquiries.Count(ctx, domain.EnquiryFilter{})
}

func (s *QueryService) CountByStatus(ctx context.Context, status domain.EnquiryStatus) (int64, error) {
	return s.enquiries.Count(ctx, domain.EnquiryFilter{Status: &status})
}

func (s *QueryService) CountByInterestLevel(ctx context.Context, level domain.InterestLevel) (int64, error) {
	return s.enquiries.Count(ctx, domain.EnquiryFilter{InterestLevel: &level})
}

func (s *QueryService) CountBySalesPerson(ctx context.Context, salesPersonID uint) (int64, error) {
	return s.enquiries.Count(ctx, domain.EnquiryFilter{SalesPersonID: &salesPersonID})
}

// Count uses the same predicate as Filtered, so the two always agree.
func (s *QueryService) Count(ctx context.Context, f FilterParams) (int64, error) {
	return s.enquiries.Count(ctx, f.Filter())
}

func (s *QueryService) page(ctx context.Context, f domain.EnquiryFilter, p domain.PageRequest) (domain.Page[domain.Enquiry], error) {
	p, err := checkPage(p, domain.DefaultEnquirySort)
	if err != nil {
		return domain.Page[domain.Enquiry]{}, err
	}
	rows, total, err := s.enquiries.FindPage(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Enquiry]{}, err
	}
	return domain.NewPage(rows, p.Page, p.Size, total), nil
}

// checkPage rejects negative pages and empty sizes, caps the size and fills
// in the default order.
func checkPage(p domain.PageRequest, def domain.Sort) (domain.PageRequest, error) {
	if p.Page < 0 {
		return p, apperrors.Validation("page must not be negative")
	}
	if p.Size < 1 {
		return p, apperrors.Validation("size must be at least 1")
	}
	if p.Size > domain.MaxPageSize {
		p.Size = domain.MaxPageSize
	}
	if p.Sort.Column == "" {
		p.Sort = def
	}
	return p, nil
}
