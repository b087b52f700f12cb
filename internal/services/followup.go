package services

import (
	"context"
	"time"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"
)

// FollowUpScanner finds enquiries whose next follow-up falls inside a window
// of calendar days. It only reads; scheduling and delivery live elsewhere.
type FollowUpScanner struct {
	enquiries EnquiryRepository
	settings
}

// NewFollowUpScanner creates a scanner. Days are computed in the zone given
// by WithLocation, time.Local by default.
func NewFollowUpScanner(enquiries EnquiryRepository, opts ...Option) *FollowUpScanner {
	return &FollowUpScanner{enquiries: enquiries, settings: newSettings(opts)}
}

// Window returns [today 00:00:00, today+days 23:59:59] in the scanner's zone.
func (s *FollowUpScanner) Window(days int) (time.Time, time.Time) {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	to := time.Date(y, m, d+days, 23, 59, 59, 0, s.loc)
	return from, to
}

// Due lists enquiries with a follow-up in the window of windowDays days,
// optionally only those assigned to salesPersonID, earliest first.
func (s *FollowUpScanner) Due(ctx context.Context, salesPersonID *uint, windowDays int) ([]domain.Enquiry, error) {
	if windowDays < 0 {
		return nil, apperrors.Validation("window days must not be negative")
	}
	from, to := s.Window(windowDays)
	f := domain.EnquiryFilter{
		SalesPersonID: salesPersonID,
		FollowUpFrom:  &from,
		FollowUpTo:    &to,
	}
	return s.enquiries.Find(ctx, f, domain.Sort{Column: "next_follow_up_at"})
}

// DueToday lists every follow-up due today.
func (s *FollowUpScanner) DueToday(ctx context.Context) ([]domain.Enquiry, error) {
	return s.Due(ctx, nil, 0)
}

// DueTodayFor lists today's follow-ups of one sales person.
func (s *FollowUpScanner) DueTodayFor(ctx context.Context, salesPersonID uint) ([]domain.Enquiry, error) {
	return s.Due(ctx, &salesPersonID, 0)
}

// DueWithinDays lists one sales person's follow-ups from today through the
// end of the day n days ahead.
func (s *FollowUpScanner) DueWithinDays(ctx context.Context, salesPersonID uint, n int) ([]domain.Enquiry, error) {
	return s.Due(ctx, &salesPersonID, n)
}
