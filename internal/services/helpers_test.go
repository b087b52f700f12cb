package services

import (
	"context"
	"testing"
	"time"

	"enquirycrm/internal/database/dbtest"
	"enquirycrm/internal/domain"
	"enquirycrm/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	enquiries    *store.EnquiryStore
	salesPersons *store.SalesPersonStore
	users        *store.UserStore
	comments     *store.CommentStore
	activities   *store.ActivityStore
	clock        *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	return &fixture{
		enquiries:    store.NewEnquiryStore(db),
		salesPersons: store.NewSalesPersonStore(db),
		users:        store.NewUserStore(db),
		comments:     store.NewCommentStore(db),
		activities:   store.NewActivityStore(db),
		clock:        &fakeClock{t: time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)},
	}
}

func (f *fixture) enquiryService() *EnquiryService {
	return NewEnquiryService(f.enquiries, f.salesPersons, WithClock(f.clock.Now))
}

func (f *fixture) assignmentService() *AssignmentService {
	return NewAssignmentService(f.enquiries, f.salesPersons, f.users, WithClock(f.clock.Now))
}

func (f *fixture) rep(t *testing.T, name, email string, available bool) *domain.SalesPerson {
	t.Helper()
	sp := &domain.SalesPerson{Name: name, Available: available, CreatedAt: f.clock.Now()}
	if email != "" {
		sp.Email = &email
	}
	require.NoError(t, f.salesPersons.Create(context.Background(), sp))
	return sp
}

func (f *fixture) enquiry(t *testing.T, name string, mut ...func(*domain.Enquiry)) *domain.Enquiry {
	t.Helper()
	now := f.clock.Now()
	e := &domain.Enquiry{CustomerName: name, CreatedAt: now, UpdatedAt: now}
	for _, m := range mut {
		m(e)
	}
	require.NoError(t, f.enquiries.Create(context.Background(), e))
	return e
}

func assignedTo(id uint) func(*domain.Enquiry) {
	return func(e *domain.Enquiry) { e.AssignedToID = &id }
}

func withStatus(s domain.EnquiryStatus) func(*domain.Enquiry) {
	return func(e *domain.Enquiry) { e.Status = s }
}

func followUpAt(at time.Time) func(*domain.Enquiry) {
	return func(e *domain.Enquiry) {
		at := at.UTC()
		e.NextFollowUpAt = &at
	}
}

func ptr[T any](v T) *T { return &v }

func enquiryIDs(rows []domain.Enquiry) []uint {
	out := make([]uint, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
