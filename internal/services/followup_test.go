package services

import (
	"context"
	"testing"
	"time"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func (f *fixture) scanner() *FollowUpScanner {
	return NewFollowUpScanner(f.enquiries, WithClock(f.clock.Now), WithLocation(ist))
}

func TestFollowUpScanner_Window(t *testing.T) {
	f := newFixture(t)
	from, to := f.scanner().Window(0)

	// 10:30 UTC is 16:00 in IST, same calendar day.
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, ist), from)
	assert.Equal(t, time.Date(2025, 6, 2, 23, 59, 59, 0, ist), to)

	_, to = f.scanner().Window(7)
	assert.Equal(t, time.Date(2025, 6, 9, 23, 59, 59, 0, ist), to)
}

func TestFollowUpScanner_DueTodayBoundaries(t *testing.T) {
	f := newFixture(t)
	at := func(d, h, m, s int) time.Time { return time.Date(2025, 6, d, h, m, s, 0, ist) }

	start := f.enquiry(t, "start", followUpAt(at(2, 0, 0, 0)))
	end := f.enquiry(t, "end", followUpAt(at(2, 23, 59, 59)))
	mid := f.enquiry(t, "mid", followUpAt(at(2, 9, 15, 0)))
	f.enquiry(t, "tomorrow", followUpAt(at(3, 0, 0, 1)))
	f.enquiry(t, "yesterday", followUpAt(at(1, 23, 59, 59)))
	f.enquiry(t, "none")

	due, err := f.scanner().DueToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{start.ID, mid.ID, end.ID}, enquiryIDs(due))
}

func TestFollowUpScanner_PerSalesPersonAndWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rep := f.rep(t, "Rep", "", true)
	other := f.rep(t, "Other", "", true)
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, ist) }

	today := f.enquiry(t, "today", assignedTo(rep.ID), followUpAt(day(2)))
	week := f.enquiry(t, "in a week", assignedTo(rep.ID), followUpAt(day(9)))
	f.enquiry(t, "too late", assignedTo(rep.ID), followUpAt(day(10)))
	f.enquiry(t, "someone else", assignedTo(other.ID), followUpAt(day(2)))

	s := f.scanner()
	got, err := s.DueTodayFor(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{today.ID}, enquiryIDs(got))

	got, err = s.DueWithinDays(ctx, rep.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{today.ID, week.ID}, enquiryIDs(got))

	_, err = s.DueWithinDays(ctx, rep.ID, -1)
	assert.True(t, apperrors.IsValidation(err))
}

func TestFollowUpScanner_DoesNotWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.enquiry(t, "due", followUpAt(time.Date(2025, 6, 2, 12, 0, 0, 0, ist)))

	_, err := f.scanner().DueToday(ctx)
	require.NoError(t, err)

	got, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.True(t, got.UpdatedAt.Equal(e.UpdatedAt))
}
