package store

import (
	"context"
	"testing"
	"time"

	"enquirycrm/internal/database/dbtest"
	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func seedEnquiry(t *testing.T, s *EnquiryStore, name string, status domain.EnquiryStatus, offset time.Duration, mut ...func(*domain.Enquiry)) *domain.Enquiry {
	t.Helper()
	e := &domain.Enquiry{
		CustomerName: name,
		Status:       status,
		CreatedAt:    base.Add(offset),
		UpdatedAt:    base.Add(offset),
	}
	for _, m := range mut {
		m(e)
	}
	require.NoError(t, s.Create(context.Background(), e))
	return e
}

func TestEnquiryStore_CreateAppliesDefaults(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()

	e := &domain.Enquiry{CustomerName: "Asha", CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Create(ctx, e))
	require.NotZero(t, e.ID)

	got, err := s.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.Equal(t, domain.SourceWebsite, got.Source)
	assert.Equal(t, domain.DefaultPriority, got.Priority)
	assert.Nil(t, got.AssignedToID)
	assert.True(t, got.CreatedAt.Equal(base))
}

func TestEnquiryStore_FindByIDMissing(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))

	_, err := s.FindByID(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEnquiryStore_DeleteMissing(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()

	e := seedEnquiry(t, s, "Ravi", domain.StatusNew, 0)
	require.NoError(t, s.Delete(ctx, e.ID))
	assert.True(t, apperrors.IsNotFound(s.Delete(ctx, e.ID)))
}

func TestEnquiryStore_FilterCombinesWithAnd(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()
	rep := uint(7)
	hot := domain.InterestHot

	seedEnquiry(t, s, "new", domain.StatusNew, 0)
	inProgress := seedEnquiry(t, s, "in progress", domain.StatusInProgress, time.Hour, func(e *domain.Enquiry) {
		e.AssignedToID = &rep
		e.InterestLevel = &hot
	})
	scheduled := seedEnquiry(t, s, "scheduled", domain.StatusFollowUpScheduled, 2*time.Hour)
	seedEnquiry(t, s, "won", domain.StatusClosedWon, 3*time.Hour, func(e *domain.Enquiry) { e.AssignedToID = &rep })

	active, err := s.Find(ctx, domain.EnquiryFilter{ActiveOnly: true}, domain.Sort{Column: "id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{inProgress.ID, scheduled.ID}, ids(active))

	status := domain.StatusInProgress
	narrowed, err := s.Find(ctx, domain.EnquiryFilter{ActiveOnly: true, Status: &status}, domain.Sort{Column: "id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{inProgress.ID}, ids(narrowed))
	assert.Subset(t, ids(active), ids(narrowed))

	mine, err := s.Find(ctx, domain.EnquiryFilter{SalesPersonID: &rep, InterestLevel: &hot}, domain.DefaultEnquirySort)
	require.NoError(t, err)
	assert.Equal(t, []uint{inProgress.ID}, ids(mine))

	unassigned, err := s.Count(ctx, domain.EnquiryFilter{Unassigned: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, unassigned)
}

func TestEnquiryStore_CreatedRangeIsInclusive(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()

	seedEnquiry(t, s, "before", domain.StatusNew, -time.Second)
	first := seedEnquiry(t, s, "first", domain.StatusNew, 0)
	last := seedEnquiry(t, s, "last", domain.StatusNew, time.Hour)
	seedEnquiry(t, s, "after", domain.StatusNew, time.Hour+time.Microsecond)

	from, to := base, base.Add(time.Hour)
	rows, err := s.Find(ctx, domain.EnquiryFilter{CreatedFrom: &from, CreatedTo: &to}, domain.Sort{Column: "created_at"})
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, last.ID}, ids(rows))
}

func TestEnquiryStore_SearchIsCaseInsensitiveAndEscaped(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()

	byName := seedEnquiry(t, s, "Priya Sharma", domain.StatusNew, 0)
	byEmail := seedEnquiry(t, s, "A", domain.StatusNew, time.Minute, func(e *domain.Enquiry) {
		e.CustomerEmail = strPtr("SHARMA@example.com")
	})
	byRemarks := seedEnquiry(t, s, "B", domain.StatusNew, 2*time.Minute, func(e *domain.Enquiry) {
		e.Remarks = strPtr("wants 100% loan")
	})
	seedEnquiry(t, s, "C", domain.StatusNew, 3*time.Minute, func(e *domain.Enquiry) {
		e.CustomerPhone = strPtr("9876500000")
	})

	rows, err := s.Find(ctx, domain.EnquiryFilter{Term: "sharma"}, domain.Sort{Column: "id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{byName.ID, byEmail.ID}, ids(rows))

	rows, err = s.Find(ctx, domain.EnquiryFilter{Term: "100%"}, domain.Sort{Column: "id"})
	require.NoError(t, err)
	assert.Equal(t, []uint{byRemarks.ID}, ids(rows))

	n, err := s.Count(ctx, domain.EnquiryFilter{Term: "%"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.Count(ctx, domain.EnquiryFilter{Term: "   "})
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestEnquiryStore_FindPage(t *testing.T) {
	s := NewEnquiryStore(dbtest.Open(t))
	ctx := context.Background()

	var all []*domain.Enquiry
	for i := 0; i < 5; i++ {
		// identical createdAt so ordering falls back to id
		all = append(all, seedEnquiry(t, s, "same time", domain.StatusNew, 0))
	}

	page := domain.PageRequest{Page: 1, Size: 2, Sort: domain.DefaultEnquirySort}
	rows, total, err := s.FindPage(ctx, domain.EnquiryFilter{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []uint{all[2].ID, all[1].ID}, ids(rows))

	rows, _, err = s.FindPage(ctx, domain.EnquiryFilter{}, domain.PageRequest{Page: 3, Size: 2, Sort: domain.DefaultEnquirySort})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func ids(rows []domain.Enquiry) []uint {
	out := make([]uint, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
