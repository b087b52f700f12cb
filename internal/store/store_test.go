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

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%abc%", containsPattern("ABC"))
	assert.Equal(t, "%50!%!_off!!%", containsPattern("50%_off!"))
}

func TestCommentStore_NumbersPerEnquiry(t *testing.T) {
	s := NewCommentStore(dbtest.Open(t))
	ctx := context.Background()

	add := func(enquiryID uint, text string) *domain.Comment {
		c := &domain.Comment{EnquiryID: enquiryID, CommentText: text, CreatedAt: base, UpdatedAt: base}
		require.NoError(t, s.Add(ctx, c))
		return c
	}

	a1 := add(1, "first")
	a2 := add(1, "second")
	b1 := add(2, "other enquiry")
	require.NoError(t, s.Delete(ctx, a2.ID))
	a3 := add(1, "third")

	assert.Equal(t, 1, a1.CommentNumber)
	assert.Equal(t, 2, a2.CommentNumber)
	assert.Equal(t, 1, b1.CommentNumber)
	assert.Equal(t, 2, a3.CommentNumber, "numbering continues from the highest surviving comment")

	list, err := s.ListByEnquiry(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].CommentText)
	assert.Equal(t, "third", list[1].CommentText)

	n, err := s.Count(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.True(t, apperrors.IsNotFound(s.Delete(ctx, a2.ID)))
}

func TestUserStore_DuplicateUsernameIsConflict(t *testing.T) {
	s := NewUserStore(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &domain.User{Username: "admin", HashedPassword: "x"}))
	err := s.Create(ctx, &domain.User{Username: "admin", HashedPassword: "y"})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)

	u, err := s.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSales, u.Role)
}

func TestSalesPersonStore_ListAndSearch(t *testing.T) {
	s := NewSalesPersonStore(dbtest.Open(t))
	ctx := context.Background()

	mk := func(name, email string, available bool) *domain.SalesPerson {
		sp := &domain.SalesPerson{Name: name, Email: strPtr(email), Available: available, CreatedAt: base}
		require.NoError(t, s.Create(ctx, sp))
		return sp
	}
	zoe := mk("Zoe", "zoe@example.com", true)
	amit := mk("Amit", "amit@example.com", false)
	mk("Bela", "bela@example.com", true)

	avail, err := s.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, avail, 2)
	assert.Equal(t, zoe.ID, avail[0].ID)

	got, err := s.FindByEmail(ctx, "amit@example.com")
	require.NoError(t, err)
	assert.Equal(t, amit.ID, got.ID)
	assert.False(t, got.Available)

	byName := domain.PageRequest{Page: 0, Size: 10, Sort: domain.Sort{Column: "name"}}
	rows, total, err := s.FindPage(ctx, "", byName)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, "Amit", rows[0].Name)

	rows, total, err = s.FindPage(ctx, "ZOE@", byName)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, zoe.ID, rows[0].ID)

	n, err := s.Count(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestActivityStore_FilterAndPage(t *testing.T) {
	s := NewActivityStore(dbtest.Open(t))
	ctx := context.Background()
	enq := uint(3)
	call := domain.ActivityCall

	for i, typ := range []domain.ActivityType{domain.ActivityCall, domain.ActivityEmail, domain.ActivityCall} {
		a := &domain.Activity{
			EnquiryID:    &enq,
			ActivityType: typ,
			Notes:        strPtr("spoke about pricing"),
			ActivityDate: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.Create(ctx, a))
	}

	page := domain.PageRequest{Size: 10, Sort: domain.Sort{Column: "activity_date", Desc: true}}
	rows, total, err := s.FindPage(ctx, domain.ActivityFilter{EnquiryID: &enq, ActivityType: &call}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.True(t, rows[0].ActivityDate.After(rows[1].ActivityDate))

	n, err := s.Count(ctx, domain.ActivityFilter{Term: "PRICING"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
