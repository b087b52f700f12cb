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

func TestParseActivitySort(t *testing.T) {
	s, err := ParseActivitySort("", "")
	require.NoError(t, err)
	assert.Equal(t, domain.Sort{Column: "activity_date", Desc: true}, s)

	s, err = ParseActivitySort("activityType", "ASC")
	require.NoError(t, err)
	assert.Equal(t, domain.Sort{Column: "activity_type"}, s)

	_, err = ParseActivitySort("notes", "")
	assert.True(t, apperrors.IsValidation(err))
	_, err = ParseActivitySort("id", "sideways")
	assert.True(t, apperrors.IsValidation(err))
}

func TestActivityService_LogAndQuery(t *testing.T) {
	f := newFixture(t)
	svc := NewActivityService(f.activities, WithClock(f.clock.Now))
	ctx := context.Background()
	e := f.enquiry(t, "E")
	rep := f.rep(t, "Rep", "", true)

	call, err := svc.Log(ctx, ActivityInput{EnquiryID: &e.ID, SalesPersonID: &rep.ID, ActivityType: domain.ActivityCall})
	require.NoError(t, err)
	assert.True(t, call.ActivityDate.Equal(f.clock.Now()), "defaults to now")

	earlier := f.clock.Now().Add(-24 * time.Hour)
	visit, err := svc.Log(ctx, ActivityInput{EnquiryID: &e.ID, ActivityType: domain.ActivitySiteVisit, ActivityDate: &earlier, Notes: ptr("showed 2BHK")})
	require.NoError(t, err)
	_, err = svc.Log(ctx, ActivityInput{SalesPersonID: &rep.ID, ActivityType: domain.ActivityNote})
	require.NoError(t, err)

	byEnquiry, err := svc.ByEnquiry(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, byEnquiry, 2)
	assert.Equal(t, visit.ID, byEnquiry[1].ID, "newest first")

	byRep, err := svc.BySalesPerson(ctx, rep.ID)
	require.NoError(t, err)
	assert.Len(t, byRep, 2)

	visits, err := svc.ByType(ctx, domain.ActivitySiteVisit)
	require.NoError(t, err)
	assert.Len(t, visits, 1)

	recent, err := svc.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	n, err := svc.Count(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestActivityService_UpdateAndErrors(t *testing.T) {
	f := newFixture(t)
	svc := NewActivityService(f.activities, WithClock(f.clock.Now))
	ctx := context.Background()

	_, err := svc.Log(ctx, ActivityInput{ActivityType: "DANCE"})
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Log(ctx, ActivityInput{})
	assert.True(t, apperrors.IsValidation(err))

	a, err := svc.Log(ctx, ActivityInput{ActivityType: domain.ActivityEmail, Notes: ptr("sent brochure")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, a.ID, ActivityInput{ActivityType: domain.ActivityMeeting})
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityMeeting, got.ActivityType)
	assert.Nil(t, got.Notes)

	_, err = svc.Update(ctx, 99, ActivityInput{ActivityType: domain.ActivityCall})
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, a.ID))
	_, err = svc.Get(ctx, a.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
