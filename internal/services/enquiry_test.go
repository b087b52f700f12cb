package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnquiryService_CreateStampsAndDefaults(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()

	e, err := svc.Create(context.Background(), EnquiryDraft{
		CustomerName:   "  Meera Iyer ",
		CustomerMobile: ptr("9820012345"),
		CustomerEmail:  ptr(" "),
	})
	require.NoError(t, err)

	assert.NotZero(t, e.ID)
	assert.Equal(t, "Meera Iyer", e.CustomerName)
	assert.Equal(t, domain.StatusNew, e.Status)
	assert.Equal(t, domain.SourceWebsite, e.Source)
	assert.Equal(t, 1, e.Priority)
	assert.Equal(t, "9820012345", *e.CustomerPhone)
	assert.Nil(t, e.CustomerEmail)
	assert.True(t, e.CreatedAt.Equal(f.clock.Now()))
	assert.True(t, e.UpdatedAt.Equal(e.CreatedAt))

	stored, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(stored.CreatedAt))
}

func TestEnquiryService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()

	cases := map[string]EnquiryDraft{
		"blank name":    {CustomerName: "   "},
		"long name":     {CustomerName: strings.Repeat("x", 121)},
		"bad email":     {CustomerName: "A", CustomerEmail: ptr("not-an-email")},
		"long phone":    {CustomerName: "A", CustomerPhone: ptr(strings.Repeat("9", 21))},
		"long remarks":  {CustomerName: "A", Remarks: ptr(strings.Repeat("r", 2001))},
		"unknown level": {CustomerName: "A", InterestLevel: ptr(domain.InterestLevel("LUKEWARM"))},
		"zero priority": {CustomerName: "A", Priority: ptr(0)},
	}
	for name, draft := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, draft)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}

	n, err := f.enquiries.Count(ctx, domain.EnquiryFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEnquiryService_CreateUnknownSalesPerson(t *testing.T) {
	f := newFixture(t)
	_, err := f.enquiryService().Create(context.Background(), EnquiryDraft{CustomerName: "A", SalesPersonID: ptr(uint(99))})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEnquiryService_UpdateMergesFields(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Rohan", func(e *domain.Enquiry) { e.InterestLevel = ptr(domain.InterestWarm) })

	_, err := svc.Update(ctx, e.ID, EnquiryPatch{Remarks: ptr("follow up needed")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, e.ID, EnquiryPatch{Status: ptr(domain.StatusInProgress)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "follow up needed", *got.Remarks)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.InterestWarm, *got.InterestLevel)
	assert.Equal(t, "Rohan", got.CustomerName)
}

func TestEnquiryService_UpdateFromJSONIgnoresNulls(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Kavya", func(e *domain.Enquiry) { e.InterestLevel = ptr(domain.InterestHot) })

	var p EnquiryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"interestLevel":null,"customerMobile":"12345","status":"BOOKED"}`), &p))
	got, err := svc.Update(ctx, e.ID, p)
	require.NoError(t, err)

	assert.Equal(t, domain.InterestHot, *got.InterestLevel, "null cannot clear an enum")
	assert.Equal(t, domain.StatusBooked, got.Status)
	assert.Equal(t, "12345", *got.CustomerPhone)

	err = json.Unmarshal([]byte(`{"status":"ARCHIVED"}`), &p)
	assert.True(t, apperrors.IsValidation(err))
}

func TestEnquiryService_UpdatedAtStrictlyIncreases(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Same Clock")

	first, err := svc.UpdateStatus(ctx, e.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, first.UpdatedAt.After(first.CreatedAt))

	second, err := svc.UpdateStatus(ctx, e.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	f.clock.Advance(time.Hour)
	third, err := svc.AddRemarks(ctx, e.ID, "x")
	require.NoError(t, err)
	assert.True(t, third.UpdatedAt.Equal(f.clock.Now()))
}

func TestEnquiryService_AnyStatusTransition(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Loop", withStatus(domain.StatusClosedWon))

	got, err := svc.UpdateStatus(ctx, e.ID, domain.StatusNew)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, got.Status)

	_, err = svc.UpdateStatus(ctx, e.ID, domain.EnquiryStatus("BOGUS"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestEnquiryService_NarrowMutators(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Narrow", func(e *domain.Enquiry) { e.Remarks = ptr("old") })

	got, err := svc.AddRemarks(ctx, e.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", *got.Remarks, "remarks are replaced, not appended")

	got, err = svc.UpdateInterestLevel(ctx, e.ID, domain.InterestCold)
	require.NoError(t, err)
	assert.Equal(t, domain.InterestCold, *got.InterestLevel)

	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2025, 6, 5, 15, 0, 0, 0, ist)
	got, err = svc.ScheduleFollowUp(ctx, e.ID, at)
	require.NoError(t, err)
	assert.True(t, got.NextFollowUpAt.Equal(at))
	assert.Equal(t, time.UTC, got.NextFollowUpAt.Location())
}

func TestEnquiryService_UnknownIDs(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()

	_, err := svc.Update(ctx, 404, EnquiryPatch{Remarks: ptr("x")})
	assert.True(t, apperrors.IsNotFound(err))
	_, err = svc.UpdateStatus(ctx, 404, domain.StatusBooked)
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, 404)))

	e := f.enquiry(t, "Assign missing")
	_, err = svc.Update(ctx, e.ID, EnquiryPatch{SalesPersonID: ptr(uint(77))})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEnquiryService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := f.enquiryService()
	ctx := context.Background()
	e := f.enquiry(t, "Gone")

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err := svc.Get(ctx, e.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, e.ID)))
}
