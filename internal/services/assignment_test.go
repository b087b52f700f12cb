package services

import (
	"context"
	"testing"

	"enquirycrm/internal/domain"
	apperrors "enquirycrm/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssign_DirectSalesPersonID(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	rep := f.rep(t, "Unavailable Rep", "u@example.com", false)
	e := f.enquiry(t, "Direct")

	got, err := svc.Assign(context.Background(), e.ID, rep.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedToID)
	assert.Equal(t, rep.ID, *got.AssignedToID, "explicit assignment ignores availability")
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestAssign_ReassignSameRepAdvancesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	rep := f.rep(t, "Rep", "", true)
	e := f.enquiry(t, "Again", assignedTo(rep.ID))

	first, err := svc.Assign(context.Background(), e.ID, rep.ID)
	require.NoError(t, err)
	second, err := svc.Assign(context.Background(), e.ID, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, *second.AssignedToID)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestAssign_FallsBackToUserEmail(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()

	// Burn low ids so the user id cannot collide with a sales person id.
	for i := 0; i < 3; i++ {
		require.NoError(t, f.users.Create(ctx, &domain.User{Username: "filler" + string(rune('a'+i)), HashedPassword: "x"}))
	}
	user := &domain.User{Username: "anita", Email: ptr("anita@example.com"), HashedPassword: "x"}
	require.NoError(t, f.users.Create(ctx, user))
	require.EqualValues(t, 4, user.ID)

	rep := f.rep(t, "Anita", "anita@example.com", true)
	require.NotEqual(t, user.ID, rep.ID)
	e := f.enquiry(t, "Via user")

	got, err := svc.Assign(ctx, e.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, *got.AssignedToID)
}

func TestAssign_NotFound(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	e := f.enquiry(t, "Nobody")

	_, err := svc.Assign(ctx, e.ID, 55)
	assert.True(t, apperrors.IsNotFound(err))

	user := &domain.User{Username: "noemail", HashedPassword: "x"}
	require.NoError(t, f.users.Create(ctx, user))
	_, err = svc.Assign(ctx, e.ID, user.ID)
	assert.True(t, apperrors.IsNotFound(err), "user without a matching sales person")

	rep := f.rep(t, "Rep", "", true)
	_, err = svc.Assign(ctx, 999, rep.ID)
	assert.True(t, apperrors.IsNotFound(err), "unknown enquiry")

	got, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedToID)
}

func TestAutoAssign_PicksLeastLoaded(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	a := f.rep(t, "A", "", true)
	b := f.rep(t, "B", "", true)
	f.enquiry(t, "a1", assignedTo(a.ID), withStatus(domain.StatusInProgress))
	f.enquiry(t, "a2", assignedTo(a.ID), withStatus(domain.StatusInProgress))
	f.enquiry(t, "b1", assignedTo(b.ID), withStatus(domain.StatusInProgress))
	e1 := f.enquiry(t, "E1")

	got, err := svc.AutoAssign(context.Background(), e1.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *got.AssignedToID)
}

func TestAutoAssign_TieGoesToLowestID(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	first := f.rep(t, "First", "", true)
	f.rep(t, "Second", "", true)
	e := f.enquiry(t, "Tie")

	got, err := svc.AutoAssign(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *got.AssignedToID)
}

func TestAutoAssign_SkipsUnavailable(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	f.rep(t, "Idle but unavailable", "", false)
	only := f.rep(t, "Only", "", true)

	for i := 0; i < 3; i++ {
		e := f.enquiry(t, "E")
		got, err := svc.AutoAssign(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, only.ID, *got.AssignedToID)
	}
}

func TestAutoAssign_NoneAvailable(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	f.rep(t, "Away", "", false)
	e := f.enquiry(t, "Stuck")

	_, err := svc.AutoAssign(ctx, e.ID)
	assert.True(t, apperrors.IsState(err), "got %v", err)

	got, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedToID)
	assert.True(t, got.UpdatedAt.Equal(e.UpdatedAt))

	_, err = svc.AutoAssign(ctx, 12345)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLeastLoaded_ConsidersEveryone(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	busy := f.rep(t, "Busy", "", true)
	idle := f.rep(t, "Idle", "", false)
	f.enquiry(t, "x", assignedTo(busy.ID))

	got, err := svc.LeastLoaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, idle.ID, got.ID)
}

func TestDeletingSalesPersonLeavesDanglingReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rep := f.rep(t, "Leaving", "", true)
	e := f.enquiry(t, "Orphan", assignedTo(rep.ID))

	require.NoError(t, NewSalesPersonService(f.salesPersons).Delete(ctx, rep.ID))

	got, err := f.enquiries.FindByID(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedToID)
	assert.Equal(t, rep.ID, *got.AssignedToID)

	q := NewQueryService(f.enquiries)
	n, err := q.CountBySalesPerson(ctx, rep.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

type mockEnquiryRepo struct {
	mock.Mock
	EnquiryRepository
}

func (m *mockEnquiryRepo) FindByID(ctx context.Context, id uint) (*domain.Enquiry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Enquiry)
	return e, args.Error(1)
}

func (m *mockEnquiryRepo) Save(ctx context.Context, e *domain.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}

type mockSalesPersonRepo struct {
	mock.Mock
	SalesPersonRepository
}

func (m *mockSalesPersonRepo) List(ctx context.Context, availableOnly bool) ([]domain.SalesPerson, error) {
	args := m.Called(ctx, availableOnly)
	rows, _ := args.Get(0).([]domain.SalesPerson)
	return rows, args.Error(1)
}

func TestAutoAssign_NoAvailableNeverWrites(t *testing.T) {
	enquiries := &mockEnquiryRepo{}
	salesPersons := &mockSalesPersonRepo{}
	enquiries.On("FindByID", mock.Anything, uint(1)).Return(&domain.Enquiry{ID: 1}, nil)
	salesPersons.On("List", mock.Anything, true).Return([]domain.SalesPerson{}, nil)

	svc := NewAssignmentService(enquiries, salesPersons, nil)
	_, err := svc.AutoAssign(context.Background(), 1)

	assert.True(t, apperrors.IsState(err))
	enquiries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	salesPersons.AssertExpectations(t)
}
