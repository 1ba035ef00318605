package service

import (
	"context"
	"testing"

	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationService(t *testing.T, env *testEnv) *ReservationService {
	t.Helper()
	return NewReservationService(
		repository.NewReservationRepository(env.db),
		repository.NewPropertyRepository(env.db),
		testLogger(),
	)
}

func TestReservationService_Propose(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReservationService(t, env)
	landlord := createUser(t, env.db, models.RoleLandlord)
	renter := createUser(t, env.db, models.RoleRenter)

	active, appErr := env.props.Create(ctx, landlord.ID, validInput())
	require.Nil(t, appErr)

	draftInput := validInput()
	draftInput.Status = models.StatusDraft
	draft, appErr := env.props.Create(ctx, landlord.ID, draftInput)
	require.Nil(t, appErr)

	t.Run("creates a proposed reservation", func(t *testing.T) {
		reservation, appErr := svc.Propose(ctx, renter.ID, active.ID, "Hoping to move in next month")
		require.Nil(t, appErr)
		assert.Equal(t, models.ReservationProposed, reservation.Status)
		assert.Equal(t, renter.ID, reservation.RenterID)
	})

	t.Run("rejects a second open reservation", func(t *testing.T) {
		_, appErr := svc.Propose(ctx, renter.ID, active.ID, "")
		require.NotNil(t, appErr)
		assert.Equal(t, []string{"You already have an open reservation for this listing."}, appErr.Messages)
	})

	t.Run("rejects inactive listings", func(t *testing.T) {
		_, appErr := svc.Propose(ctx, renter.ID, draft.ID, "")
		require.NotNil(t, appErr)
		assert.Equal(t, []string{"Listing is not available for reservation."}, appErr.Messages)
	})

	t.Run("rejects the landlord's own listing", func(t *testing.T) {
		_, appErr := svc.Propose(ctx, landlord.ID, active.ID, "")
		require.NotNil(t, appErr)
		assert.Equal(t, []string{"You cannot reserve your own listing."}, appErr.Messages)
	})

	t.Run("unknown listing is not found", func(t *testing.T) {
		_, appErr := svc.Propose(ctx, renter.ID, 99999, "")
		require.NotNil(t, appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestReservationService_Act(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReservationService(t, env)
	landlord := createUser(t, env.db, models.RoleLandlord)
	renter := createUser(t, env.db, models.RoleRenter)
	other := createUser(t, env.db, models.RoleRenter)

	listing, appErr := env.props.Create(ctx, landlord.ID, validInput())
	require.Nil(t, appErr)

	reservation, appErr := svc.Propose(ctx, renter.ID, listing.ID, "")
	require.Nil(t, appErr)

	t.Run("only the landlord may accept", func(t *testing.T) {
		_, appErr := svc.Act(ctx, other.ID, models.RoleRenter, reservation.ID, "accept")
		require.NotNil(t, appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("only the renter may cancel", func(t *testing.T) {
		_, appErr := svc.Act(ctx, other.ID, models.RoleRenter, reservation.ID, "cancel")
		require.NotNil(t, appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("landlord accepts then completes", func(t *testing.T) {
		accepted, appErr := svc.Act(ctx, landlord.ID, models.RoleLandlord, reservation.ID, "accept")
		require.Nil(t, appErr)
		assert.Equal(t, models.ReservationAccepted, accepted.Status)

		// Cannot decline once accepted.
		_, appErr = svc.Act(ctx, landlord.ID, models.RoleLandlord, reservation.ID, "decline")
		require.NotNil(t, appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)

		completed, appErr := svc.Act(ctx, landlord.ID, models.RoleLandlord, reservation.ID, "complete")
		require.Nil(t, appErr)
		assert.Equal(t, models.ReservationCompleted, completed.Status)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		_, appErr := svc.Act(ctx, landlord.ID, models.RoleLandlord, reservation.ID, "approve")
		require.NotNil(t, appErr)
		assert.Equal(t, []string{"Unknown reservation action 'approve'."}, appErr.Messages)
	})
}

func TestReservationService_Listing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newReservationService(t, env)
	landlord := createUser(t, env.db, models.RoleLandlord)
	renter := createUser(t, env.db, models.RoleRenter)

	listing, appErr := env.props.Create(ctx, landlord.ID, validInput())
	require.Nil(t, appErr)
	_, appErr = svc.Propose(ctx, renter.ID, listing.ID, "")
	require.Nil(t, appErr)

	t.Run("landlord sees reservations on own listing", func(t *testing.T) {
		reservations, appErr := svc.ListByProperty(ctx, landlord.ID, models.RoleLandlord, listing.ID)
		require.Nil(t, appErr)
		assert.Len(t, reservations, 1)
	})

	t.Run("strangers cannot list a listing's reservations", func(t *testing.T) {
		_, appErr := svc.ListByProperty(ctx, renter.ID, models.RoleRenter, listing.ID)
		require.NotNil(t, appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("renter sees own reservations", func(t *testing.T) {
		reservations, appErr := svc.ListByRenter(ctx, renter.ID)
		require.Nil(t, appErr)
		require.Len(t, reservations, 1)
		assert.Equal(t, listing.ID, reservations[0].PropertyID)
	})
}
