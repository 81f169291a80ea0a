package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/domain"
)

func TestProgressionReachesDelivered(t *testing.T) {
	fx := newOrderFixture(t, 2*time.Millisecond)
	sid := "s-progress"

	_, _, err := fx.carts.Add(sid, "item-b", 1, "")
	require.NoError(t, err)
	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)

	select {
	case <-fx.progress.Wait(o.ID):
	case <-time.After(5 * time.Second):
		t.Fatal("progression did not finish")
	}

	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)
	assert.NotEqual(t, got.CreatedAt, got.UpdatedAt, "updated_at moves with each step")
}

func TestProgressionStopsOnCancel(t *testing.T) {
	fx := newOrderFixture(t, 20*time.Millisecond)
	sid := "s-cancel-race"

	_, _, err := fx.carts.Add(sid, "item-a", 1, "")
	require.NoError(t, err)
	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)

	// Cancel while the walker is mid-flight.
	require.NoError(t, fx.orders.Cancel(o.ID))

	select {
	case <-fx.progress.Wait(o.ID):
	case <-time.After(5 * time.Second):
		t.Fatal("walker did not stop after cancellation")
	}

	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status,
		"no pending step may move status away from cancelled")
}

func TestProgressionTerminalIsSticky(t *testing.T) {
	fx := newOrderFixture(t, 2*time.Millisecond)
	sid := "s-sticky"

	_, _, err := fx.carts.Add(sid, "item-b", 2, "")
	require.NoError(t, err)
	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)
	<-fx.progress.Wait(o.ID)

	// Delivered: every further advance is a no-op, cancel is refused.
	for _, next := range domain.ProgressSequence {
		changed, err := fx.repo.Advance(o.ID, next)
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.ErrorIs(t, fx.orders.Cancel(o.ID), domain.ErrAlreadyDelivered)

	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)
}

func TestCancelIsIdempotent(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)
	sid := "s-idem"

	_, _, err := fx.carts.Add(sid, "item-b", 1, "")
	require.NoError(t, err)
	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)

	require.NoError(t, fx.orders.Cancel(o.ID))
	require.NoError(t, fx.orders.Cancel(o.ID), "cancelling a cancelled order succeeds silently")

	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestWaitUnknownOrderIsClosed(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)

	select {
	case <-fx.progress.Wait("never-spawned"):
	case <-time.After(time.Second):
		t.Fatal("Wait on an unknown order must not block")
	}
}
