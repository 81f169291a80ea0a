package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/domain"
	"shopmate/internal/report"
	"shopmate/internal/repos"
	"shopmate/internal/services"
)

type orderFixture struct {
	db       *sqlx.DB
	carts    *services.CartService
	orders   *services.OrderService
	repo     *repos.OrderRepo
	progress *services.Progression
	summary  string
}

func newOrderFixture(t *testing.T, interval time.Duration) *orderFixture {
	t.Helper()
	db := memdb(t)
	addTestItems(t, db)

	orderRepo := repos.NewOrderRepo(db)
	progress := services.NewProgression(orderRepo, interval)
	t.Cleanup(progress.StopAll)

	summaryPath := filepath.Join(t.TempDir(), "summaries.jsonl")
	orderSvc := services.NewOrderService(
		repos.NewCartRepo(db), orderRepo, report.NewSummaryWriter(summaryPath), progress)

	return &orderFixture{
		db:       db,
		carts:    newCartService(db),
		orders:   orderSvc,
		repo:     orderRepo,
		progress: progress,
		summary:  summaryPath,
	}
}

func TestPlaceFreezesTotalAndClearsCart(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)
	sid := "s-place"

	_, _, err := fx.carts.Add(sid, "item-a", 2, "")
	require.NoError(t, err)
	_, total, err := fx.carts.Add(sid, "item-b", 1, "extra ripe")
	require.NoError(t, err)
	require.Equal(t, 120.0, total)

	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)
	assert.Equal(t, 120.0, o.Total)
	assert.Equal(t, domain.StatusReceived, o.Status)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, "extra ripe", o.Lines[1].Notes)

	cv, err := fx.carts.View(sid)
	require.NoError(t, err)
	assert.Empty(t, cv.Lines, "cart clears atomically with placement")

	// Later cart activity must not touch the frozen order.
	_, _, err = fx.carts.Add(sid, "item-a", 5, "")
	require.NoError(t, err)
	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Total)
	assert.Len(t, got.Lines, 2)
}

func TestPlaceEmptyCart(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)

	_, err := fx.orders.Place("s-empty", "Asha", "12 Elm Street")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	summaries, err := fx.repo.ListLatest(10)
	require.NoError(t, err)
	assert.Empty(t, summaries, "failed placement must leave no order behind")
}

func TestPlaceAppendsOneSummaryLine(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)

	for i, sid := range []string{"s-one", "s-two"} {
		_, _, err := fx.carts.Add(sid, "item-b", i+1, "")
		require.NoError(t, err)
		_, err = fx.orders.Place(sid, "Asha", "12 Elm Street")
		require.NoError(t, err)
	}

	b, err := os.ReadFile(fx.summary)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 2)
}

// The scenario from the tool surface, end to end: build a cart, trim it,
// place, cancel, and verify a stale progression step cannot resurrect it.
func TestOrderScenarioCancelBeatsProgression(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)
	sid := "s-scenario"

	_, _, err := fx.carts.Add(sid, "item-a", 2, "")
	require.NoError(t, err)
	_, total, err := fx.carts.Add(sid, "item-b", 1, "")
	require.NoError(t, err)
	require.Equal(t, 120.0, total)

	total, err = fx.carts.Remove(sid, "item-a")
	require.NoError(t, err)
	require.Equal(t, 20.0, total)

	o, err := fx.orders.Place(sid, "Asha", "12 Elm Street")
	require.NoError(t, err)
	assert.Equal(t, 20.0, o.Total)

	require.NoError(t, fx.orders.Cancel(o.ID))

	// A progression step that was scheduled before the cancellation
	// resolves as a no-op against the terminal status.
	changed, err := fx.repo.Advance(o.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := fx.orders.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestCancelUnknownOrder(t *testing.T) {
	fx := newOrderFixture(t, time.Hour)
	err := fx.orders.Cancel("no-such-order")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
