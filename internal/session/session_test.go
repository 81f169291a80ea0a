package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/session"
)

func TestNewSessionsAreDistinct(t *testing.T) {
	m := session.NewManager()
	a, b := m.New(), m.New()
	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecordOrderAppendsHistory(t *testing.T) {
	m := session.NewManager()
	s := m.New()

	m.RecordOrder(s.ID, "o-1")
	m.RecordOrder(s.ID, "o-2")

	assert.Equal(t, []string{"o-1", "o-2"}, m.Orders(s.ID))
	assert.Nil(t, m.Orders("unknown-sid"))
}

func TestEnsureAdoptsForeignID(t *testing.T) {
	m := session.NewManager()
	s := m.Ensure("sid-from-cookie")
	assert.Equal(t, "sid-from-cookie", s.ID)

	m.RecordOrder("sid-from-cookie", "o-9")
	assert.Equal(t, []string{"o-9"}, m.Orders("sid-from-cookie"))
}
