package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/quiz"
)

func newTestRegistry(t *testing.T, ttl time.Duration) (*Registry, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(ttl, func() *Visitor {
		return NewVisitor(quiz.DefaultBank(), time.Millisecond)
	})
	r.now = func() time.Time { return now }
	return r, &now
}

func TestCreateAndGet(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)

	token, v, err := r.Create()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	require.NotNil(t, v)

	assert.Same(t, v, r.Get(token))
	assert.Nil(t, r.Get("unknown"))
	assert.Equal(t, 1, r.Len())
}

func TestVisitorsAreIndependent(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)
	_, a, err := r.Create()
	require.NoError(t, err)
	_, b, err := r.Create()
	require.NoError(t, err)

	require.NoError(t, a.Form(calc.KindBMI).Set(calc.FieldHeight, "180"))
	assert.Empty(t, b.Form(calc.KindBMI).Value(calc.FieldHeight))

	require.NoError(t, a.Quiz.Select(1))
	_, selected := b.Quiz.State().(quiz.InProgress).Selected()
	assert.False(t, selected)
}

func TestExpiry(t *testing.T) {
	r, now := newTestRegistry(t, time.Hour)
	token, _, err := r.Create()
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	require.NotNil(t, r.Get(token), "a hit within the TTL keeps the visitor")

	*now = now.Add(59 * time.Minute)
	require.NotNil(t, r.Get(token), "the previous hit extended the lifetime")

	*now = now.Add(2 * time.Hour)
	assert.Nil(t, r.Get(token))
	assert.Zero(t, r.Len())
}

func TestCleanupExpired(t *testing.T) {
	r, now := newTestRegistry(t, time.Hour)
	old, _, err := r.Create()
	require.NoError(t, err)

	*now = now.Add(90 * time.Minute)
	fresh, _, err := r.Create()
	require.NoError(t, err)

	assert.Equal(t, 1, r.CleanupExpired())
	assert.Nil(t, r.Get(old))
	assert.NotNil(t, r.Get(fresh))
}

func TestDelete(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)
	token, _, err := r.Create()
	require.NoError(t, err)
	r.Delete(token)
	assert.Nil(t, r.Get(token))
}

func TestBlankIsNotRegistered(t *testing.T) {
	r, _ := newTestRegistry(t, time.Hour)

	a, b := r.Blank(), r.Blank()
	require.NotNil(t, a)
	assert.NotSame(t, a, b)
	assert.Zero(t, r.Len())
}
