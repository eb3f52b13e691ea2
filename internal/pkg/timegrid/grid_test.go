package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadWindows(t *testing.T) {
	_, err := New("23:00", "07:00")
	assert.ErrorIs(t, err, ErrBadWindow)

	_, err = New("07:00", "07:00")
	assert.ErrorIs(t, err, ErrBadWindow)

	_, err = New("07:15", "23:00")
	assert.ErrorIs(t, err, ErrBadWindow)

	_, err = New("7am", "23:00")
	assert.Error(t, err)
}

func TestGrid_UnitArithmetic(t *testing.T) {
	g := MustNew("07:00", "23:00")
	require.Equal(t, 32, g.Units())

	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "07:00", g.Clock(0))
	assert.Equal(t, "10:00", g.Clock(6))
	assert.Equal(t, "22:30", g.Clock(31))

	start := g.UnitStart(day, 6)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start.Add(UnitDuration), g.UnitEnd(day, 6))

	idx, ok := g.IndexAt(start)
	require.True(t, ok)
	assert.Equal(t, 6, idx)

	// 10:15 still falls inside unit 6
	idx, ok = g.IndexAt(start.Add(15 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, 6, idx)

	_, ok = g.IndexAt(time.Date(2026, 3, 4, 6, 59, 0, 0, time.UTC))
	assert.False(t, ok)
	_, ok = g.IndexAt(time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestSpan_Semantics(t *testing.T) {
	s := Span{From: 4, To: 7}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(6))
	assert.False(t, s.Contains(7))

	assert.True(t, s.Overlaps(Span{From: 6, To: 9}))
	assert.False(t, s.Overlaps(Span{From: 7, To: 9}))

	g := MustNew("07:00", "23:00")
	assert.True(t, g.ValidSpan(s))
	assert.False(t, g.ValidSpan(Span{From: 30, To: 33}))
	assert.False(t, g.ValidSpan(Span{From: 5, To: 5}))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("04.03.2026")
	assert.Error(t, err)
}
