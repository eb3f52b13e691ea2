package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 5, 12, hour, min, 0, 0, time.UTC)
}

func TestPolicy_FlatRate(t *testing.T) {
	p := Default()

	morning, err := p.UnitPrice(domain.CategoryTennis, at(9, 0))
	require.NoError(t, err)
	evening, err := p.UnitPrice(domain.CategoryTennis, at(21, 30))
	require.NoError(t, err)

	assert.Equal(t, 5.0, morning)
	assert.Equal(t, 5.0, evening)
}

func TestPolicy_TwoTierCutover(t *testing.T) {
	p := Default()

	before, err := p.UnitPrice(domain.CategoryPadel, at(17, 30))
	require.NoError(t, err)
	atCutover, err := p.UnitPrice(domain.CategoryPadel, at(18, 0))
	require.NoError(t, err)
	after, err := p.UnitPrice(domain.CategoryPadel, at(20, 30))
	require.NoError(t, err)

	assert.Equal(t, 7.5, before)
	assert.Equal(t, 9.0, atCutover)
	assert.Equal(t, 9.0, after)

	// A run straddling the cutover prices each unit at its own tier.
	assert.Equal(t, 16.5, Round(before+atCutover))
}

func TestPolicy_CutoverIndependentOfDate(t *testing.T) {
	p := Default()

	weekday := time.Date(2026, 5, 13, 19, 0, 0, 0, time.UTC) // Wednesday
	sunday := time.Date(2026, 5, 17, 19, 0, 0, 0, time.UTC)

	a, err := p.UnitPrice(domain.CategoryPadel, weekday)
	require.NoError(t, err)
	b, err := p.UnitPrice(domain.CategoryPadel, sunday)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPolicy_UnknownCategory(t *testing.T) {
	p := New()
	_, err := p.UnitPrice(domain.CategoryTennis, at(10, 0))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
