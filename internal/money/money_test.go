package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageOf(t *testing.T) {
	assert.InDelta(t, 5.0, PercentageOf(100, 5), 1e-9)
	assert.InDelta(t, 2.0, PercentageOf(80, 2.5), 1e-9)
	assert.Zero(t, PercentageOf(80, 0))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 98.21, RoundCurrency(98.2142857142857))
	assert.Equal(t, 98.22, RoundCurrency(98.215))
	assert.Equal(t, -1.5, RoundCurrency(-1.495))
	assert.Equal(t, 0.0, RoundCurrency(0))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "110.00", FormatCurrency(110))
	assert.Equal(t, "98.21", FormatCurrency(98.2142857))
}
