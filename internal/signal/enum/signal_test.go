package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	for _, s := range []string{"buy", "BUY", "Buy"} {
		side, ok := ParseSide(s)
		assert.True(t, ok, s)
		assert.Equal(t, SideBuy, side, s)
	}

	side, ok := ParseSide("sell")
	assert.True(t, ok)
	assert.Equal(t, SideSell, side)

	_, ok = ParseSide("hold")
	assert.False(t, ok)
}

func TestPriceTypeIsAvailable(t *testing.T) {
	assert.True(t, PriceTypeMarket.IsAvailable())
	assert.True(t, PriceTypeLimit.IsAvailable())
	assert.False(t, PriceType(0).IsAvailable())
	assert.False(t, PriceType(7).IsAvailable())
}
