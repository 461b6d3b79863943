package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrencyPair(t *testing.T) {
	t.Run("valid symbol", func(t *testing.T) {
		pair, err := ParseCurrencyPair("BTC_LTC")
		require.NoError(t, err)
		assert.Equal(t, CurrencyPair{Base: "BTC", Counter: "LTC"}, pair)
		assert.Equal(t, "BTC_LTC", pair.String())
	})

	for _, symbol := range []string{"BTCLTC", "BTC_LTC_XMR", "_LTC", "BTC_", ""} {
		t.Run("malformed "+symbol, func(t *testing.T) {
			_, err := ParseCurrencyPair(symbol)
			assert.True(t, errors.Is(err, ErrMalformedPair))
		})
	}
}

func TestCurrencySet(t *testing.T) {
	set := NewCurrencySet("ltc", " XMR ", "", "LTC")

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("LTC"))
	assert.True(t, set.Contains("XMR"))
	assert.False(t, set.Contains("ltc"))
	assert.False(t, set.Contains("ETH"))
	assert.Equal(t, []string{"LTC", "XMR"}, set.Codes())
}

func TestCurrencySetZeroValue(t *testing.T) {
	var set CurrencySet

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains("BTC"))
	assert.Empty(t, set.Codes())
}
