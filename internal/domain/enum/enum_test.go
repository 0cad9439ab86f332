package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountTypeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want DiscountType
	}{
		{in: `"flat"`, want: DiscountTypeFlat},
		{in: `"percent"`, want: DiscountTypePercent},
		{in: `"Percentage"`, want: DiscountTypePercent},
		{in: `1`, want: DiscountTypePercent},
		{in: `"anything"`, want: DiscountTypeFlat},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var got DiscountType
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got)
		})
	}

	raw, err := json.Marshal(DiscountTypePercent)
	require.NoError(t, err)
	assert.Equal(t, `"percent"`, string(raw))
}

func TestParseDiscountType(t *testing.T) {
	assert.Equal(t, DiscountTypePercent, ParseDiscountType("Percent"))
	assert.Equal(t, DiscountTypePercent, ParseDiscountType("1"))
	assert.Equal(t, DiscountTypeFlat, ParseDiscountType(""))
	assert.Equal(t, DiscountTypeFlat, ParseDiscountType("bogus"))
}
