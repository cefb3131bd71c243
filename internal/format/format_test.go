package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1 << 40, "1,099,511,627,776"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in))

		back, err := ParseNumber(tt.want)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}
}

func TestParseNumberError(t *testing.T) {
	_, err := ParseNumber("12a,000")
	assert.Error(t, err)
}

func TestRateAndSeconds(t *testing.T) {
	assert.Equal(t, "12346", Rate(12345.6))
	assert.Equal(t, "1.50", Seconds(1500*time.Millisecond))
	assert.Equal(t, "0.00", Seconds(0))
}

func TestHashRate(t *testing.T) {
	assert.Equal(t, "950/s", HashRate(950))
	assert.Equal(t, "1.5K/s", HashRate(1500))
	assert.Equal(t, "2.3M/s", HashRate(2300000))
}
