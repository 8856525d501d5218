package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 14, d.Day())
	assert.Equal(t, "2025-03-14", FormatDate(d))

	_, err = ParseDate("14/03/2025")
	assert.Error(t, err)
}

func TestUnixMilliRoundTrip(t *testing.T) {
	now := time.UnixMilli(time.Now().UnixMilli()).UTC()
	assert.True(t, now.Equal(FromUnixMilli(ToUnixMilli(now))))
	assert.True(t, FromUnixMilli(0).IsZero())
	assert.Zero(t, ToUnixMilli(time.Time{}))
}
