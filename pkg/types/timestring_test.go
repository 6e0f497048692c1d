package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	cases := []struct {
		input    string
		expected TimeString
	}{
		{"09:00", "09:00"},
		{"9:5", "09:05"},
		{"00:00", "00:00"},
		{"23:59", "23:59"},
		{"24:00", "24:00"},
	}

	for _, c := range cases {
		got, err := NewTimeStringFromString(c.input)
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.expected, got)
	}
}

func TestNewTimeStringFromString_Invalid(t *testing.T) {
	cases := []string{"", "abc", "25:00", "24:01", "10:60", "-1:00"}

	for _, c := range cases {
		_, err := NewTimeStringFromString(c)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", c)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(9*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	got, err = NewTimeStringFromMinutes(24 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = NewTimeStringFromMinutes(24*60 + 1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-10)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 9*60+30, TimeString("09:30").Minutes())
	assert.Equal(t, 24*60, TimeString("24:00").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("23:50").AddMinutes(10)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("18:00"))
	assert.False(t, TimeString("18:00").IsBefore("18:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, time.March, 2, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(12345))
}
