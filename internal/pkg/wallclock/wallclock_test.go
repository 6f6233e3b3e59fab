package wallclock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	want := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	for _, in := range []string{
		"2025-01-15T14:30",
		"2025-01-15T14:30:00",
		"2025-01-15 14:30",
		" 2025-01-15 14:30:00 ",
		"2025-01-15T14:30:00-03:00",
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}

	for _, in := range []string{"", "15/01/2025 14:30", "2025-01-15", "2025-13-01T10:00"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalid, in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28T00:00:00", Format(d))

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDay(t *testing.T) {
	d := Day(time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestDateTimeJSON(t *testing.T) {
	var v struct {
		At DateTime `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2025-01-15T14:30"}`), &v))
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2025-01-15T14:30:00"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"at":"amanhã"}`), &v))
}
