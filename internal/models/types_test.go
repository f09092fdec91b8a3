package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate(" 1990-01-01 ")
	require.NoError(t, err)
	require.Equal(t, "1990-01-01", d.String())

	value, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "1990-01-01", value)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `"1990-01-01"`, string(raw))

	_, err = ParseDate("01/01/1990")
	require.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 5, 13, 0, 0, 0, time.FixedZone("x", 3600))))
	require.Equal(t, "2024-03-05", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31T00:00:00Z")))
	require.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	require.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}

func TestClockParseAndScan(t *testing.T) {
	c, err := ParseClock("07:30")
	require.NoError(t, err)
	require.Equal(t, "07:30:00", c.String())

	require.NoError(t, c.Scan("18:45:10.123456"))
	require.Equal(t, Clock{Hour: 18, Minute: 45, Second: 10}, c)

	_, err = ParseClock("25:00")
	require.Error(t, err)

	raw, err := json.Marshal(ScheduleRow{Schedule: Schedule{ID: 1, DayOfWeek: "Monday", Time: c}})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"time":"18:45:10"`)
	require.Contains(t, string(raw), `"trainer":null`)
}
