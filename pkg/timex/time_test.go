package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_UnixConversions(t *testing.T) {
	now := time.Now()
	tm := Time(now)

	assert.Equal(t, now.Unix(), tm.Unix())
	assert.Equal(t, now.UnixMilli(), tm.UnixMilli())
	assert.Equal(t, now.UnixMicro(), tm.UnixMicro())
	assert.Equal(t, now.UnixNano(), tm.UnixNano())
}

func TestTime_JSONRoundTrip(t *testing.T) {
	tm := Time(time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local))

	data, err := tm.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2026-03-14 15:09:26"`, string(data))

	var got Time
	assert.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, tm.Unix(), got.Unix())
}

func TestTime_ZeroValue(t *testing.T) {
	var tm Time
	assert.True(t, tm.IsZero())

	data, err := tm.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(data))

	v, err := tm.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestTime_Scan(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	var fromTime Time
	assert.NoError(t, fromTime.Scan(now))
	assert.Equal(t, now.Unix(), fromTime.Unix())

	var fromString Time
	assert.NoError(t, fromString.Scan(now.Format("2006-01-02 15:04:05")))
	assert.Equal(t, now.Unix(), fromString.Unix())

	var bad Time
	assert.Error(t, bad.Scan(12345))
}
