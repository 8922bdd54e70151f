package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindDigit, Classify("1638757200"))
	assert.Equal(t, KindDigit, Classify(1638757200))
	assert.Equal(t, KindDigit, Classify(int64(1638757200)))
	assert.Equal(t, KindDigit, Classify(1638757200.5), "numeric types are digits, fractional or not")
	assert.Equal(t, KindFloat, Classify("1638757200.25"))
	assert.Equal(t, KindNative, Classify(time.Now()))
	assert.Equal(t, KindFormatted, Classify("2021-12-06 13:00:00"))
	assert.Equal(t, KindInvalid, Classify(nil))
	assert.Equal(t, KindInvalid, Classify("not a time"))
	assert.Equal(t, KindInvalid, Classify("2021-12-06T13:00:00Z"))
	assert.Equal(t, KindInvalid, Classify([]string{"x"}))
}

func TestClassifyPrecedence(t *testing.T) {
	// A digit string must never fall through to the float branch.
	assert.Equal(t, KindDigit, Classify("1638757200"))
	// Negative floats never pass the float branch.
	assert.Equal(t, KindInvalid, Classify("-1.5"))
}

func TestToInstant(t *testing.T) {
	got, ok := ToInstant("1638757200")
	require.True(t, ok)
	assert.Equal(t, time.Unix(1638757200, 0), got)

	got, ok = ToInstant("1638757200.5")
	require.True(t, ok)
	assert.Equal(t, int64(1638757200), got.Unix())
	assert.InDelta(t, 5e8, float64(got.Nanosecond()), 1e3)

	native := time.Date(2021, 12, 6, 13, 0, 0, 0, time.Local)
	got, ok = ToInstant(native)
	require.True(t, ok)
	assert.True(t, got.Equal(native))

	got, ok = ToInstant("2021-12-06 13:00:00")
	require.True(t, ok)
	assert.True(t, got.Equal(native))

	_, ok = ToInstant("garbage")
	assert.False(t, ok)
	_, ok = ToInstant(nil)
	assert.False(t, ok)
}

func TestToBoundedInstant(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

	got, ok := ToBoundedInstant(now.Add(-time.Hour).Unix(), now)
	require.True(t, ok)
	assert.Equal(t, now.Add(-time.Hour).Unix(), got.Unix())

	// Anything in the future is out of range, even by one second.
	_, ok = ToBoundedInstant(now.Add(time.Second).Unix(), now)
	assert.False(t, ok)

	// Just inside the four year lookback.
	inside := now.Add(-time.Duration(maxAgeDays) * 24 * time.Hour)
	_, ok = ToBoundedInstant(inside.Unix(), now)
	assert.True(t, ok)

	outside := now.Add(-time.Duration(maxAgeDays+1) * 24 * time.Hour)
	_, ok = ToBoundedInstant(outside.Unix(), now)
	assert.False(t, ok)

	_, ok = ToBoundedInstant("garbage", now)
	assert.False(t, ok)
}

func TestToWireFormat(t *testing.T) {
	ts := time.Date(2021, 12, 6, 13, 5, 9, 0, time.Local)
	assert.Equal(t, "2021-12-06 13:05:09", ToWireFormat(ts))
}

func TestToStorageString(t *testing.T) {
	s, err := ToStorageString("1638757200")
	require.NoError(t, err)
	assert.Equal(t, "1638757200", s, "digit strings are kept verbatim")

	s, err = ToStorageString(int64(1638757200))
	require.NoError(t, err)
	assert.Equal(t, "1638757200", s)

	s, err = ToStorageString("1638757200.250000")
	require.NoError(t, err)
	assert.Equal(t, "1638757200.25", s)

	native := time.Unix(1638757200, 500000000)
	s, err = ToStorageString(native)
	require.NoError(t, err)
	assert.Equal(t, "1638757200.5", s)

	_, err = ToStorageString("not a time")
	require.Error(t, err)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestStorageRoundTrip(t *testing.T) {
	orig := time.Date(2023, 6, 15, 8, 30, 0, 0, time.Local)
	s, err := ToStorageString(orig)
	require.NoError(t, err)

	got, ok := ToInstant(s)
	require.True(t, ok)
	assert.Equal(t, orig.Unix(), got.Unix())
}

func TestLegacyUpgrade(t *testing.T) {
	rec := LegacyUpgrade("1638757200")
	assert.Equal(t, "1638757200", rec.TimeStart)
	assert.Empty(t, rec.TimeCurr)
	assert.Empty(t, rec.TimeEnd)
}
