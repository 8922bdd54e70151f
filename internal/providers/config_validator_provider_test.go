package providers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAPIURL(t *testing.T) {
	url, err := NormalizeAPIURL("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, url, "empty falls back to the vendor endpoint")

	url, err = NormalizeAPIURL("https://lastpass.example.com/enterpriseapi.php")
	require.NoError(t, err)
	assert.Equal(t, "https://lastpass.example.com/enterpriseapi.php", url)

	_, err = NormalizeAPIURL("http://lastpass.example.com/enterpriseapi.php")
	assert.Error(t, err, "plain HTTP is rejected")

	_, err = NormalizeAPIURL("localhost")
	assert.Error(t, err, "a value without a domain dot is rejected")

	url, err = NormalizeAPIURL("lastpass.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://lastpass.example.com", url, "bare domains get the scheme prefixed")
}

func TestValidateTimeStart(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

	assert.NoError(t, validateTimeStart("", now))
	assert.NoError(t, validateTimeStart("2024-01-09 00:00:00", now))
	assert.NoError(t, validateTimeStart(strconv.FormatInt(now.Add(-time.Hour).Unix(), 10), now))

	assert.Error(t, validateTimeStart("2024-01-09", now), "a partial wire layout is rejected")
	assert.Error(t, validateTimeStart("tomorrow", now))
	assert.Error(t, validateTimeStart(strconv.FormatInt(now.Add(time.Hour).Unix(), 10), now),
		"a future epoch start is rejected")
	assert.Error(t, validateTimeStart(strconv.FormatInt(now.AddDate(-5, 0, 0).Unix(), 10), now),
		"an epoch start past the lookback bound is rejected")
}
