package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2023-05-15")
	require.NoError(t, err)
	assert.Equal(t, "2023-05-15", date.String())

	_, err = ParseDate("15.05.2023")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	date := NewDate(2023, time.May, 1)

	assert.Equal(t, "2023-05-15", date.AddDays(14).String())
	assert.Equal(t, "2024-05-01", date.AddYears(1).String())
	assert.Equal(t, 14, date.AddDays(14).DaysSince(date))
	assert.True(t, date.Before(date.AddDays(1)))
	assert.True(t, date.AddDays(1).After(date))
	assert.True(t, date.Equal(NewDate(2023, time.May, 1)))
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(NewDate(2023, time.May, 15))
	require.NoError(t, err)
	assert.Equal(t, `"2023-05-15"`, string(raw))

	// Data zerowa serializuje się jako null
	raw, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	var date Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-05-15"`), &date))
	assert.Equal(t, NewDate(2023, time.May, 15), date)

	require.NoError(t, json.Unmarshal([]byte("null"), &date))
	assert.True(t, date.IsZero())
}
