package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       string
		expected time.Time
	}{
		{name: "iso with millis", in: "2024-03-15T12:30:00.000Z", expected: want},
		{name: "iso without zone", in: "2024-03-15T12:30:00", expected: want},
		{name: "space separated", in: "2024-03-15 12:30:00", expected: want},
		{name: "date only", in: "2024-03-15", expected: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{name: "js date string", in: "Fri Mar 15 2024 12:30:00 GMT+0000 (Coordinated Universal Time)", expected: want},
		{name: "unix millis", in: "1710505800000", expected: want},
		{name: "garbage", in: "yesterday", expected: time.Time{}},
		{name: "empty", in: "", expected: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(ParseTimestamp(tt.in)), "got %v", ParseTimestamp(tt.in))
		})
	}
}

func TestTransaction_UnmarshalJSON(t *testing.T) {
	var txs []Transaction
	err := json.Unmarshal([]byte(`[
		{"_id":"t1","type":"buy","status":"pending","amountToken":"100","createdAt":"not a date","updatedAt":null},
		{"_id":"t2","type":"buy","status":"completed","amountToken":"5","createdAt":1710505800000,"timestamp":1710505900}
	]`), &txs)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, "100", txs[0].AmountToken)
	assert.True(t, txs[0].CreatedAt.IsZero())
	assert.True(t, time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC).Equal(txs[1].CreatedAt))
	assert.Equal(t, int64(1710505900), txs[1].Timestamp)
}

func TestUser_UnmarshalJSON(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"_id":"u1","email":"ann@example.com","createdAt":"2024-03-15T12:30:00Z","updatedAt":"??"}`), &u)

	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, 2024, u.CreatedAt.Year())
	assert.True(t, u.UpdatedAt.IsZero())
}
