package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 31, 14, 30, 45, 123456789, time.UTC)
	id := "0b1c9a8e-3a7f-4b55-9e0b-8c9d3f7a2e10"

	token := EncodeToken(date, createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, date, cursor.Date)
	assert.Equal(t, createdAt, cursor.CreatedAt)
	assert.Equal(t, id, cursor.ID)

	// Current time keeps nanosecond precision through the round trip.
	now := time.Now().UTC()
	cursor, err = DecodeToken(EncodeToken(now, now, id))
	require.NoError(t, err)
	assert.True(t, now.Equal(cursor.Date))
	assert.True(t, now.Equal(cursor.CreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	missingID := base64.URLEncoding.EncodeToString([]byte("2024-03-31T00:00:00Z|2024-03-31T00:00:00Z"))
	_, err = DecodeToken(missingID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|2024-03-31T00:00:00Z|abc"))
	_, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	badCreatedAt := base64.URLEncoding.EncodeToString([]byte("2024-03-31T00:00:00Z|later|abc"))
	_, err = DecodeToken(badCreatedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
