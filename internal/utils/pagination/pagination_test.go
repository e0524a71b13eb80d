package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "entry-42"

	token := EncodeToken(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Test case 2: ID containing the separator character
	trickyID := "a|b|c"
	token = EncodeToken(createdAt, trickyID)
	_, decodedID, err = DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, trickyID, decodedID, "IDs with separators should survive the round trip")

	// Test case 3: Zero time
	zeroToken := EncodeToken(time.Time{}, "x")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZero, "Zero time should match after decode")
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err, "Invalid base64 should return an error")

	// Valid base64 but no separator
	_, _, err = DecodeToken("aGVsbG8=")
	assert.Error(t, err, "Token without separator should return an error")
}
