package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

func TestParseIDs(t *testing.T) {
	t.Run("accepts a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		parsed, err := id.ParseRegistrationID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, parsed.String())
	})

	t.Run("rejects empty, malformed and nil UUIDs", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", uuid.Nil.String()} {
			_, err := id.ParseUserID(raw)
			require.Error(t, err, raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), raw)
		}
	})
}

func TestIDJSONRoundTrip(t *testing.T) {
	payID := id.NewPaymentID()

	encoded, err := json.Marshal(payID)
	require.NoError(t, err)
	assert.Equal(t, `"`+payID.String()+`"`, string(encoded), "IDs marshal as UUID strings")

	var decoded id.PaymentID
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, payID, decoded)
}

func TestIDsAreDistinctTypes(t *testing.T) {
	// shared UUID bytes do not make IDs interchangeable across entities
	raw := uuid.New()
	userID := id.UserID(raw)
	assert.Equal(t, raw.String(), userID.String())
	assert.False(t, userID.IsNil())

	var zero id.UserID
	assert.True(t, zero.IsNil())
}
