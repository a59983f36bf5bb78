package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

func TestParseAmount(t *testing.T) {
	t.Run("accepts two decimal places", func(t *testing.T) {
		amount, err := id.ParseAmount("1500.00")
		require.NoError(t, err)
		assert.Equal(t, "1500.00", amount.String())
	})

	t.Run("renders whole numbers at currency granularity", func(t *testing.T) {
		amount, err := id.ParseAmount("1500")
		require.NoError(t, err)
		assert.Equal(t, "1500.00", amount.String())
	})

	t.Run("rejects more than two decimal places", func(t *testing.T) {
		_, err := id.ParseAmount("10.999")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects empty and non-numeric input", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "10,50"} {
			_, err := id.ParseAmount(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestAmountJSON(t *testing.T) {
	t.Run("marshals as a string", func(t *testing.T) {
		encoded, err := json.Marshal(id.MustAmount("1000.00"))
		require.NoError(t, err)
		assert.Equal(t, `"1000.00"`, string(encoded))
	})

	t.Run("unmarshals quoted and bare forms", func(t *testing.T) {
		var a id.Amount
		require.NoError(t, json.Unmarshal([]byte(`"99.90"`), &a))
		assert.Equal(t, "99.90", a.String())

		require.NoError(t, json.Unmarshal([]byte(`99.90`), &a))
		assert.Equal(t, "99.90", a.String())
	})

	t.Run("rejects null", func(t *testing.T) {
		var a id.Amount
		assert.Error(t, json.Unmarshal([]byte(`null`), &a))
	})

	t.Run("round-trips without drift", func(t *testing.T) {
		original := id.MustAmount("0.10")
		encoded, err := json.Marshal(original)
		require.NoError(t, err)
		var decoded id.Amount
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.True(t, original.Equal(decoded))
	})
}

func TestAmountSigns(t *testing.T) {
	assert.True(t, id.MustAmount("0.01").IsPositive())
	assert.True(t, id.MustAmount("-5.00").IsNegative())
	assert.True(t, id.MustAmount("0.00").IsZero())
}
