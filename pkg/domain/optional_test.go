package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enrollhub/pkg/domain"
)

func TestOptionalUnmarshal(t *testing.T) {
	type body struct {
		Note id.Optional[string] `json:"note"`
	}

	t.Run("absent field is not set", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{}`), &b))
		assert.False(t, b.Note.Set)
	})

	t.Run("explicit null is set but invalid", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"note": null}`), &b))
		assert.True(t, b.Note.Set)
		_, ok := b.Note.Get()
		assert.False(t, ok)
	})

	t.Run("value is set and valid", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"note": "hello"}`), &b))
		v, ok := b.Note.Get()
		require.True(t, ok)
		assert.Equal(t, "hello", v)
	})
}

func TestOptionalConstructors(t *testing.T) {
	some := id.Some(42)
	v, ok := some.Get()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	null := id.Null[int]()
	assert.True(t, null.Set)
	_, ok = null.Get()
	assert.False(t, ok)

	assert.Panics(t, func() { null.MustGet() })
}
