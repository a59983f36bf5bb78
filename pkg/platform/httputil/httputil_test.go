package httputil_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/httputil"
)

type sampleRequest struct {
	Name string `json:"name"`
}

func (r *sampleRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "ok"}`))
		var body sampleRequest
		require.NoError(t, httputil.DecodeAndPrepare(req, &body))
		assert.Equal(t, "ok", body.Name)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "ok", "extra": 1}`))
		var body sampleRequest
		err := httputil.DecodeAndPrepare(req, &body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var body sampleRequest
		err := httputil.DecodeAndPrepare(req, &body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("surfaces validation failures", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		var body sampleRequest
		err := httputil.DecodeAndPrepare(req, &body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestWriteError(t *testing.T) {
	t.Run("domain errors carry code and description", func(t *testing.T) {
		w := httptest.NewRecorder()
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "registration missing"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, "registration missing", body["error_description"])
	})

	t.Run("internal errors omit the description", func(t *testing.T) {
		w := httptest.NewRecorder()
		httputil.WriteError(w, errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "internal_error", body["error"])
		_, present := body["error_description"]
		assert.False(t, present)
	})
}
