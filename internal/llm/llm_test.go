package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQAResponse(t *testing.T) {
	out, err := NormalizeQAResponse([]byte(`[{"answer":"no","score":0.2},{"answer":"yes","score":"0.9"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"yes","score":0.9}`, string(out))
	assert.NoError(t, ValidateJSONAgainstSchema(QAResponseSchema(), out))

	out, err = NormalizeQAResponse([]byte(`{"answer":null,"score":0.01,"start":0,"end":0}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"","score":0.01,"start":0,"end":0}`, string(out))

	for _, raw := range []string{`{}`, `{"score":0.9}`, `{"warnings":["unexpected payload"]}`} {
		out, err = NormalizeQAResponse([]byte(raw))
		require.NoError(t, err, raw)
		assert.NotContains(t, string(out), `"answer"`, raw)
		assert.Error(t, ValidateJSONAgainstSchema(QAResponseSchema(), out), raw)
	}

	_, err = NormalizeQAResponse([]byte(`[]`))
	assert.Error(t, err)
	_, err = NormalizeQAResponse([]byte(`"text"`))
	assert.Error(t, err)
}

func TestNormalizeSummaryResponse(t *testing.T) {
	out, err := NormalizeSummaryResponse([]byte(`{"generated_text":"A lease."}`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"summary_text":"A lease."}]`, string(out))
	assert.NoError(t, ValidateJSONAgainstSchema(SummaryResponseSchema(), out))

	out, err = NormalizeSummaryResponse([]byte(`[{"summary_text":"ok"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"summary_text":"ok"}]`, string(out))
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	assert.Error(t, ValidateJSONAgainstSchema(QAResponseSchema(), []byte(`{"score":0.5}`)))
	assert.Error(t, ValidateJSONAgainstSchema(QAResponseSchema(), []byte(`{"answer":"x","score":7}`)))
	assert.Error(t, ValidateJSONAgainstSchema(SummaryResponseSchema(), []byte(`[]`)))
	assert.Error(t, ValidateJSONAgainstSchema(ChatSummarySchema(), []byte(`{"summary":""}`)))
	assert.Error(t, ValidateJSONAgainstSchema(QAResponseSchema(), []byte(`not json`)))
	assert.NoError(t, ValidateJSONAgainstSchema(ChatSummarySchema(), []byte(`{"summary":"short"}`)))
}

func TestSendJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	headers := map[string]string{"Authorization": "Bearer t0k"}
	raw, status, err := SendJSON(context.Background(), srv.Client(), srv.URL+"/ok", map[string]any{"a": 1}, headers, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(raw))

	_, status, err = SendJSON(context.Background(), srv.Client(), srv.URL+"/fail", map[string]any{}, headers, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, err.Error(), "Model is currently loading")
}
