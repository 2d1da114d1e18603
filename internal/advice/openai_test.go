package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/common"
	"github.com/hallcrest/capitolflow/internal/model"
)

func TestOpenAIAdvisor_Advise(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Focus on Meridian Energy.\n"}},
			},
		})
	}))
	defer server.Close()

	advisor, err := newOpenAIAdvisor(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := advisor.Advise(context.Background(), model.PortfolioSummary{ClientCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Focus on Meridian Energy.", text)
	assert.Equal(t, "Bearer test-key", gotAuth)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
}

func TestOpenAIAdvisor_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	advisor, err := newOpenAIAdvisor(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = advisor.Advise(context.Background(), model.PortfolioSummary{})
	assert.ErrorIs(t, err, common.ErrRateLimit)
}

func TestOpenAIAdvisor_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	advisor, err := newOpenAIAdvisor(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = advisor.Advise(context.Background(), model.PortfolioSummary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}
