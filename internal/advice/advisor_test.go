package advice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/common"
	"github.com/hallcrest/capitolflow/internal/model"
)

func TestNew_MockProvider(t *testing.T) {
	advisor, err := New(Config{Provider: "mock"})
	require.NoError(t, err)

	text, err := advisor.Advise(context.Background(), model.PortfolioSummary{ClientCount: 4})
	require.NoError(t, err)
	assert.Contains(t, text, "4 clients")
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidConfig))
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	_, err := New(Config{Provider: "openai"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}

func TestRetryableAdvisor_GivesUpOnPersistentFailure(t *testing.T) {
	mock := &MockAdvisor{Err: errors.New("upstream down")}
	advisor := &retryableAdvisor{inner: mock}

	_, err := advisor.Advise(context.Background(), model.PortfolioSummary{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAdviceFailed))
	assert.Equal(t, 3, mock.Calls(), "default retry budget is three attempts")
}

func TestRetryableAdvisor_PassesThroughSuccess(t *testing.T) {
	mock := &MockAdvisor{Response: "service the top five"}
	advisor := &retryableAdvisor{inner: mock}

	text, err := advisor.Advise(context.Background(), model.PortfolioSummary{})
	require.NoError(t, err)
	assert.Equal(t, "service the top five", text)
	assert.Equal(t, 1, mock.Calls())
}
