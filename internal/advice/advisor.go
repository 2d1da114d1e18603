// Package advice turns a portfolio summary into free-text commentary via an
// external text-generation service. The engine treats the generator as
// opaque; everything here is transport and prompt plumbing.
package advice

import (
	"context"
	"fmt"

	"github.com/hallcrest/capitolflow/internal/common"
	"github.com/hallcrest/capitolflow/internal/model"
	"github.com/hallcrest/capitolflow/internal/service"
)

// Config holds advisor provider configuration.
type Config struct {
	Provider    string // "openai" or "mock"
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// New creates an Advisor for the configured provider, wrapped with retry
// handling.
func New(cfg Config) (service.Advisor, error) {
	var inner service.Advisor
	var err error

	switch cfg.Provider {
	case "openai", "":
		inner, err = newOpenAIAdvisor(cfg)
	case "mock":
		inner = &MockAdvisor{}
	default:
		return nil, fmt.Errorf("%w: unknown advice provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return &retryableAdvisor{inner: inner}, nil
}

// retryableAdvisor wraps an Advisor with backoff on transient failures.
type retryableAdvisor struct {
	inner service.Advisor
}

func (r *retryableAdvisor) Advise(ctx context.Context, summary model.PortfolioSummary) (string, error) {
	var text string
	err := common.WithRetry(ctx, func() error {
		var innerErr error
		text, innerErr = r.inner.Advise(ctx, summary)
		return innerErr
	}, service.RetryOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrAdviceFailed, err)
	}
	return text, nil
}
