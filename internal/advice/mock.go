package advice

import (
	"context"
	"fmt"
	"sync"

	"github.com/hallcrest/capitolflow/internal/model"
)

// MockAdvisor is a test double that records calls and returns canned text.
type MockAdvisor struct {
	mu        sync.Mutex
	Summaries []model.PortfolioSummary
	Response  string
	Err       error
}

// Advise records the summary and returns the configured response.
func (m *MockAdvisor) Advise(_ context.Context, summary model.PortfolioSummary) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Summaries = append(m.Summaries, summary)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("Reviewed %d clients; prioritize the highest strategic-value relationships.", summary.ClientCount), nil
}

// Calls returns how many times Advise has been invoked.
func (m *MockAdvisor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Summaries)
}
