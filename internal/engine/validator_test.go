package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/model"
)

func validClient(name string) *model.Client {
	c := &model.Client{
		Name:           name,
		ContractPeriod: "1/1/25-12/31/25",
		Revenue:        map[int]float64{2025: 50000},
	}
	c.ApplyEnhancementDefaults()
	return c
}

func TestValidate_CleanBatch(t *testing.T) {
	batch := []*model.Client{validClient("a"), validClient("b")}

	result := New().Validate(batch)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.ClientCount)
	assert.Len(t, result.ValidClients, 2)
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Client)
	}{
		{
			name:   "blank name",
			mutate: func(c *model.Client) { c.Name = "  " },
		},
		{
			name:   "missing contract period",
			mutate: func(c *model.Client) { c.ContractPeriod = "" },
		},
		{
			name:   "contract period without separator",
			mutate: func(c *model.Client) { c.ContractPeriod = "ongoing" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validClient("bad")
			tt.mutate(bad)
			good := validClient("good")

			result := New().Validate([]*model.Client{bad, good})

			assert.False(t, result.IsValid)
			require.Len(t, result.Issues, 1)
			require.Len(t, result.ValidClients, 1)
			assert.Equal(t, "good", result.ValidClients[0].Name)
		})
	}
}

func TestValidate_AnnotatedPeriodsAreNotIssues(t *testing.T) {
	expired := validClient("expired")
	expired.ContractPeriod = "Expired 9/20/21"
	expires := validClient("expires")
	expires.ContractPeriod = "expires 2/1/26"

	result := New().Validate([]*model.Client{expired, expires})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Issues)
}

func TestValidate_ZeroRevenueIsOnlyAWarning(t *testing.T) {
	prospect := validClient("prospect")
	prospect.Revenue = map[int]float64{2024: 0, 2025: 0}

	result := New().Validate([]*model.Client{prospect})

	assert.True(t, result.IsValid, "warnings never affect validity")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "prospect")
	assert.Len(t, result.ValidClients, 1)
}

func TestValidate_EmptyBatch(t *testing.T) {
	result := New().Validate(nil)

	assert.True(t, result.IsValid)
	assert.Zero(t, result.ClientCount)
	assert.Empty(t, result.ValidClients)
}
