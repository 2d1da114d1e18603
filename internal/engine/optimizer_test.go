package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hallcrest/capitolflow/internal/model"
)

func eligibleClient(name string, hours, value float64) *model.Client {
	c := &model.Client{Name: name, Status: model.StatusInForce}
	c.ApplyEnhancementDefaults()
	c.TimeCommitment = hours
	c.StrategicValue = value
	return c
}

func TestOptimize_GreedySkipsOverflowAndContinues(t *testing.T) {
	x := eligibleClient("x", 40, 9)
	y := eligibleClient("y", 30, 7)
	z := eligibleClient("z", 20, 5)

	result := New().Optimize([]*model.Client{z, y, x}, 60)

	// X fills 40/60, Y would overflow, Z tops it up to exactly 60.
	require.Len(t, result.Clients, 2)
	assert.Equal(t, "x", result.Clients[0].Name)
	assert.Equal(t, "z", result.Clients[1].Name)
	assert.Equal(t, 1, result.ExcludedClientCount)
	assert.InDelta(t, 60, result.TotalHours, 0.001)
	assert.InDelta(t, 100, result.UtilizationRate, 0.001)
}

func TestOptimize_FiltersIneligibleClients(t *testing.T) {
	inForce := eligibleClient("active", 10, 5)
	proposal := eligibleClient("pending", 10, 4)
	proposal.Status = model.StatusProposal
	done := eligibleClient("finished", 10, 9)
	done.Status = model.StatusDone
	hold := eligibleClient("stuck", 10, 9)
	hold.Status = model.StatusHold
	noHours := eligibleClient("idle", 0, 9)

	result := New().Optimize([]*model.Client{inForce, proposal, done, hold, noHours}, 100)

	require.Len(t, result.Clients, 2)
	assert.Equal(t, "active", result.Clients[0].Name)
	assert.Equal(t, "pending", result.Clients[1].Name)
	// Ineligible clients are filtered out entirely, not counted as excluded.
	assert.Equal(t, 0, result.ExcludedClientCount)
}

func TestOptimize_SelectionSortedByValueDescending(t *testing.T) {
	batch := []*model.Client{
		eligibleClient("low", 5, 2),
		eligibleClient("high", 5, 9),
		eligibleClient("mid", 5, 6),
	}

	result := New().Optimize(batch, 1000)

	require.Len(t, result.Clients, 3)
	for i := 1; i < len(result.Clients); i++ {
		assert.GreaterOrEqual(t,
			result.Clients[i-1].StrategicValue,
			result.Clients[i].StrategicValue)
	}
}

func TestOptimize_TiesKeepInputOrder(t *testing.T) {
	first := eligibleClient("first", 5, 7)
	second := eligibleClient("second", 5, 7)
	third := eligibleClient("third", 5, 7)

	result := New().Optimize([]*model.Client{first, second, third}, 1000)

	require.Len(t, result.Clients, 3)
	assert.Equal(t, "first", result.Clients[0].Name)
	assert.Equal(t, "second", result.Clients[1].Name)
	assert.Equal(t, "third", result.Clients[2].Name)
}

func TestOptimize_CapacityNeverExceeded(t *testing.T) {
	batch := []*model.Client{
		eligibleClient("a", 37, 9),
		eligibleClient("b", 22, 8),
		eligibleClient("c", 41, 7),
		eligibleClient("d", 13, 6),
		eligibleClient("e", 8, 5),
	}

	const capacity = 70.0
	result := New().Optimize(batch, capacity)

	var total float64
	for _, c := range result.Clients {
		total += c.TimeCommitment
	}
	assert.LessOrEqual(t, total, capacity)
	assert.Equal(t, len(batch), len(result.Clients)+result.ExcludedClientCount)
}

func TestOptimize_AggregatesOverAcceptedSet(t *testing.T) {
	a := eligibleClient("a", 10, 8)
	a.AverageRevenue = 120000
	b := eligibleClient("b", 20, 6)
	b.AverageRevenue = 60000

	result := New().Optimize([]*model.Client{a, b}, 100)

	assert.InDelta(t, 180000, result.TotalRevenue, 0.001)
	assert.InDelta(t, 30, result.TotalHours, 0.001)
	assert.InDelta(t, 7, result.AverageStrategicValue, 0.001)
	assert.InDelta(t, 30, result.UtilizationRate, 0.001)
}

func TestOptimize_EmptyInput(t *testing.T) {
	result := New().Optimize(nil, DefaultMaxCapacity)

	assert.Empty(t, result.Clients)
	assert.Zero(t, result.TotalRevenue)
	assert.Zero(t, result.TotalHours)
	assert.Zero(t, result.AverageStrategicValue)
	assert.Zero(t, result.UtilizationRate)
	assert.Zero(t, result.ExcludedClientCount)
}

func TestOptimize_ZeroCapacityExcludesEveryone(t *testing.T) {
	batch := []*model.Client{
		eligibleClient("a", 10, 8),
		eligibleClient("b", 20, 6),
	}

	result := New().Optimize(batch, 0)

	assert.Empty(t, result.Clients)
	assert.Equal(t, 2, result.ExcludedClientCount)
	assert.Zero(t, result.UtilizationRate)
}
