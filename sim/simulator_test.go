package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/simberry/types"
)

// TestConfigValidation verifies the construction-time config checks.
func TestConfigValidation(t *testing.T) {
	assert.NoError(t, DefaultConfig().ValidateBasic())

	cfg := DefaultConfig()
	cfg.F = 0
	assert.ErrorIs(t, cfg.ValidateBasic(), ErrInvalidFaultBound)

	cfg = DefaultConfig()
	cfg.TickLimit = 0
	assert.ErrorIs(t, cfg.ValidateBasic(), ErrInvalidTickLimit)

	cfg = DefaultConfig()
	cfg.Latency = -1
	assert.ErrorIs(t, cfg.ValidateBasic(), ErrNegativeLatency)

	_, err := New(&Config{F: 0, TickLimit: 1})
	assert.Error(t, err)
}

// TestClusterSizeDefaults verifies the 3f+1 floor on the node count.
func TestClusterSizeDefaults(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Len(t, s.Replicas(), 4)

	cfg := DefaultConfig()
	cfg.F = 2
	cfg.Nodes = 3
	s, err = New(cfg)
	require.NoError(t, err)
	assert.Len(t, s.Replicas(), 7)

	cfg = DefaultConfig()
	cfg.Nodes = 6
	s, err = New(cfg)
	require.NoError(t, err)
	assert.Len(t, s.Replicas(), 6)
}

// TestClusterWiring verifies the topology invariants: client linked to every
// node, nodes pairwise linked, links symmetric, no self links.
func TestClusterWiring(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	client := s.Client().Node()
	for _, a := range s.Replicas() {
		assert.True(t, client.HasLink(a.Node().ID()))
		assert.True(t, a.Node().HasLink(client.ID()))
		assert.False(t, a.Node().HasLink(a.Node().ID()))
		for _, b := range s.Replicas() {
			if a == b {
				continue
			}
			assert.True(t, a.Node().HasLink(b.Node().ID()))
			assert.True(t, b.Node().HasLink(a.Node().ID()))
		}
	}
}

// TestIndependentSimulators verifies that two simulators share nothing: the
// same identities are handed out in both, yet runs do not interfere.
func TestIndependentSimulators(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	b, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, a.Client().Node().ID(), b.Client().Node().ID())

	a.Submit(types.Write{Value: 1})
	ticksA := a.Run()
	require.Less(t, ticksA, DefaultTickLimit)

	b.Submit(types.Write{Value: 2})
	require.Less(t, b.Run(), DefaultTickLimit)

	// Each cluster committed exactly its own single request.
	for _, s := range []*Simulator{a, b} {
		for _, rep := range s.Replicas() {
			assert.Equal(t, uint32(1), rep.State().ReqID())
		}
	}
}

// TestDestroyNodeErrors verifies bounds checks and double destroy.
func TestDestroyNodeErrors(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DestroyNode(-1), ErrNoSuchNode)
	assert.ErrorIs(t, s.DestroyNode(4), ErrNoSuchNode)
	assert.NoError(t, s.DestroyNode(1))
	assert.ErrorIs(t, s.DestroyNode(1), ErrNoSuchNode)
}

// TestLatencyStretchesRun verifies that client-submission latency delays
// the round trip but not the outcome.
func TestLatencyStretchesRun(t *testing.T) {
	fast, err := New(nil)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Latency = 5
	slow, err := New(cfg)
	require.NoError(t, err)

	fast.Submit(types.Write{Value: 1})
	slow.Submit(types.Write{Value: 1})

	fastTicks := fast.Run()
	slowTicks := slow.Run()
	assert.Greater(t, slowTicks, fastTicks)

	assert.Len(t, fast.Client().Received(), 4)
	assert.Len(t, slow.Client().Received(), 4)
}

// TestDeadPrimaryStalls verifies the documented stall: with the primary
// destroyed, a run hits the tick limit and no responses arrive.
func TestDeadPrimaryStalls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickLimit = 50
	s, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, s.DestroyNode(0))
	s.Submit(types.Write{Value: 1})

	assert.Equal(t, 50, s.Run())
	assert.Empty(t, s.Client().Received())
}
