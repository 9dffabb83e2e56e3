package applog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockberries/simberry/types"
)

// TestWriteAppends verifies that writes append in order and acknowledge the
// index they landed at.
func TestWriteAppends(t *testing.T) {
	l := New()

	assert.Equal(t, types.WriteAck{Success: true, Index: 0}, l.Accept(types.Write{Value: 1}))
	assert.Equal(t, types.WriteAck{Success: true, Index: 1}, l.Accept(types.Write{Value: 2}))
	assert.Equal(t, 2, l.Len())
}

// TestReadBounds verifies in-range, out-of-range, and negative reads.
func TestReadBounds(t *testing.T) {
	l := New()
	l.Accept(types.Write{Value: 1})
	l.Accept(types.Write{Value: 10})

	assert.Equal(t, types.ReadAck{Success: true, Value: 1}, l.Accept(types.Read{Index: 0}))
	assert.Equal(t, types.ReadAck{Success: true, Value: 10}, l.Accept(types.Read{Index: 1}))
	assert.Equal(t, types.ReadAck{Success: false, Value: 0}, l.Accept(types.Read{Index: 2}))
	assert.Equal(t, types.ReadAck{Success: false, Value: 0}, l.Accept(types.Read{Index: -1}))
}

// TestDeterministic verifies that two logs fed the same request sequence
// produce identical responses, which is what lets the client cross-check
// replicas.
func TestDeterministic(t *testing.T) {
	reqs := []types.OpRequest{
		types.Write{Value: 5}, types.Write{Value: 6},
		types.Read{Index: 1}, types.Read{Index: 9},
	}

	a, b := New(), New()
	for _, req := range reqs {
		assert.Equal(t, a.Accept(req), b.Accept(req))
	}
}
