package applog

import (
	"fmt"

	"github.com/blockberries/simberry/types"
)

// Log is an append-only integer log. Accept is deterministic, so replicas
// feeding it the same committed request sequence hold identical logs and
// produce identical responses.
type Log struct {
	data []int
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Accept applies one committed request. Writes append and acknowledge the
// new entry's index; reads report whether the index is in range and the
// value there (zero when out of range).
func (l *Log) Accept(req types.OpRequest) types.OpResponse {
	switch m := req.(type) {
	case types.Write:
		l.data = append(l.data, m.Value)
		return types.WriteAck{Success: true, Index: len(l.data) - 1}
	case types.Read:
		if m.Index >= 0 && m.Index < len(l.data) {
			return types.ReadAck{Success: true, Value: l.data[m.Index]}
		}
		return types.ReadAck{Success: false, Value: 0}
	default:
		panic(fmt.Sprintf("applog: unexpected request %v", req.Kind()))
	}
}

// Len returns the number of committed entries.
func (l *Log) Len() int {
	return len(l.data)
}
