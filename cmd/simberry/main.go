// Command simberry runs the fixed demonstration scenario: a six-operation
// script against a fresh f = 1 cluster, then a replica crash, then a second
// six-operation script against the survivors.
package main

import (
	"os"

	"github.com/op/go-logging"

	"github.com/blockberries/simberry/sim"
	"github.com/blockberries/simberry/types"
)

func main() {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter(`%{level:.4s} %{module}: %{message}`))
	logging.SetBackend(formatted)
	logging.SetLevel(logging.INFO, "")

	s, err := sim.New(sim.DefaultConfig())
	if err != nil {
		panic(err)
	}

	s.Submit(
		types.Write{Value: 1},
		types.Write{Value: 2},
		types.Write{Value: 10},
		types.Read{Index: 0},
		types.Read{Index: 2},
		types.Read{Index: 3},
	)
	s.Run()

	if err := s.DestroyNode(1); err != nil {
		panic(err)
	}
	s.Submit(
		types.Write{Value: 1000},
		types.Write{Value: 1234},
		types.Write{Value: 9876},
		types.Read{Index: 5},
		types.Read{Index: 10},
		types.Read{Index: 3},
	)
	s.Run()
}
