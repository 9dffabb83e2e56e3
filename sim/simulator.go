package sim

import (
	"github.com/op/go-logging"

	"github.com/blockberries/simberry/applog"
	"github.com/blockberries/simberry/engine"
	"github.com/blockberries/simberry/simnet"
	"github.com/blockberries/simberry/types"
)

var logger *logging.Logger

func init() {
	logger = logging.MustGetLogger("sim")
}

// Simulator owns a cluster — client, nodes, and every link — and drives it
// tick by tick. Node 0 is the primary; the client is linked to every node
// and the nodes are pairwise interconnected.
type Simulator struct {
	cfg      *Config
	client   *Client
	replicas []*engine.Replica
	links    []*simnet.Link
	actions  []types.OpRequest
	nextID   types.NodeID
}

// New builds a simulator from the config (nil means DefaultConfig). Node
// identities are allocated per instance, so independent simulators never
// share them.
func New(cfg *Config) (*Simulator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, err
	}

	s := &Simulator{cfg: cfg}
	s.client = NewClient(simnet.NewNode(s.allocID()), cfg.Latency)

	n := cfg.clusterSize()
	for i := 0; i < n; i++ {
		role := engine.RoleReplica
		if i == 0 {
			role = engine.RolePrimary
		}
		node := simnet.NewNode(s.allocID())
		rep, err := engine.NewReplica(node, role, cfg.F, applog.New())
		if err != nil {
			return nil, err
		}
		s.replicas = append(s.replicas, rep)

		link, err := simnet.Connect(s.client.Node(), node)
		if err != nil {
			return nil, err
		}
		s.links = append(s.links, link)
	}

	primaryID := s.replicas[0].Node().ID()
	for _, rep := range s.replicas {
		rep.SetPrimary(primaryID)
	}

	for i := 0; i < len(s.replicas)-1; i++ {
		for j := i + 1; j < len(s.replicas); j++ {
			link, err := simnet.Connect(s.replicas[i].Node(), s.replicas[j].Node())
			if err != nil {
				return nil, err
			}
			s.links = append(s.links, link)
		}
	}

	logger.Debugf("cluster up: f=%d, %d nodes, primary %v", cfg.F, n, primaryID)
	return s, nil
}

// Client returns the scripted client, for inspecting responses.
func (s *Simulator) Client() *Client { return s.client }

// Replicas returns the protocol nodes by construction index. Destroyed
// slots are nil.
func (s *Simulator) Replicas() []*engine.Replica { return s.replicas }

// Submit appends client actions to the script. Each is broadcast once the
// previous action has been answered by every live node.
func (s *Simulator) Submit(actions ...types.OpRequest) {
	s.actions = append(s.actions, actions...)
}

// Run drives ticks until the script is exhausted and fully answered, or the
// tick limit is reached. It returns the number of ticks taken and may be
// called again after submitting more actions.
func (s *Simulator) Run() int {
	ticks := 0
	for !(len(s.actions) == 0 && s.client.Ready()) && ticks < s.cfg.TickLimit {
		s.tick()
		ticks++
	}
	logger.Infof("simulation has taken %d ticks", ticks)
	return ticks
}

// DestroyNode removes a node from the simulation, as a crash would. Its
// peers keep their links; sends toward it fail and in-flight traffic is
// dropped. Destroying the primary stalls every later request until the
// tick limit, since the primary never rotates.
func (s *Simulator) DestroyNode(index int) error {
	if index < 0 || index >= len(s.replicas) || s.replicas[index] == nil {
		return ErrNoSuchNode
	}
	logger.Infof("destroying node %v", s.replicas[index].Node().ID())
	s.replicas[index].Node().Close()
	s.replicas[index] = nil
	return nil
}

// tick advances simulated time by one step: links, live nodes, then the
// client (fed its next action first if the previous one is done).
func (s *Simulator) tick() {
	for _, l := range s.links {
		l.Tick()
	}
	for _, rep := range s.replicas {
		if rep != nil {
			rep.Tick()
		}
	}
	if s.client.Ready() && len(s.actions) > 0 {
		s.client.Action(s.actions[0], s.aliveNodes())
		s.actions = s.actions[1:]
	}
	s.client.Tick()
}

// aliveNodes counts the nodes still in the simulation.
func (s *Simulator) aliveNodes() int {
	alive := 0
	for _, rep := range s.replicas {
		if rep != nil {
			alive++
		}
	}
	return alive
}

// allocID hands out the next node identity for this run.
func (s *Simulator) allocID() types.NodeID {
	s.nextID++
	return s.nextID
}
