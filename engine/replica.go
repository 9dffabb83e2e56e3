package engine

import (
	"fmt"

	"github.com/op/go-logging"

	"github.com/blockberries/simberry/privval"
	"github.com/blockberries/simberry/simnet"
	"github.com/blockberries/simberry/types"
)

var logger *logging.Logger

func init() {
	logger = logging.MustGetLogger("engine")
}

// Role distinguishes the proposer from the voters in a view.
type Role int

// Roles.
const (
	RolePrimary Role = iota
	RoleReplica
)

// String returns the role name, for logs.
func (r Role) String() string {
	if r == RolePrimary {
		return "primary"
	}
	return "replica"
}

// App is the replicated application hook. Accept is invoked exactly once per
// committed request on each committing node and must be deterministic, so
// that every replica produces an identical response for the same request.
type App interface {
	Accept(req types.OpRequest) types.OpResponse
}

// Replica is a protocol node: a fabric endpoint plus the agreement automaton,
// an identity-keyed signer, and the application hook invoked on commit.
//
// The view is fixed at 0 and the primary never rotates. Request ids are
// issued by the primary from a per-instance counter, so independent
// simulations never share a sequence.
type Replica struct {
	node    *simnet.Node
	role    Role
	state   *State
	signer  *privval.Signer
	app     App
	primary types.NodeID
	view    uint32
	reqID   uint32
}

// NewReplica creates a protocol node on the given fabric endpoint.
// Operational configurations require f >= 1; the f = 0 degenerate case is
// reserved for the bare automaton.
func NewReplica(node *simnet.Node, role Role, f int, app App) (*Replica, error) {
	if node == nil {
		return nil, ErrNilNode
	}
	if f < 1 {
		return nil, ErrInvalidFaultBound
	}
	if app == nil {
		return nil, ErrNilApp
	}
	return &Replica{
		node:   node,
		role:   role,
		state:  NewState(f),
		signer: privval.NewSigner(node.ID()),
		app:    app,
	}, nil
}

// Node returns the underlying fabric endpoint.
func (r *Replica) Node() *simnet.Node { return r.node }

// Role returns the node's role in the fixed view.
func (r *Replica) Role() Role { return r.role }

// State returns the protocol automaton, for inspection.
func (r *Replica) State() *State { return r.state }

// SetPrimary records the identity of the designated primary. The identity is
// all a replica needs: phase messages are verified against the primary's
// key, which is derivable from it. Until set, every phase message fails
// verification and is dropped.
func (r *Replica) SetPrimary(id types.NodeID) {
	r.primary = id
}

// Tick drains the inbox and runs the protocol over each delivery in arrival
// order. The simulator calls this once per simulated tick; it must not be
// re-entered.
func (r *Replica) Tick() {
	for _, d := range r.node.TakeInbox() {
		r.dispatch(d.From, d.Msg)
	}
}

// dispatch routes one delivered message by kind.
func (r *Replica) dispatch(from types.NodeID, msg types.Message) {
	logger.Debugf("node %v <- %v from %v", r.node.ID(), msg.Kind(), from)
	switch m := msg.(type) {
	case types.Write:
		r.handleRequest(from, m)
	case types.Read:
		r.handleRequest(from, m)
	case types.PrePrepare:
		r.handlePrePrepare(m)
	case types.Prepare:
		r.handlePrepare(m)
	case types.Commit:
		r.handleCommit(m)
	default:
		// Acks and responses are client-bound; one arriving here is a wiring
		// bug, not a runtime condition.
		panic(fmt.Sprintf("engine: node %v received unexpected %v", r.node.ID(), msg.Kind()))
	}
}

// handleRequest turns a client operation into a signed pre-prepare. Only the
// primary acts; replicas overhear client broadcasts and ignore them.
func (r *Replica) handleRequest(client types.NodeID, req types.OpRequest) {
	if r.role != RolePrimary {
		return
	}
	r.reqID++
	p := types.Proposal{
		Req:    req,
		Sig:    r.signer.SignMessage(req),
		Client: client,
		View:   r.view,
		ReqID:  r.reqID,
	}
	if r.state.PrePrepare(p.View, p.ReqID) {
		logger.Debugf("primary %v proposes req %d view %d", r.node.ID(), p.ReqID, p.View)
		r.node.Broadcast(simnet.Envelope{Msg: types.PrePrepare{Proposal: p}})
	}
}

// handlePrePrepare accepts the primary's proposal and echoes it as a
// prepare. Only replicas act. The proposal is forwarded unchanged; the
// primary's signature keeps authenticating it through the later phases.
func (r *Replica) handlePrePrepare(m types.PrePrepare) {
	if r.role == RolePrimary {
		return
	}
	if !r.verify(m.Proposal) {
		logger.Warningf("node %v dropped pre-prepare with bad signature", r.node.ID())
		return
	}
	if r.state.PrePrepare(m.View, m.ReqID) && r.state.Prepare(m.View, m.ReqID) {
		r.node.Broadcast(simnet.Envelope{Msg: types.Prepare{Proposal: m.Proposal}})
	}
}

// handlePrepare counts a prepare vote and, once prepared, casts this node's
// commit.
func (r *Replica) handlePrepare(m types.Prepare) {
	if !r.verify(m.Proposal) {
		logger.Warningf("node %v dropped prepare with bad signature", r.node.ID())
		return
	}
	if r.state.Prepare(m.View, m.ReqID) && r.state.Commit(m.View, m.ReqID) {
		r.node.Broadcast(simnet.Envelope{Msg: types.Commit{Proposal: m.Proposal}})
	}
}

// handleCommit counts a commit vote. On reaching the 2f+1 quorum the request
// is applied and this node answers the client with its own signed response.
func (r *Replica) handleCommit(m types.Commit) {
	if !r.verify(m.Proposal) {
		logger.Warningf("node %v dropped commit with bad signature", r.node.ID())
		return
	}
	if r.state.Commit(m.View, m.ReqID) && r.state.Phase() == PhaseCommitted {
		resp := r.app.Accept(m.Req)
		logger.Infof("node %v committed req %d", r.node.ID(), m.ReqID)
		r.node.SendTo(m.Client, simnet.Envelope{Msg: types.Response{
			Resp: resp,
			Sig:  r.signer.SignMessage(resp),
		}})
	}
}

// verify checks the proposal's signature against the known primary. Phase
// messages are never re-signed, so the check is the same at every phase.
func (r *Replica) verify(p types.Proposal) bool {
	return privval.Verify(p.Req, p.Sig, r.primary)
}
