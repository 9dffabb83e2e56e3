package simnet

import (
	"fmt"
	"sort"

	"github.com/blockberries/simberry/types"
)

// Envelope is a message together with its remaining delivery latency in
// ticks. Delay zero means the message is due on the next link tick.
type Envelope struct {
	Msg   types.Message
	Delay int
}

// Delivery is an inbox entry: a delivered message tagged with the identity
// of the node that sent it.
type Delivery struct {
	From types.NodeID
	Msg  types.Message
}

// Node is one endpoint in the fabric. Protocol behavior lives above it: a
// replica or client embeds a Node and drives it from its own tick handler.
type Node struct {
	id     types.NodeID
	links  map[types.NodeID]*Link
	inbox  []Delivery
	closed bool
}

// NewNode creates a node with the given identity. Identities are assigned by
// the caller (the simulator allocates them per run) and must be non-zero and
// unique among connected nodes.
func NewNode(id types.NodeID) *Node {
	if id == types.NoNode {
		panic("simnet: node identity must be non-zero")
	}
	return &Node{
		id:    id,
		links: make(map[types.NodeID]*Link),
	}
}

// ID returns the node's stable identity.
func (n *Node) ID() types.NodeID {
	return n.id
}

// Close marks the node destroyed. Peers keep their link entries; their sends
// toward this node fail from now on, and in-flight messages toward it are
// dropped on the next link tick. Closing twice is safe.
func (n *Node) Close() {
	n.closed = true
}

// Closed reports whether the node has been destroyed.
func (n *Node) Closed() bool {
	return n.closed
}

// HasLink reports whether the node currently has a link to peer.
func (n *Node) HasLink(peer types.NodeID) bool {
	_, ok := n.links[peer]
	return ok
}

// SendTo enqueues a message toward peer. It returns false when the node has
// no link to peer or the peer has been destroyed; the message is then
// dropped silently.
func (n *Node) SendTo(peer types.NodeID, env Envelope) bool {
	if n.closed {
		return false
	}
	l, ok := n.links[peer]
	if !ok {
		return false
	}
	return l.Send(peer, env)
}

// Broadcast sends an identical copy of the envelope to every currently
// registered peer, in ascending peer-identity order. Per-peer delivery
// failures are ignored; broadcast has no per-peer status to report.
func (n *Node) Broadcast(env Envelope) {
	if n.closed {
		return
	}
	peers := make([]types.NodeID, 0, len(n.links))
	for peer := range n.links {
		peers = append(peers, peer)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
	for _, peer := range peers {
		n.links[peer].Send(peer, env)
	}
}

// TakeInbox removes and returns every message delivered since the last call.
// A tick handler calls this first and works off the snapshot; anything
// arriving later lands in a fresh inbox processed next tick.
func (n *Node) TakeInbox() []Delivery {
	inbox := n.inbox
	n.inbox = nil
	return inbox
}

// InboxLen reports how many deliveries are waiting without draining them.
func (n *Node) InboxLen() int {
	return len(n.inbox)
}

// put appends a delivered message to the inbox. Only links call this, and
// only for nodes they are registered with.
func (n *Node) put(from types.NodeID, msg types.Message) {
	if !n.HasLink(from) {
		panic(fmt.Sprintf("simnet: delivery to %v from unlinked peer %v", n.id, from))
	}
	n.inbox = append(n.inbox, Delivery{From: from, Msg: msg})
}

// attach registers a link under the peer's identity.
func (n *Node) attach(peer types.NodeID, l *Link) {
	if _, ok := n.links[peer]; ok {
		panic(fmt.Sprintf("simnet: node %v already linked to %v", n.id, peer))
	}
	n.links[peer] = l
}

// detach drops the link entry for peer. Missing entries are tolerated; link
// teardown may race node destruction in either order.
func (n *Node) detach(peer types.NodeID) {
	delete(n.links, peer)
}
