package simnet

import (
	"errors"
	"fmt"

	"github.com/blockberries/simberry/types"
)

// Link construction errors.
var (
	ErrNilEndpoint   = errors.New("link endpoint is nil")
	ErrSelfLink      = errors.New("link endpoints must be distinct")
	ErrAlreadyLinked = errors.New("endpoints already linked")
)

// mailbox is one endpoint's half of a link: the endpoint's identity, a
// back-reference to it, and the messages in flight toward it. The
// back-reference is a relation, not ownership — the endpoint may be closed
// independently, and the mailbox then drains to nowhere.
type mailbox struct {
	id    types.NodeID
	node  *Node
	queue []Envelope
}

// alive reports whether the endpoint can still receive.
func (m *mailbox) alive() bool {
	return m.node != nil && !m.node.closed
}

// Link is a bidirectional channel between exactly two nodes, FIFO in each
// direction except that a message with a smaller remaining delay overtakes
// earlier sends. The handle is owned by its creator; closing it severs both
// directions.
type Link struct {
	first, second mailbox
	closed        bool
}

// Connect links two nodes. It fails if either is nil, they are the same
// node, or a link between them already exists. On success the link is
// registered symmetrically in both nodes' link tables.
func Connect(a, b *Node) (*Link, error) {
	if a == nil || b == nil {
		return nil, ErrNilEndpoint
	}
	if a == b || a.id == b.id {
		return nil, ErrSelfLink
	}
	if a.HasLink(b.id) || b.HasLink(a.id) {
		return nil, ErrAlreadyLinked
	}
	l := &Link{
		first:  mailbox{id: a.id, node: a},
		second: mailbox{id: b.id, node: b},
	}
	a.attach(b.id, l)
	b.attach(a.id, l)
	return l, nil
}

// Close drops the link: both endpoints lose their table entry for the peer
// and all in-flight messages are discarded. Endpoints that are already gone
// are tolerated, and closing twice is safe.
func (l *Link) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.first.node != nil {
		l.first.node.detach(l.second.id)
	}
	if l.second.node != nil {
		l.second.node.detach(l.first.id)
	}
	l.first.queue = nil
	l.second.queue = nil
}

// Send places the envelope at the tail of the mailbox facing dst. It returns
// false — dropping the message silently — when the link is closed or the
// destination endpoint has been destroyed. dst must be one of the link's two
// endpoints.
func (l *Link) Send(dst types.NodeID, env Envelope) bool {
	if l.closed {
		return false
	}
	m := l.mailboxFor(dst)
	if !m.alive() {
		return false
	}
	m.queue = append(m.queue, env)
	return true
}

// Tick advances both mailboxes one tick, first endpoint's first. Messages
// with remaining latency are counted down in place; due messages are moved
// to the endpoint's inbox tagged with the sender's identity. If an endpoint
// died mid-flight, its whole queue is dropped.
func (l *Link) Tick() {
	l.deliver(l.second.id, &l.first)
	l.deliver(l.first.id, &l.second)
}

// deliver drains due messages from one mailbox into its endpoint.
func (l *Link) deliver(from types.NodeID, m *mailbox) {
	if len(m.queue) == 0 {
		return
	}
	if !m.alive() {
		m.queue = nil
		return
	}
	kept := m.queue[:0]
	for _, env := range m.queue {
		if env.Delay > 0 {
			env.Delay--
			kept = append(kept, env)
			continue
		}
		m.node.put(from, env.Msg)
	}
	// Zero the tail so delivered envelopes are not retained by the backing
	// array.
	for i := len(kept); i < len(m.queue); i++ {
		m.queue[i] = Envelope{}
	}
	m.queue = kept
}

// mailboxFor returns the mailbox whose endpoint is id.
func (l *Link) mailboxFor(id types.NodeID) *mailbox {
	switch id {
	case l.first.id:
		return &l.first
	case l.second.id:
		return &l.second
	default:
		panic(fmt.Sprintf("simnet: node %v is not an endpoint of this link", id))
	}
}

// queued reports the number of in-flight messages toward id, for tests.
func (l *Link) queued(id types.NodeID) int {
	return len(l.mailboxFor(id).queue)
}
