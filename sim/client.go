package sim

import (
	"fmt"

	"github.com/blockberries/simberry/privval"
	"github.com/blockberries/simberry/simnet"
	"github.com/blockberries/simberry/types"
)

// ReceivedResponse records one replica response observed by the client:
// which submitted action it answers, who sent it, the application's reply,
// and whether the sender's signature verified.
type ReceivedResponse struct {
	Action   int
	From     types.NodeID
	Resp     types.OpResponse
	Verified bool
}

// Client is the scripted request driver. It broadcasts each operation to
// every node it is linked to — only the primary acts on it — and counts the
// signed responses, one per live replica, verifying each against the
// sender's identity.
type Client struct {
	node    *simnet.Node
	latency int

	expected int
	actual   int
	action   int

	received  []ReceivedResponse
	overheard int
}

// NewClient creates a client on the given fabric endpoint. Submissions are
// stamped with the given delivery latency.
func NewClient(node *simnet.Node, latency int) *Client {
	return &Client{node: node, latency: latency, action: -1}
}

// Node returns the client's fabric endpoint.
func (c *Client) Node() *simnet.Node { return c.node }

// Action broadcasts the next scripted operation and arms the client to wait
// for the given number of answers.
func (c *Client) Action(req types.OpRequest, answers int) {
	c.action++
	c.actual = 0
	c.expected = answers
	logger.Infof("client sends %v, expecting %d answers", req.Kind(), answers)
	c.node.Broadcast(simnet.Envelope{Msg: req, Delay: c.latency})
}

// Ready reports whether the current action has been fully answered. A
// client with no action in flight is ready.
func (c *Client) Ready() bool {
	return c.actual == c.expected
}

// Received returns every response observed so far, in arrival order.
func (c *Client) Received() []ReceivedResponse {
	return c.received
}

// Overheard returns how many protocol phase messages the client has
// overheard. The client is interconnected with every node, so replica
// broadcasts reach it too; it ignores them beyond counting.
func (c *Client) Overheard() int {
	return c.overheard
}

// Tick drains the client's inbox: responses are verified and recorded,
// overheard phase traffic is counted, anything else is a wiring bug.
func (c *Client) Tick() {
	for _, d := range c.node.TakeInbox() {
		switch m := d.Msg.(type) {
		case types.Response:
			ok := privval.Verify(m.Resp, m.Sig, d.From)
			if ok {
				logger.Infof("client: %v -> %v :: verified", d.From, m.Resp.Kind())
			} else {
				logger.Warningf("client: %v -> %v :: malformed", d.From, m.Resp.Kind())
			}
			c.received = append(c.received, ReceivedResponse{
				Action:   c.action,
				From:     d.From,
				Resp:     m.Resp,
				Verified: ok,
			})
			c.actual++
		case types.PrePrepare, types.Prepare, types.Commit:
			c.overheard++
			logger.Debugf("client overheard %v from %v", m.Kind(), d.From)
		default:
			panic(fmt.Sprintf("sim: client received unexpected %v", d.Msg.Kind()))
		}
	}
}
