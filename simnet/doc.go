// Package simnet is the deterministic network fabric the protocol runs on:
// nodes, point-to-point links, and per-tick message delivery.
//
// # Model
//
// A [Node] owns an identity, an inbox, and a table of links keyed by peer
// identity. A [Link] is the edge between exactly two nodes. Each link holds
// two mailboxes, one per endpoint; a mailbox queues the messages in flight
// toward its endpoint. Links are owned by whoever creates them (normally the
// simulator) — nodes reference their links only through the peer table, and
// a link holds plain back-references to its endpoints, not ownership.
//
// # Time
//
// Nothing moves except on a tick. [Link.Tick] walks each mailbox in a fixed
// order: a message with remaining latency is counted down and left in place,
// a due message is moved to the destination's inbox tagged with the sender's
// identity. A message with a smaller remaining delay may therefore overtake
// an earlier send with a larger one; that per-message latency is the only
// reordering in the system. Within one mailbox, delivery is otherwise FIFO.
//
// # Failure
//
// Closing a node models destroying it. Sends toward a closed endpoint return
// false and the message is dropped silently — the only loss in the system —
// and a closed endpoint's queued messages are dropped wholesale on the next
// link tick. The surviving peer keeps its link-table entry until the link
// itself is closed; sends through it just fail cleanly. Closing a link twice
// and closing a link whose endpoints are already gone are both safe.
//
// Everything here is single-threaded by contract: the tick loop is the only
// caller, so there are no locks. A node drains its inbox with
// [Node.TakeInbox] before processing; messages delivered afterwards land in
// a fresh inbox for the next tick.
package simnet
