// Package engine implements the three-phase agreement protocol that
// replicates client operations across the cluster: pre-prepare, prepare,
// commit, on a fixed primary in view 0.
//
// # State machine
//
// [State] is the per-node protocol automaton. It tracks one active
// (view, request id) slot and a phase in Init → PrePrepare → Prepare →
// Prepared → Commit → Committed, counting approvals under the classical
// quorum thresholds: a replica needs 2f prepares beyond the primary's
// implicit one to become prepared, and 2f+1 commits including its own to
// commit. After Committed the only legal move is a new pre-prepare for the
// next request id in the same view.
//
// # Replica
//
// [Replica] composes a fabric node with a State, an identity-keyed signer,
// and an application hook. The primary turns client operations into signed
// pre-prepares; replicas verify the primary's signature, echo the payload
// through the prepare and commit phases unchanged, and on commit apply the
// operation and answer the client directly. Every replica that commits
// answers, so the client hears from each live node per request.
//
// Messages that fail signature verification, arrive out of phase, or name a
// stale (view, request id) slot are dropped silently; that is the protocol's
// whole defense against byzantine senders, and its whole error handling.
// There is no view change: if the primary dies, the cluster stalls by
// design.
package engine
