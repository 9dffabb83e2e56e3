// Package types defines the core data structures for the Simberry replicated
// log: node identities, the closed message set exchanged over the simulated
// network, and the digest/signature value types the protocol signs with.
//
// # Messages
//
// Every wire message is a value implementing [Message], tagged by [Kind].
// The set is closed: client operations (Write, Read), application replies
// (WriteAck, ReadAck), the replica's signed Response, and the three protocol
// phase messages (PrePrepare, Prepare, Commit).
//
// The phase messages share one [Proposal] payload. The primary signs the
// client's request once; replicas forward the proposal unchanged and only
// the outer kind changes as the request moves through the phases. Nothing is
// re-signed per hop.
//
// # Identities
//
// A [NodeID] is a stable opaque identifier, unique within a simulation run.
// It doubles as the keying material for signatures: holding an identifier is
// enough to verify a node's signed messages. See package privval.
//
// # Hashing and sign-bytes
//
// [SignBytes] produces a canonical deterministic encoding of a message with
// all signature fields excluded, and [DigestOf] hashes it with SHAKE256.
// Two messages with identical kind and payload always produce identical
// digests; distinct (kind, payload) pairs do not collide within a run.
//
// # Immutability
//
// Messages are plain values. They are copied on broadcast and never mutated
// after construction, so they can be forwarded between phases and delivered
// to inboxes without defensive copying.
package types
