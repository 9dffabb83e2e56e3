// Package privval provides deterministic, identity-keyed signing for
// simulated nodes.
//
// A node's Ed25519 key pair is derived from its NodeID alone: the seed is
// the SHAKE256 hash of the identifier. That makes the primitives pure
// functions of their inputs — the same node signs the same message the same
// way in every run — and it models the property the simulation needs from
// real asymmetric crypto: any holder of a node's identifier can verify
// messages signed by that node.
//
// This is simulation-grade key management. Deriving private keys from public
// identifiers is obviously not a deployment scheme; it stands in for a key
// registry so the protocol code above can exercise real signature
// verification, including rejection of tampered payloads and of signatures
// from the wrong signer.
package privval
