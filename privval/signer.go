package privval

import (
	"crypto/ed25519"
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/blockberries/simberry/types"
)

// Signer signs digests on behalf of one node identity.
type Signer struct {
	id   types.NodeID
	priv ed25519.PrivateKey
}

// NewSigner derives the signer for a node identity.
func NewSigner(id types.NodeID) *Signer {
	return &Signer{
		id:   id,
		priv: ed25519.NewKeyFromSeed(seedFor(id)),
	}
}

// ID returns the identity this signer signs as.
func (s *Signer) ID() types.NodeID {
	return s.id
}

// Sign signs a digest. Ed25519 is deterministic, so the same digest always
// yields the same signature.
func (s *Signer) Sign(d types.Digest) types.Signature {
	return types.Signature(ed25519.Sign(s.priv, d[:]))
}

// SignMessage digests a message and signs it.
func (s *Signer) SignMessage(m types.Message) types.Signature {
	return s.Sign(types.DigestOf(m))
}

// PublicKeyOf derives the public key for a node identity. Anyone holding an
// identifier can recover the matching verification key.
func PublicKeyOf(id types.NodeID) ed25519.PublicKey {
	priv := ed25519.NewKeyFromSeed(seedFor(id))
	return priv.Public().(ed25519.PublicKey)
}

// Verify reports whether sig is signer's signature over msg. It recomputes
// the message digest and checks the signature against the key derived from
// the claimed signer identity; a forged payload, a wrong signer, or a
// malformed signature all fail.
func Verify(msg types.Message, sig types.Signature, signer types.NodeID) bool {
	if len(sig) != ed25519.SignatureSize || signer == types.NoNode {
		return false
	}
	d := types.DigestOf(msg)
	return ed25519.Verify(PublicKeyOf(signer), d[:], sig)
}

// seedFor hashes an identity into an Ed25519 seed.
func seedFor(id types.NodeID) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(id))
	seed := make([]byte, ed25519.SeedSize)
	sha3.ShakeSum256(seed, raw[:])
	return seed
}
