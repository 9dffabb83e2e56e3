package types

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the size of a message digest in bytes.
const DigestSize = 32

// SignatureSize is the expected size of a signature in bytes (Ed25519).
const SignatureSize = 64

// Digest is a deterministic fingerprint of a message's kind and payload.
type Digest [DigestSize]byte

// Signature is a signer-keyed transform of a digest. Empty means unsigned.
type Signature []byte

// DigestOf computes the digest of a message: SHAKE256 over its canonical
// sign-bytes. Signature fields never contribute, so signing a message does
// not change its digest.
func DigestOf(m Message) Digest {
	var d Digest
	sha3.ShakeSum256(d[:], SignBytes(m))
	return d
}

// String returns the hex-encoded digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// NewSignature copies data into a Signature, rejecting wrong sizes. Use for
// untrusted input; crypto library output can be wrapped directly.
func NewSignature(data []byte) (Signature, error) {
	if len(data) != SignatureSize {
		return nil, fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(data))
	}
	copied := make([]byte, SignatureSize)
	copy(copied, data)
	return Signature(copied), nil
}

// SignatureEqual compares two signatures.
func SignatureEqual(a, b Signature) bool {
	return bytes.Equal(a, b)
}
