package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDigestDeterministic verifies that identical kind and payload always
// hash to the same digest.
func TestDigestDeterministic(t *testing.T) {
	a := DigestOf(Write{Value: 42})
	b := DigestOf(Write{Value: 42})
	assert.Equal(t, a, b)
}

// TestDigestDistinguishesPayloads verifies that distinct payloads of the
// same kind produce distinct digests.
func TestDigestDistinguishesPayloads(t *testing.T) {
	assert.NotEqual(t, DigestOf(Write{Value: 1}), DigestOf(Write{Value: 2}))
	assert.NotEqual(t, DigestOf(Read{Index: 0}), DigestOf(Read{Index: 1}))
}

// TestDigestDistinguishesKinds verifies that the kind byte separates
// messages whose payloads encode identically.
func TestDigestDistinguishesKinds(t *testing.T) {
	assert.NotEqual(t, DigestOf(Write{Value: 7}), DigestOf(Read{Index: 7}))
	assert.NotEqual(t, DigestOf(WriteAck{Success: true, Index: 7}), DigestOf(ReadAck{Success: true, Value: 7}))
}

// TestSignBytesExcludeSignatures verifies that signing a proposal does not
// change its canonical form, which is what lets replicas forward the
// primary's signature verbatim between phases.
func TestSignBytesExcludeSignatures(t *testing.T) {
	unsigned := Proposal{Req: Write{Value: 5}, Client: 9, View: 0, ReqID: 1}
	signed := unsigned
	signed.Sig = make(Signature, SignatureSize)

	assert.Equal(t, SignBytes(PrePrepare{unsigned}), SignBytes(PrePrepare{signed}))
}

// TestSignBytesSharedAcrossPhases verifies that the three phase messages
// wrapping the same proposal have the same payload encoding but different
// kind tags, so their digests differ while the signed content matches.
func TestSignBytesSharedAcrossPhases(t *testing.T) {
	p := Proposal{Req: Write{Value: 5}, Client: 9, View: 0, ReqID: 1}

	pp := SignBytes(PrePrepare{p})
	pr := SignBytes(Prepare{p})
	cm := SignBytes(Commit{p})

	require.Equal(t, pp[1:], pr[1:])
	require.Equal(t, pr[1:], cm[1:])
	assert.NotEqual(t, pp[0], pr[0])
	assert.NotEqual(t, pr[0], cm[0])
}

// TestNewSignatureRejectsWrongSize verifies untrusted input validation.
func TestNewSignatureRejectsWrongSize(t *testing.T) {
	_, err := NewSignature(make([]byte, 12))
	assert.Error(t, err)

	sig, err := NewSignature(make([]byte, SignatureSize))
	require.NoError(t, err)
	assert.Len(t, sig, SignatureSize)
}

// TestKindStrings pins the log names of every variant.
func TestKindStrings(t *testing.T) {
	msgs := []Message{
		Write{}, Read{}, WriteAck{}, ReadAck{}, Response{},
		PrePrepare{}, Prepare{}, Commit{},
	}
	names := []string{
		"Write", "Read", "WriteAck", "ReadAck", "Response",
		"PrePrepare", "Prepare", "Commit",
	}
	for i, m := range msgs {
		assert.Equal(t, names[i], m.Kind().String())
	}
}
