package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// SignBytes returns the canonical encoding of a message for hashing and
// signing. The encoding is deterministic: a leading kind byte, then the
// payload fields in declaration order, fixed-width big-endian. Signature
// fields are excluded so that the canonical form of a message is the same
// before and after signing.
func SignBytes(m Message) []byte {
	var b bytes.Buffer
	b.WriteByte(byte(m.Kind()))
	switch msg := m.(type) {
	case Write:
		putInt(&b, msg.Value)
	case Read:
		putInt(&b, msg.Index)
	case WriteAck:
		putBool(&b, msg.Success)
		putInt(&b, msg.Index)
	case ReadAck:
		putBool(&b, msg.Success)
		putInt(&b, msg.Value)
	case Response:
		b.Write(SignBytes(msg.Resp))
	case PrePrepare:
		putProposal(&b, msg.Proposal)
	case Prepare:
		putProposal(&b, msg.Proposal)
	case Commit:
		putProposal(&b, msg.Proposal)
	default:
		panic(fmt.Sprintf("types: sign bytes for unknown message %T", m))
	}
	return b.Bytes()
}

// putProposal encodes a proposal's request, client, and slot. The primary's
// signature over the request is excluded like every other signature field.
func putProposal(b *bytes.Buffer, p Proposal) {
	b.Write(SignBytes(p.Req))
	putUint64(b, uint64(p.Client))
	putUint32(b, p.View)
	putUint32(b, p.ReqID)
}

func putInt(b *bytes.Buffer, v int) {
	putUint64(b, uint64(int64(v)))
}

func putBool(b *bytes.Buffer, v bool) {
	if v {
		b.WriteByte(1)
	} else {
		b.WriteByte(0)
	}
}

func putUint32(b *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Write(buf[:])
}

func putUint64(b *bytes.Buffer, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b.Write(buf[:])
}
