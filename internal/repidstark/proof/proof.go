// Package proof defines the StarkProof wire record and its
// deterministic binary encoding. The layout is bincode-compatible:
// little-endian throughout, fields in declaration order, collections
// length-prefixed with an 8-byte little-endian count, so that two
// conforming implementations given the same inputs produce
// byte-identical proofs.
package proof

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/merkle"
)

// FriProof is the FRI-style folding commitment: one digest per halving
// round, a short final "polynomial" (here, a constant vector, see the
// prover's buildFriProof doc comment), and the proof-of-work nonce.
type FriProof struct {
	Commitments []merkle.Digest
	FinalPoly   []field.Element
	PowNonce    uint64
}

// QueryResponse is a single verifier-selected LDE position, its
// first-column value, and the Merkle authentication path proving that
// value belongs to the committed LDE.
type QueryResponse struct {
	Position uint64
	Value    field.Element
	AuthPath []merkle.Digest
}

// StarkProof is the complete record produced by a prove call and
// consumed by Verify.
type StarkProof struct {
	TraceRoot    merkle.Digest
	LDERoot      merkle.Digest
	FriProof     FriProof
	Queries      []QueryResponse
	PublicInputs []field.Element
}

func writeLenPrefix(buf *bytes.Buffer, n int) {
	var lenBytes [8]byte
	binary.LittleEndian.PutUint64(lenBytes[:], uint64(n))
	buf.Write(lenBytes[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeDigest(buf *bytes.Buffer, d merkle.Digest) {
	buf.Write(d[:])
}

func writeElement(buf *bytes.Buffer, e field.Element) {
	b := e.Bytes()
	buf.Write(b[:])
}

// Encode serializes p into its bincode-compatible byte layout.
func (p StarkProof) Encode() []byte {
	var buf bytes.Buffer

	writeDigest(&buf, p.TraceRoot)
	writeDigest(&buf, p.LDERoot)

	writeLenPrefix(&buf, len(p.FriProof.Commitments))
	for _, c := range p.FriProof.Commitments {
		writeDigest(&buf, c)
	}
	writeLenPrefix(&buf, len(p.FriProof.FinalPoly))
	for _, v := range p.FriProof.FinalPoly {
		writeElement(&buf, v)
	}
	writeU64(&buf, p.FriProof.PowNonce)

	writeLenPrefix(&buf, len(p.Queries))
	for _, q := range p.Queries {
		writeU64(&buf, q.Position)
		writeElement(&buf, q.Value)
		writeLenPrefix(&buf, len(q.AuthPath))
		for _, d := range q.AuthPath {
			writeDigest(&buf, d)
		}
	}

	writeLenPrefix(&buf, len(p.PublicInputs))
	for _, v := range p.PublicInputs {
		writeElement(&buf, v)
	}

	return buf.Bytes()
}

type decoder struct {
	r *bytes.Reader
}

func (d *decoder) readDigest() (merkle.Digest, error) {
	var out merkle.Digest
	n, err := d.r.Read(out[:])
	if err != nil || n != merkle.DigestSize {
		return out, fmt.Errorf("read digest: %w", err)
	}
	return out, nil
}

func (d *decoder) readU64() (uint64, error) {
	var b [8]byte
	n, err := d.r.Read(b[:])
	if err != nil || n != 8 {
		return 0, fmt.Errorf("read u64: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (d *decoder) readElement() (field.Element, error) {
	v, err := d.readU64()
	if err != nil {
		return field.Zero, err
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return field.FromBytes(b), nil
}

func (d *decoder) readLen() (int, error) {
	n, err := d.readU64()
	if err != nil {
		return 0, err
	}
	const maxReasonableLen = 1 << 32
	if n > maxReasonableLen {
		return 0, fmt.Errorf("implausible length prefix %d", n)
	}
	// Every element is at least one byte, so a count larger than the
	// remaining input cannot be satisfied; reject it before allocating.
	if n > uint64(d.r.Len()) {
		return 0, fmt.Errorf("length prefix %d exceeds remaining %d bytes", n, d.r.Len())
	}
	return int(n), nil
}

// Decode parses the bincode-compatible byte layout produced by Encode.
// It never panics on malformed input; any structural problem is
// surfaced as an error.
func Decode(data []byte) (StarkProof, error) {
	d := &decoder{r: bytes.NewReader(data)}
	var p StarkProof
	var err error

	if p.TraceRoot, err = d.readDigest(); err != nil {
		return StarkProof{}, fmt.Errorf("decode trace_root: %w", err)
	}
	if p.LDERoot, err = d.readDigest(); err != nil {
		return StarkProof{}, fmt.Errorf("decode lde_root: %w", err)
	}

	commitCount, err := d.readLen()
	if err != nil {
		return StarkProof{}, fmt.Errorf("decode fri commitments length: %w", err)
	}
	p.FriProof.Commitments = make([]merkle.Digest, commitCount)
	for i := range p.FriProof.Commitments {
		if p.FriProof.Commitments[i], err = d.readDigest(); err != nil {
			return StarkProof{}, fmt.Errorf("decode fri commitment %d: %w", i, err)
		}
	}

	finalPolyCount, err := d.readLen()
	if err != nil {
		return StarkProof{}, fmt.Errorf("decode final_poly length: %w", err)
	}
	p.FriProof.FinalPoly = make([]field.Element, finalPolyCount)
	for i := range p.FriProof.FinalPoly {
		if p.FriProof.FinalPoly[i], err = d.readElement(); err != nil {
			return StarkProof{}, fmt.Errorf("decode final_poly[%d]: %w", i, err)
		}
	}

	if p.FriProof.PowNonce, err = d.readU64(); err != nil {
		return StarkProof{}, fmt.Errorf("decode pow_nonce: %w", err)
	}

	queryCount, err := d.readLen()
	if err != nil {
		return StarkProof{}, fmt.Errorf("decode queries length: %w", err)
	}
	p.Queries = make([]QueryResponse, queryCount)
	for i := range p.Queries {
		q := &p.Queries[i]
		if q.Position, err = d.readU64(); err != nil {
			return StarkProof{}, fmt.Errorf("decode query %d position: %w", i, err)
		}
		if q.Value, err = d.readElement(); err != nil {
			return StarkProof{}, fmt.Errorf("decode query %d value: %w", i, err)
		}
		pathLen, err := d.readLen()
		if err != nil {
			return StarkProof{}, fmt.Errorf("decode query %d auth_path length: %w", i, err)
		}
		q.AuthPath = make([]merkle.Digest, pathLen)
		for j := range q.AuthPath {
			if q.AuthPath[j], err = d.readDigest(); err != nil {
				return StarkProof{}, fmt.Errorf("decode query %d auth_path[%d]: %w", i, j, err)
			}
		}
	}

	publicCount, err := d.readLen()
	if err != nil {
		return StarkProof{}, fmt.Errorf("decode public_inputs length: %w", err)
	}
	p.PublicInputs = make([]field.Element, publicCount)
	for i := range p.PublicInputs {
		if p.PublicInputs[i], err = d.readElement(); err != nil {
			return StarkProof{}, fmt.Errorf("decode public_inputs[%d]: %w", i, err)
		}
	}

	return p, nil
}
