// Package merkle provides the trace/LDE commitment digest and the
// binary Merkle tree used to authenticate individual query positions
// against that digest. Hashing is Blake3 throughout.
package merkle

import (
	"github.com/zeebo/blake3"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/trace"
)

// DigestSize is the length in bytes of every commitment digest and
// Merkle authentication-path node.
const DigestSize = 32

// Digest is a 32-byte Blake3 output.
type Digest [DigestSize]byte

// CommitTrace commits to a trace (or LDE) by hashing the row-major
// concatenation of every cell's little-endian 8-byte encoding. The byte
// order is normative: rows outer, columns inner.
func CommitTrace(t *trace.Trace) Digest {
	h := blake3.New()
	for r := 0; r < t.Height; r++ {
		for c := 0; c < t.Width; c++ {
			b := t.Get(r, c).Bytes()
			h.Write(b[:])
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// leafDigest hashes the first-column projection of a single LDE row.
// This is the exact leaf rule a verifier must reproduce for query
// openings.
func leafDigest(value field.Element) Digest {
	h := blake3.New()
	b := value.Bytes()
	h.Write(b[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Tree is a binary Merkle tree built over the first-column projection
// of an LDE's rows, used to authenticate individual query positions.
type Tree struct {
	levels [][]Digest // levels[0] = leaves, levels[len-1] = {root}
}

// BuildFirstColumn builds a Merkle tree over lde.Height leaves, one
// per row, each the digest of that row's column-0 value.
func BuildFirstColumn(t *trace.Trace) *Tree {
	height := t.Height
	leaves := make([]Digest, height)
	for r := 0; r < height; r++ {
		leaves[r] = leafDigest(t.Get(r, 0))
	}
	return build(leaves)
}

func build(leaves []Digest) *Tree {
	levels := [][]Digest{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]Digest, (len(current)+1)/2)
		for i := range next {
			left := current[2*i]
			var right Digest
			if 2*i+1 < len(current) {
				right = current[2*i+1]
			} else {
				right = current[2*i] // odd tail: duplicate
			}
			next[i] = hashPair(left, right)
		}
		levels = append(levels, next)
		current = next
	}
	return &Tree{levels: levels}
}

func hashPair(left, right Digest) Digest {
	h := blake3.New()
	h.Write(left[:])
	h.Write(right[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Root returns the tree's root digest. A tree over a single leaf has
// that leaf's digest as its root.
func (mt *Tree) Root() Digest {
	top := mt.levels[len(mt.levels)-1]
	return top[0]
}

// AuthPath returns the authentication path for leaf index i: one
// sibling digest per level, bottom to top. Its length is
// log2(height), and zero when height <= 1.
func (mt *Tree) AuthPath(index int) []Digest {
	var path []Digest
	idx := index
	for level := 0; level < len(mt.levels)-1; level++ {
		siblings := mt.levels[level]
		var sibling Digest
		if idx%2 == 0 {
			if idx+1 < len(siblings) {
				sibling = siblings[idx+1]
			} else {
				sibling = siblings[idx]
			}
		} else {
			sibling = siblings[idx-1]
		}
		path = append(path, sibling)
		idx /= 2
	}
	return path
}

// VerifyAuthPath recomputes the root from a leaf value and its
// authentication path, reporting whether it matches root. index is the
// leaf's original position, used to determine left/right ordering at
// each level.
func VerifyAuthPath(root Digest, value field.Element, index int, path []Digest) bool {
	current := leafDigest(value)
	idx := index
	for _, sibling := range path {
		if idx%2 == 0 {
			current = hashPair(current, sibling)
		} else {
			current = hashPair(sibling, current)
		}
		idx /= 2
	}
	return current == root
}
