// Package prover builds execution traces for the two RepID statement
// families and assembles the full StarkProof: trace/LDE commitments, a
// FRI-style folding commitment, proof-of-work grinding, and query
// openings at positions drawn from the prover's seeded RNG.
package prover

import (
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/air"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/merkle"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/proof"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/scoring"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/trace"
	"github.com/zeebo/blake3"
)

// powIterationBudget bounds the proof-of-work grinder. Exceeding it
// without finding a qualifying nonce is a fatal error, not an infinite
// loop.
const powIterationBudget = 1_000_000

// deterministicSeed is the fixed 32-byte ChaCha20 seed the prover uses
// to sample query positions. Every byte is 0x2A: a test-grade
// deterministic RNG seed; production deployments should reseed from a
// per-proof Fiat-Shamir transcript instead.
var deterministicSeed = [32]byte{
	0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A,
	0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A,
	0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A,
	0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A, 0x2A,
}

// Params configures the number of queries and LDE blowup factor used
// across every proof a Prover produces, fixed for the life of the
// Prover by its SecurityLevel.
type Params struct {
	NumQueries    int
	BlowupFactor  int
	PoWDifficulty int // number of required leading zero bytes in the PoW digest
}

// Option customizes a Prover beyond its Params defaults.
type Option func(*Prover)

// WithPoWDifficulty overrides the number of required leading zero
// bytes in the proof-of-work digest. The default for every security
// level is 2, a fixed 16-bit difficulty regardless of security level;
// this knob exists so a caller can raise it without changing the
// worked end-to-end scenarios that assume the default.
func WithPoWDifficulty(zeroBytes int) Option {
	return func(p *Prover) {
		p.params.PoWDifficulty = zeroBytes
	}
}

// Prover generates StarkProof values for a fixed security-level
// configuration. It owns a ChaCha20 RNG exclusively, so a Prover value
// must not be shared across goroutines without external
// synchronization; each concurrent proving task should construct its
// own Prover.
type Prover struct {
	params Params
	rng    *chacha20.Cipher
}

// New builds a Prover for the given security parameters. Each Prover
// owns its own deterministic RNG, seeded with the same fixed seed, so
// two fresh Provers sample the same query positions.
func New(params Params, opts ...Option) (*Prover, error) {
	if params.PoWDifficulty == 0 {
		params.PoWDifficulty = 2
	}
	rng, err := chacha20.NewUnauthenticatedCipher(deterministicSeed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("prover: failed to seed query RNG: %w", err)
	}
	p := &Prover{params: params, rng: rng}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ThresholdWitness is the private witness input to a threshold proof:
// per-category raw scores plus the timestamp the statement is proved
// against. Open question #4 from the design notes (wall-clock in the
// trace makes proofs non-deterministic) is resolved here by accepting
// timestamp as an explicit parameter rather than sampling it from the
// wall clock.
type ThresholdWitness struct {
	Categories []scoring.ScoredCategory
	Threshold  uint32
	TimeWindow uint64
	Timestamp  uint64
	Decay      *scoring.DecayParameters
}

// ProveThreshold builds the threshold statement's trace, commits it,
// and assembles a complete StarkProof.
func (p *Prover) ProveThreshold(w ThresholdWitness) (proof.StarkProof, error) {
	scorer := scoring.New()
	if w.Decay != nil {
		scorer = scorer.WithDecay(*w.Decay)
	}
	result := scorer.CalculateScore(w.Categories, w.Timestamp, w.TimeWindow)

	repidAir := air.NewRepIDAir(len(w.Categories), w.Threshold, w.TimeWindow)
	tr := trace.New(repidAir.Width(), repidAir.Height())

	meetsThreshold := field.Zero
	if result.FinalScore >= w.Threshold {
		meetsThreshold = field.One
	}

	for row := 0; row < repidAir.Height(); row++ {
		tr.Set(row, air.ColThreshold, repidAir.Threshold)
		tr.Set(row, air.ColTimeWindow, repidAir.TimeWindow)
		tr.Set(row, air.ColTimestamp, field.FromUint64(w.Timestamp))
		for i, sc := range w.Categories {
			tr.Set(row, air.ColScoresFrom+i, field.FromUint32(sc.Score))
		}
		tr.Set(row, repidAir.ColFinalScore(), field.FromUint32(result.FinalScore))
		tr.Set(row, repidAir.ColMeetsThreshold(), meetsThreshold)
		tr.Set(row, repidAir.ColValidity(), field.One)
	}

	publicInputs := []field.Element{
		field.FromUint32(w.Threshold),
		field.FromUint64(w.TimeWindow),
	}

	return p.assembleProof(tr, publicInputs)
}

// BiometricWitness is the private witness input to a 4FA proof.
type BiometricWitness struct {
	Challenge      [32]byte
	BiometricHash  [32]byte
	FactorVerified [4]bool
}

// ProveBiometric builds the biometric 4FA statement's trace, commits
// it, and assembles a complete StarkProof.
func (p *Prover) ProveBiometric(w BiometricWitness) (proof.StarkProof, error) {
	bioAir := air.NewBiometricAir(w.Challenge)
	tr := trace.New(bioAir.Width(), bioAir.Height())

	var hashBytes [8]byte
	copy(hashBytes[:], w.BiometricHash[:8])
	hashField := field.FromBytes(hashBytes)

	allVerified := field.One
	factorFields := make([]field.Element, 4)
	for i, verified := range w.FactorVerified {
		v := field.Zero
		if verified {
			v = field.One
		}
		factorFields[i] = v
		allVerified = allVerified.Mul(v)
	}

	for row := 0; row < bioAir.Height(); row++ {
		tr.Set(row, air.ColChallenge, bioAir.Challenge)
		tr.Set(row, air.ColBiometricHash, hashField)
		for i, v := range factorFields {
			tr.Set(row, air.ColFactorsFrom+i, v)
		}
		tr.Set(row, air.ColAllVerified, allVerified)
		tr.Set(row, air.ColBiometricValid, field.One)
	}

	var challengeBytes [8]byte
	copy(challengeBytes[:], w.Challenge[:8])
	publicInputs := []field.Element{field.FromBytes(challengeBytes)}

	return p.assembleProof(tr, publicInputs)
}

// assembleProof runs the shared tail of both proving paths: LDE,
// commitments, FRI folding, PoW grinding, and query sampling.
func (p *Prover) assembleProof(tr *trace.Trace, publicInputs []field.Element) (proof.StarkProof, error) {
	traceRoot := merkle.CommitTrace(tr)

	lde := trace.ComputeLDE(tr, p.params.BlowupFactor)
	ldeRoot := merkle.CommitTrace(lde)

	friProof, err := p.buildFriProof(lde.Height)
	if err != nil {
		return proof.StarkProof{}, err
	}

	queries, err := p.sampleQueries(lde)
	if err != nil {
		return proof.StarkProof{}, err
	}

	return proof.StarkProof{
		TraceRoot:    traceRoot,
		LDERoot:      ldeRoot,
		FriProof:     friProof,
		Queries:      queries,
		PublicInputs: publicInputs,
	}, nil
}

// buildFriProof folds the working size in half, committing to each
// round's size, until it drops to 16 or below, then grinds a
// proof-of-work nonce. The PoW digest covers only the fixed prefix and
// the nonce, not the commitments.
//
// The "commitment" at each round is a hash of the round's working size
// rather than of round polynomial evaluations, and final_poly is a
// fixed constant vector rather than an interpolated low-degree
// polynomial. Both are deliberate stand-ins for byte compatibility (see
// the trace package's ComputeLDE doc comment); this is not a
// cryptographically meaningful FRI fold.
func (p *Prover) buildFriProof(ldeHeight int) (proof.FriProof, error) {
	var commitments []merkle.Digest
	s := ldeHeight
	for s > 16 {
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(s >> (8 * i))
		}
		h := blake3.New()
		h.Write(buf[:])
		var digest merkle.Digest
		copy(digest[:], h.Sum(nil))
		commitments = append(commitments, digest)
		s /= 2
	}

	finalLen := s
	if finalLen > 8 {
		finalLen = 8
	}
	finalPoly := make([]field.Element, finalLen)
	for i := range finalPoly {
		finalPoly[i] = field.One
	}

	nonce, err := grindPoW(p.params.PoWDifficulty)
	if err != nil {
		return proof.FriProof{}, err
	}

	return proof.FriProof{
		Commitments: commitments,
		FinalPoly:   finalPoly,
		PowNonce:    nonce,
	}, nil
}

// grindPoW searches for the smallest nonce such that the leading
// zeroBytes bytes of blake3("RepID_PoW" || nonce_le) are all zero,
// giving up after powIterationBudget attempts.
func grindPoW(zeroBytes int) (uint64, error) {
	for nonce := uint64(0); nonce < powIterationBudget; nonce++ {
		if powDigestHasLeadingZeros(nonce, zeroBytes) {
			return nonce, nil
		}
	}
	return 0, fmt.Errorf("prover: PoW timeout after %d iterations", powIterationBudget)
}

// powDigestHasLeadingZeros reports whether blake3("RepID_PoW" ||
// nonce_le) starts with zeroBytes zero bytes.
func powDigestHasLeadingZeros(nonce uint64, zeroBytes int) bool {
	h := blake3.New()
	h.Write([]byte("RepID_PoW"))
	var nonceBytes [8]byte
	for i := 0; i < 8; i++ {
		nonceBytes[i] = byte(nonce >> (8 * i))
	}
	h.Write(nonceBytes[:])
	digest := h.Sum(nil)

	if zeroBytes > len(digest) {
		zeroBytes = len(digest)
	}
	for i := 0; i < zeroBytes; i++ {
		if digest[i] != 0 {
			return false
		}
	}
	return true
}

// sampleQueries draws p.params.NumQueries positions from the prover's
// deterministic RNG and opens each against a Merkle tree over the
// LDE's first column.
func (p *Prover) sampleQueries(lde *trace.Trace) ([]proof.QueryResponse, error) {
	tree := merkle.BuildFirstColumn(lde)

	queries := make([]proof.QueryResponse, p.params.NumQueries)
	for i := range queries {
		position, err := p.nextPosition(lde.Height)
		if err != nil {
			return nil, err
		}
		queries[i] = proof.QueryResponse{
			Position: uint64(position),
			Value:    lde.Get(position, 0),
			AuthPath: tree.AuthPath(position),
		}
	}
	return queries, nil
}

// nextPosition draws a uniformly-distributed position in [0, height)
// from the prover's ChaCha20 keystream.
func (p *Prover) nextPosition(height int) (int, error) {
	if height <= 0 {
		return 0, fmt.Errorf("prover: cannot sample a query position from a zero-height LDE")
	}
	var buf [8]byte
	p.rng.XORKeyStream(buf[:], buf[:])
	v := uint64(0)
	for i := 0; i < 8; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}
	return int(v % uint64(height)), nil
}
