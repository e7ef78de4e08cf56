// Package verifier implements the RepID STARK engine's structural
// verification pass.
//
// This verifier does not re-derive Fiat-Shamir challenges, does not
// check query Merkle openings against trace_root/lde_root, and does
// not recompute FRI folds. It checks shape, proof-of-work, and
// public-input ranges only. A faithful re-implementation aiming for
// real soundness would add challenge re-derivation and opening
// verification; this engine's design notes record that gap rather
// than silently pretend it has been closed. Verify never panics on
// malformed input; every failure mode returns false.
package verifier

import (
	"github.com/zeebo/blake3"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/proof"
)

// StatementType selects which statement-specific public-input checks
// Verify applies.
type StatementType int

const (
	ThresholdVerification StatementType = iota
	Biometric4FA
)

// Params must match the NumQueries the corresponding Prover used.
type Params struct {
	NumQueries    int
	PoWDifficulty int
}

// Verify runs every structural, PoW, and public-input check against p
// for the given statement type, returning true only if all pass.
func Verify(p proof.StarkProof, statement StatementType, params Params) bool {
	if params.PoWDifficulty == 0 {
		params.PoWDifficulty = 2
	}

	if len(p.Queries) != params.NumQueries {
		return false
	}
	if len(p.FriProof.Commitments) == 0 && requiresFriRounds(p) {
		return false
	}

	if !checkProofOfWork(p.FriProof.PowNonce, params.PoWDifficulty) {
		return false
	}

	for _, input := range p.PublicInputs {
		if uint64(input) >= field.Modulus {
			return false
		}
	}

	switch statement {
	case ThresholdVerification:
		return checkThresholdPublicInputs(p)
	case Biometric4FA:
		return checkBiometricPublicInputs(p)
	default:
		return false
	}
}

// requiresFriRounds reports whether the proof's structure implies at
// least one FRI folding round should be present. Proofs over very
// small LDEs (height already <= 16) legitimately have zero rounds, so
// an empty Commitments slice is only a structural defect when the
// proof otherwise claims meaningful query depth: an authentication
// path longer than 4 means an LDE taller than 16 rows.
func requiresFriRounds(p proof.StarkProof) bool {
	return len(p.Queries) > 0 && len(p.Queries[0].AuthPath) > 4
}

// checkProofOfWork recomputes blake3("RepID_PoW" || nonce_le) and
// requires its leading zeroBytes bytes to be zero.
func checkProofOfWork(nonce uint64, zeroBytes int) bool {
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

// checkThresholdPublicInputs requires at least 2 public inputs, a
// threshold in [1, 1000], and a positive time_window.
func checkThresholdPublicInputs(p proof.StarkProof) bool {
	if len(p.PublicInputs) < 2 {
		return false
	}
	threshold := uint64(p.PublicInputs[0])
	timeWindow := uint64(p.PublicInputs[1])
	if threshold < 1 || threshold > 1000 {
		return false
	}
	if timeWindow == 0 {
		return false
	}
	return true
}

// checkBiometricPublicInputs requires a non-empty public_inputs slice
// and a positive challenge value.
func checkBiometricPublicInputs(p proof.StarkProof) bool {
	if len(p.PublicInputs) == 0 {
		return false
	}
	return uint64(p.PublicInputs[0]) > 0
}
