package repid

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/proof"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/prover"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/scoring"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/verifier"
)

// SecurityLevel selects the number of FRI queries and the LDE blowup
// factor a System uses for every proof it produces.
type SecurityLevel int

const (
	SecurityFast SecurityLevel = iota
	SecurityStandard
	SecurityHigh
)

// params returns the (num_queries, blowup_factor) pair for a security
// level.
func (s SecurityLevel) params() (numQueries, blowup int) {
	switch s {
	case SecurityFast:
		return 40, 4
	case SecurityHigh:
		return 120, 16
	default:
		return 80, 8
	}
}

func (s SecurityLevel) String() string {
	switch s {
	case SecurityFast:
		return "Fast"
	case SecurityHigh:
		return "High"
	default:
		return "Standard"
	}
}

// ScoredCategory is the public mirror of scoring.ScoredCategory,
// re-exported so callers need not import the internal scoring package
// to build a threshold request's witness.
type ScoredCategory = scoring.ScoredCategory

// Category re-exports scoring.Category for the same reason.
type Category = scoring.Category

// Fixed categories, re-exported from the scoring package.
var (
	Governance = scoring.Governance
	Community  = scoring.Community
	Technical  = scoring.Technical
	FaithTech  = scoring.FaithTech
	DeFi       = scoring.DeFi
)

// CustomCategory builds a Custom(label) category.
func CustomCategory(label string) Category {
	return scoring.Custom(label)
}

// DecayParameters re-exports scoring.DecayParameters.
type DecayParameters = scoring.DecayParameters

// ThresholdVerificationRequest is the public statement of a threshold
// proof: which categories count toward the sum, the threshold they
// must meet, the time window decay is measured against, and optional
// decay configuration.
type ThresholdVerificationRequest struct {
	Categories  []Category
	Threshold   uint32
	TimeWindow  uint64
	DecayParams *DecayParameters
}

// ProofMetadata carries non-circuit bookkeeping about how a proof was
// produced.
type ProofMetadata struct {
	OperationType    string
	Timestamp        uint64
	WalletHash       string
	ProofSize        int
	GenerationTimeMs uint64
}

// RepIDProof bundles the serialized proof bytes with its public inputs
// and metadata. It is the value that crosses the System boundary in
// both directions.
type RepIDProof struct {
	ProofBytes   []byte
	PublicInputs []field.Element
	Metadata     ProofMetadata
}

// VerificationMetadata records which parameters a threshold proof was
// generated against, for a caller that wants to re-verify later
// without re-deriving them.
type VerificationMetadata struct {
	CategoriesVerified []Category
	ThresholdUsed      uint32
	TimeWindowApplied  uint64
	DecayApplied       bool
}

// ThresholdVerificationResult is returned by ProveThresholdVerification.
//
// MeetsThreshold is computed in the clear from the witness outside the
// proof itself: it is a convenience for callers, not a
// zero-knowledge-preserving claim. A caller that must not leak whether
// the threshold was met should discard this field and rely on Verify
// alone, which only attests that the statement's trace is
// well-formed, not its truth-value.
type ThresholdVerificationResult struct {
	MeetsThreshold bool
	Proof          RepIDProof
	Metadata       VerificationMetadata
}

// System is a Prover/Verifier pair fixed to one SecurityLevel.
type System struct {
	level  SecurityLevel
	params verifier.Params
}

// NewSystem builds a System for the given security level.
func NewSystem(level SecurityLevel) (*System, error) {
	numQueries, _ := level.params()
	return &System{
		level:  level,
		params: verifier.Params{NumQueries: numQueries, PoWDifficulty: 2},
	}, nil
}

func (s *System) newProver() (*prover.Prover, error) {
	numQueries, blowup := s.level.params()
	p, err := prover.New(prover.Params{NumQueries: numQueries, BlowupFactor: blowup, PoWDifficulty: 2})
	if err != nil {
		return nil, newError(ErrProofGeneration, "failed to initialize prover", err)
	}
	return p, nil
}

// ProveThresholdVerification proves that the sum of userScores over
// request.Categories satisfies request.Threshold, given timestamp as
// the explicit (not wall-clock-sampled) proof timestamp.
func (s *System) ProveThresholdVerification(
	request ThresholdVerificationRequest,
	userScores []ScoredCategory,
	walletAddress string,
	timestamp uint64,
) (ThresholdVerificationResult, error) {
	if len(request.Categories) == 0 {
		return ThresholdVerificationResult{}, newError(ErrInvalidInput, "threshold request must name at least one category", nil)
	}
	if request.Threshold == 0 || request.Threshold > 1000 {
		return ThresholdVerificationResult{}, newError(ErrInvalidInput, "threshold must be in [1, 1000]", nil)
	}
	if request.TimeWindow == 0 {
		return ThresholdVerificationResult{}, newError(ErrInvalidInput, "time_window must be positive", nil)
	}

	relevant := make([]ScoredCategory, 0, len(request.Categories))
	var totalScore uint64
	for _, cat := range request.Categories {
		for _, sc := range userScores {
			if sc.Category.Equal(cat) {
				relevant = append(relevant, sc)
				totalScore += uint64(sc.Score)
			}
		}
	}

	p, err := s.newProver()
	if err != nil {
		return ThresholdVerificationResult{}, err
	}

	starkProof, err := p.ProveThreshold(prover.ThresholdWitness{
		Categories: relevant,
		Threshold:  request.Threshold,
		TimeWindow: request.TimeWindow,
		Timestamp:  timestamp,
		Decay:      request.DecayParams,
	})
	if err != nil {
		return ThresholdVerificationResult{}, newError(ErrProofGeneration, "failed to generate threshold proof", err)
	}

	proofBytes := starkProof.Encode()

	return ThresholdVerificationResult{
		MeetsThreshold: totalScore >= uint64(request.Threshold),
		Proof: RepIDProof{
			ProofBytes:   proofBytes,
			PublicInputs: starkProof.PublicInputs,
			Metadata: ProofMetadata{
				OperationType: "threshold_verification",
				Timestamp:     timestamp,
				WalletHash:    walletHash(walletAddress),
				ProofSize:     len(proofBytes),
			},
		},
		Metadata: VerificationMetadata{
			CategoriesVerified: request.Categories,
			ThresholdUsed:      request.Threshold,
			TimeWindowApplied:  request.TimeWindow,
			DecayApplied:       request.DecayParams != nil,
		},
	}, nil
}

// ProveBiometric4FA proves that all four authentication factors
// verified against challenge, without revealing bioHash or the
// individual factor outcomes.
func (s *System) ProveBiometric4FA(
	challenge [32]byte,
	bioHash [32]byte,
	factors [4]bool,
	timestamp uint64,
) (RepIDProof, error) {
	p, err := s.newProver()
	if err != nil {
		return RepIDProof{}, err
	}

	starkProof, err := p.ProveBiometric(prover.BiometricWitness{
		Challenge:      challenge,
		BiometricHash:  bioHash,
		FactorVerified: factors,
	})
	if err != nil {
		return RepIDProof{}, newError(ErrProofGeneration, "failed to generate biometric proof", err)
	}

	proofBytes := starkProof.Encode()
	return RepIDProof{
		ProofBytes:   proofBytes,
		PublicInputs: starkProof.PublicInputs,
		Metadata: ProofMetadata{
			OperationType: "biometric_4fa",
			Timestamp:     timestamp,
			WalletHash:    "biometric_verification",
			ProofSize:     len(proofBytes),
		},
	}, nil
}

// Verify checks a proof's structure, proof-of-work, and public-input
// ranges. statement selects which statement-specific public-input
// checks apply; everything else the checks need is carried in the
// proof's own public inputs.
func (s *System) Verify(p RepIDProof, statement StatementType) (bool, error) {
	starkProof, err := proof.Decode(p.ProofBytes)
	if err != nil {
		return false, newError(ErrSerialization, "failed to decode proof bytes", err)
	}

	var kind verifier.StatementType
	switch statement {
	case StatementThreshold:
		kind = verifier.ThresholdVerification
	case StatementBiometric:
		kind = verifier.Biometric4FA
	default:
		return false, newError(ErrInvalidInput, "unknown statement type", nil)
	}

	return verifier.Verify(starkProof, kind, s.params), nil
}

// StatementType selects which statement-specific public-input checks
// Verify applies to a decoded proof.
type StatementType int

const (
	StatementThreshold StatementType = iota
	StatementBiometric
)

// SolidityVerificationData is the flattened, string-encoded view of a
// proof suitable for passing to an on-chain verifier contract.
type SolidityVerificationData struct {
	ProofHash    string
	PublicInputs []string
	ProofType    string
	Timestamp    uint64
	ProofSize    int
}

// ExtractSolidityVerificationData flattens a RepIDProof's metadata and
// public inputs into hex strings. ProofHash is an md5 digest, a
// stable non-cryptographic identifier only; it must not be relied on
// for collision resistance in any security-bearing context.
func ExtractSolidityVerificationData(p RepIDProof) SolidityVerificationData {
	inputs := make([]string, len(p.PublicInputs))
	for i, v := range p.PublicInputs {
		inputs[i] = fmt.Sprintf("0x%016x", uint64(v))
	}

	sum := md5.Sum(p.ProofBytes)
	return SolidityVerificationData{
		ProofHash:    "0x" + hex.EncodeToString(sum[:]),
		PublicInputs: inputs,
		ProofType:    p.Metadata.OperationType,
		Timestamp:    p.Metadata.Timestamp,
		ProofSize:    p.Metadata.ProofSize,
	}
}

// walletHash returns a stable non-cryptographic identifier for a
// wallet address, used only for proof metadata and never for
// anything security-bearing.
func walletHash(walletAddress string) string {
	sum := md5.Sum([]byte(walletAddress))
	return hex.EncodeToString(sum[:])
}
