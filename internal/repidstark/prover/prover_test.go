package prover

import (
	"testing"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/scoring"
)

func testParams() Params {
	return Params{NumQueries: 8, BlowupFactor: 4}
}

func TestProveThresholdMeetsThreshold(t *testing.T) {
	p, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error constructing prover: %v", err)
	}

	result, err := p.ProveThreshold(ThresholdWitness{
		Categories: []scoring.ScoredCategory{
			{Category: scoring.Technical, Score: 75},
			{Category: scoring.Governance, Score: 50},
			{Category: scoring.Community, Score: 25},
		},
		Threshold:  100,
		TimeWindow: 86400,
		Timestamp:  0,
	})
	if err != nil {
		t.Fatalf("unexpected error proving threshold: %v", err)
	}

	if len(result.PublicInputs) != 2 {
		t.Fatalf("expected 2 public inputs, got %d", len(result.PublicInputs))
	}
	if result.PublicInputs[0] != field.FromUint32(100) {
		t.Fatalf("expected public_inputs[0] == threshold, got %v", result.PublicInputs[0])
	}
	if result.PublicInputs[1] != field.FromUint64(86400) {
		t.Fatalf("expected public_inputs[1] == time_window, got %v", result.PublicInputs[1])
	}
	if len(result.Queries) != 8 {
		t.Fatalf("expected 8 queries, got %d", len(result.Queries))
	}
	if len(result.FriProof.Commitments) == 0 {
		t.Fatal("expected at least one FRI commitment")
	}
}

func TestProveThresholdDeterministicQueries(t *testing.T) {
	witness := ThresholdWitness{
		Categories: []scoring.ScoredCategory{{Category: scoring.Technical, Score: 75}},
		Threshold:  10,
		TimeWindow: 1,
		Timestamp:  0,
	}

	p1, _ := New(testParams())
	a, err := p1.ProveThreshold(witness)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p2, _ := New(testParams())
	b, err := p2.ProveThreshold(witness)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(a.Encode()) != string(b.Encode()) {
		t.Fatal("expected two freshly-seeded provers to produce byte-identical proofs for identical witnesses")
	}
}

func TestProveBiometricAllFactorsVerified(t *testing.T) {
	p, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var challenge, bioHash [32]byte
	challenge[0] = 1
	bioHash[0] = 2

	result, err := p.ProveBiometric(BiometricWitness{
		Challenge:      challenge,
		BiometricHash:  bioHash,
		FactorVerified: [4]bool{true, true, true, true},
	})
	if err != nil {
		t.Fatalf("unexpected error proving biometric: %v", err)
	}

	if len(result.PublicInputs) != 1 {
		t.Fatalf("expected 1 public input, got %d", len(result.PublicInputs))
	}
	if result.PublicInputs[0] != field.FromUint64(1) {
		t.Fatalf("expected public_inputs[0] to equal challenge's first 8 LE bytes, got %v", result.PublicInputs[0])
	}
}

func TestProveBiometricOneFactorFails(t *testing.T) {
	p, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var challenge, bioHash [32]byte
	result, err := p.ProveBiometric(BiometricWitness{
		Challenge:      challenge,
		BiometricHash:  bioHash,
		FactorVerified: [4]bool{true, true, false, true},
	})
	if err != nil {
		t.Fatalf("unexpected error: still expected a proof when a factor fails: %v", err)
	}
	if len(result.Queries) != 8 {
		t.Fatalf("expected a full query set even when the statement is false, got %d", len(result.Queries))
	}
}

func TestPoWGrinderFindsNonceWithDefaultDifficulty(t *testing.T) {
	nonce, err := grindPoW(2)
	if err != nil {
		t.Fatalf("unexpected PoW grind error: %v", err)
	}
	if !powDigestHasLeadingZeros(nonce, 2) {
		t.Fatal("expected the found nonce to satisfy the 2-zero-byte difficulty")
	}
}

func TestNewDefaultsPoWDifficultyToTwo(t *testing.T) {
	p, err := New(testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.params.PoWDifficulty != 2 {
		t.Fatalf("expected default PoW difficulty of 2, got %d", p.params.PoWDifficulty)
	}
}

func TestWithPoWDifficultyOverride(t *testing.T) {
	p, err := New(testParams(), WithPoWDifficulty(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.params.PoWDifficulty != 1 {
		t.Fatalf("expected overridden PoW difficulty of 1, got %d", p.params.PoWDifficulty)
	}
}
