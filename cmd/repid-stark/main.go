// Command repid-stark is a small demo driver for the RepID zk-STARK
// engine: it proves a threshold-verification statement and a
// biometric 4FA statement against hardcoded sample inputs, then
// verifies both, printing progress to stderr and the Solidity
// verification data to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/DealAppSeo/hyperdag-platform/pkg/repid"
)

func main() {
	logStderr("Creating RepID system at Standard security...")
	sys, err := repid.NewSystem(repid.SecurityStandard)
	if err != nil {
		fatal(fmt.Sprintf("failed to create system: %v", err))
	}

	logStderr("Proving threshold verification...")
	thresholdResult, err := sys.ProveThresholdVerification(
		repid.ThresholdVerificationRequest{
			Categories: []repid.Category{repid.Technical, repid.Governance},
			Threshold:  100,
			TimeWindow: 86_400,
		},
		[]repid.ScoredCategory{
			{Category: repid.Technical, Score: 75},
			{Category: repid.Governance, Score: 50},
			{Category: repid.Community, Score: 25},
		},
		"0xExampleWalletAddress",
		0,
	)
	if err != nil {
		fatal(fmt.Sprintf("threshold proof generation failed: %v", err))
	}
	logStderr(fmt.Sprintf("meets_threshold=%v proof_size=%d", thresholdResult.MeetsThreshold, thresholdResult.Proof.Metadata.ProofSize))

	ok, err := sys.Verify(thresholdResult.Proof, repid.StatementThreshold)
	if err != nil {
		fatal(fmt.Sprintf("threshold proof verification failed: %v", err))
	}
	logStderr(fmt.Sprintf("threshold proof verify=%v", ok))

	logStderr("Proving biometric 4FA...")
	var challenge, bioHash [32]byte
	challenge[0] = 1
	bioHash[0] = 2
	bioProof, err := sys.ProveBiometric4FA(challenge, bioHash, [4]bool{true, true, true, true}, 0)
	if err != nil {
		fatal(fmt.Sprintf("biometric proof generation failed: %v", err))
	}

	ok, err = sys.Verify(bioProof, repid.StatementBiometric)
	if err != nil {
		fatal(fmt.Sprintf("biometric proof verification failed: %v", err))
	}
	logStderr(fmt.Sprintf("biometric proof verify=%v", ok))

	data := repid.ExtractSolidityVerificationData(thresholdResult.Proof)
	fmt.Printf("proof_hash=%s proof_type=%s proof_size=%d public_inputs=%v\n",
		data.ProofHash, data.ProofType, data.ProofSize, data.PublicInputs)
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "repid-stark:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
