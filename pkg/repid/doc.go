// Package repid is the public facade for the RepID zk-STARK engine.
//
// A System pairs a prover and a verifier under one SecurityLevel and
// exposes two statement families as request/result structs, with no
// internal types leaking across the package boundary:
//
//   - threshold-with-decay reputation: "the sum of my category scores
//     in these categories meets this threshold."
//   - four-factor biometric authentication: "all four authentication
//     factors verified against this challenge."
//
// # Quick Start
//
// Proving and verifying a threshold statement:
//
//	sys, err := repid.NewSystem(repid.SecurityStandard)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := sys.ProveThresholdVerification(repid.ThresholdVerificationRequest{
//		Categories: []repid.Category{repid.Technical, repid.Governance},
//		Threshold:  100,
//		TimeWindow: 86_400,
//	}, []repid.ScoredCategory{{Category: repid.Technical, Score: 75}}, "0xWallet", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok, err := sys.Verify(result.Proof, repid.StatementThreshold)
//
// Every proof carries structural guarantees only: it attests that its
// trace is well-formed for the statement, not the statement's
// truth-value. Verify never panics on malformed input.
package repid
