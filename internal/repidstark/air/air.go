// Package air defines the two statement-specific constraint systems
// the RepID STARK engine proves against: RepIDAir (threshold-with-decay
// reputation) and BiometricAir (four-factor authentication). Each type
// fixes a trace height and width and knows how to check that a given
// row of a trace satisfies its row-local constraints, the same checks
// an honest prover's trace builder must already satisfy by
// construction.
package air

import "github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"

// RepIDAir is the threshold statement: "the sum of the prover's
// category scores in the requested categories meets or exceeds
// threshold." Trace height is fixed at 8; width is 6+k for k scored
// categories.
type RepIDAir struct {
	NumCategories int
	Threshold     field.Element
	TimeWindow    field.Element
}

// NewRepIDAir builds a RepIDAir for numCategories scored categories.
func NewRepIDAir(numCategories int, threshold uint32, timeWindow uint64) RepIDAir {
	return RepIDAir{
		NumCategories: numCategories,
		Threshold:     field.FromUint32(threshold),
		TimeWindow:    field.FromUint64(timeWindow),
	}
}

// Height is the fixed trace height for the threshold statement.
func (RepIDAir) Height() int { return 8 }

// Width is 6 + NumCategories: threshold, time_window, current_timestamp,
// one column per category, final_score, meets_threshold, validity.
func (a RepIDAir) Width() int { return 6 + a.NumCategories }

// Column index helpers. Column layout, fixed positions first:
//
//	0              threshold (public)
//	1              time_window (public)
//	2              current_timestamp
//	3..3+k-1       per-category scores
//	width-3        final_score (post-decay)
//	width-2        meets_threshold in {0,1}
//	width-1        validity flag, always 1
const (
	ColThreshold  = 0
	ColTimeWindow = 1
	ColTimestamp  = 2
	ColScoresFrom = 3
)

// ColFinalScore is width-3.
func (a RepIDAir) ColFinalScore() int { return a.Width() - 3 }

// ColMeetsThreshold is width-2.
func (a RepIDAir) ColMeetsThreshold() int { return a.Width() - 2 }

// ColValidity is width-1.
func (a RepIDAir) ColValidity() int { return a.Width() - 1 }

// Row is a read-only view of a single trace row, wide enough to cover
// a.Width() columns.
type Row []field.Element

// CheckRow verifies the row-local constraints for the threshold
// statement against a single trace row:
//
//  1. col[0] == threshold
//  2. col[1] == time_window
//  3. col[width-2] == 1 iff col[width-3] >= threshold, else 0
//  4. col[width-1] == 1
func (a RepIDAir) CheckRow(row Row) bool {
	if len(row) < a.Width() {
		return false
	}
	if row[ColThreshold] != a.Threshold {
		return false
	}
	if row[ColTimeWindow] != a.TimeWindow {
		return false
	}

	finalScore := row[a.ColFinalScore()]
	meets := row[a.ColMeetsThreshold()]
	expectMeets := field.Zero
	if !field.LessThan(finalScore, a.Threshold) {
		expectMeets = field.One
	}
	if meets != expectMeets {
		return false
	}

	if row[a.ColValidity()] != field.One {
		return false
	}
	return true
}

// BiometricAir is the four-factor authentication statement: "all four
// named authentication factors verified against a given challenge."
// Trace height is fixed at 4, width at 8.
type BiometricAir struct {
	Challenge field.Element
}

// NewBiometricAir builds a BiometricAir from a 32-byte WebAuthn-style
// challenge, reduced to a field element from its first 8 little-endian
// bytes.
func NewBiometricAir(challenge [32]byte) BiometricAir {
	var b [8]byte
	copy(b[:], challenge[:8])
	return BiometricAir{Challenge: field.FromBytes(b)}
}

// Height is the fixed trace height for the biometric statement.
func (BiometricAir) Height() int { return 4 }

// Width is the fixed trace width for the biometric statement.
func (BiometricAir) Width() int { return 8 }

// Biometric column layout.
const (
	ColChallenge      = 0
	ColBiometricHash  = 1
	ColFactorsFrom    = 2
	ColAllVerified    = 6
	ColBiometricValid = 7
)

// CheckRow verifies the row-local constraints for the biometric
// statement: col[0] == challenge on every row, and
// col[6] == product(col[2..6]).
func (a BiometricAir) CheckRow(row Row) bool {
	if len(row) < 8 {
		return false
	}
	if row[ColChallenge] != a.Challenge {
		return false
	}

	product := field.One
	for i := ColFactorsFrom; i < ColFactorsFrom+4; i++ {
		product = product.Mul(row[i])
	}
	if row[ColAllVerified] != product {
		return false
	}
	return true
}
