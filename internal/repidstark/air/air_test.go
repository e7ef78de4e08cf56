package air

import (
	"testing"

	"github.com/DealAppSeo/hyperdag-platform/internal/repidstark/field"
)

func validRepIDRow(a RepIDAir, finalScore uint32) Row {
	row := make(Row, a.Width())
	row[ColThreshold] = a.Threshold
	row[ColTimeWindow] = a.TimeWindow
	row[ColTimestamp] = field.New(1000)
	for i := 0; i < a.NumCategories; i++ {
		row[ColScoresFrom+i] = field.New(0)
	}
	row[a.ColFinalScore()] = field.FromUint32(finalScore)
	if finalScore >= uint32(a.Threshold) {
		row[a.ColMeetsThreshold()] = field.One
	} else {
		row[a.ColMeetsThreshold()] = field.Zero
	}
	row[a.ColValidity()] = field.One
	return row
}

func TestRepIDAirWidthAndHeight(t *testing.T) {
	a := NewRepIDAir(3, 100, 86400)
	if a.Height() != 8 {
		t.Fatalf("expected height 8, got %d", a.Height())
	}
	if a.Width() != 9 {
		t.Fatalf("expected width 9 (6+3), got %d", a.Width())
	}
}

func TestRepIDAirCheckRowMeetsThreshold(t *testing.T) {
	a := NewRepIDAir(2, 100, 86400)
	row := validRepIDRow(a, 125)
	if !a.CheckRow(row) {
		t.Fatal("expected valid row above threshold to pass")
	}
}

func TestRepIDAirCheckRowBelowThreshold(t *testing.T) {
	a := NewRepIDAir(2, 200, 86400)
	row := validRepIDRow(a, 75)
	if !a.CheckRow(row) {
		t.Fatal("expected valid row below threshold (meets_threshold=0) to still pass")
	}
}

func TestRepIDAirCheckRowRejectsWrongMeetsFlag(t *testing.T) {
	a := NewRepIDAir(2, 100, 86400)
	row := validRepIDRow(a, 125)
	row[a.ColMeetsThreshold()] = field.Zero // should have been 1
	if a.CheckRow(row) {
		t.Fatal("expected mismatched meets_threshold flag to fail")
	}
}

func TestRepIDAirCheckRowRejectsWrongThreshold(t *testing.T) {
	a := NewRepIDAir(2, 100, 86400)
	row := validRepIDRow(a, 125)
	row[ColThreshold] = field.New(999)
	if a.CheckRow(row) {
		t.Fatal("expected mismatched threshold column to fail")
	}
}

func TestRepIDAirCheckRowRejectsInvalidValidityFlag(t *testing.T) {
	a := NewRepIDAir(2, 100, 86400)
	row := validRepIDRow(a, 125)
	row[a.ColValidity()] = field.Zero
	if a.CheckRow(row) {
		t.Fatal("expected validity flag != 1 to fail")
	}
}

func TestRepIDAirCheckRowRejectsShortRow(t *testing.T) {
	a := NewRepIDAir(2, 100, 86400)
	if a.CheckRow(Row{field.One}) {
		t.Fatal("expected too-short row to fail")
	}
}

func validBiometricRow(a BiometricAir, factors [4]bool) Row {
	row := make(Row, 8)
	row[ColChallenge] = a.Challenge
	row[ColBiometricHash] = field.New(42)
	allVerified := field.One
	for i, f := range factors {
		v := field.Zero
		if f {
			v = field.One
		}
		row[ColFactorsFrom+i] = v
		allVerified = allVerified.Mul(v)
	}
	row[ColAllVerified] = allVerified
	row[ColBiometricValid] = field.One
	return row
}

func TestBiometricAirDimensions(t *testing.T) {
	var challenge [32]byte
	a := NewBiometricAir(challenge)
	if a.Height() != 4 {
		t.Fatalf("expected height 4, got %d", a.Height())
	}
	if a.Width() != 8 {
		t.Fatalf("expected width 8, got %d", a.Width())
	}
}

func TestBiometricAirAllFactorsVerified(t *testing.T) {
	var challenge [32]byte
	challenge[0] = 1
	a := NewBiometricAir(challenge)
	row := validBiometricRow(a, [4]bool{true, true, true, true})
	if !a.CheckRow(row) {
		t.Fatal("expected all-true factors to verify")
	}
	if row[ColAllVerified] != field.One {
		t.Fatal("expected all_verified == 1 when all factors true")
	}
}

func TestBiometricAirOneFactorFails(t *testing.T) {
	var challenge [32]byte
	a := NewBiometricAir(challenge)
	row := validBiometricRow(a, [4]bool{true, true, false, true})
	if !a.CheckRow(row) {
		t.Fatal("expected a consistently-built row to pass even with a failed factor")
	}
	if row[ColAllVerified] != field.Zero {
		t.Fatal("expected all_verified == 0 when any factor is false")
	}
}

func TestBiometricAirRejectsWrongChallenge(t *testing.T) {
	var challenge [32]byte
	a := NewBiometricAir(challenge)
	row := validBiometricRow(a, [4]bool{true, true, true, true})
	row[ColChallenge] = field.New(12345)
	if a.CheckRow(row) {
		t.Fatal("expected mismatched challenge column to fail")
	}
}

func TestBiometricAirRejectsWrongAllVerified(t *testing.T) {
	var challenge [32]byte
	a := NewBiometricAir(challenge)
	row := validBiometricRow(a, [4]bool{true, true, true, true})
	row[ColAllVerified] = field.Zero
	if a.CheckRow(row) {
		t.Fatal("expected mismatched all_verified column to fail")
	}
}

func TestChallengeFromBytesUsesFirstEightLE(t *testing.T) {
	var challenge [32]byte
	challenge[0] = 1
	a := NewBiometricAir(challenge)
	if a.Challenge != field.New(1) {
		t.Fatalf("expected challenge field value 1, got %v", a.Challenge)
	}
}
