package field

import "testing"

func TestFieldAxioms(t *testing.T) {
	samples := []uint64{0, 1, 2, 12345, Modulus - 1, Modulus / 2, 999999937}

	t.Run("AssociativeAdd", func(t *testing.T) {
		for _, av := range samples {
			for _, bv := range samples {
				for _, cv := range samples {
					a, b, c := New(av), New(bv), New(cv)
					lhs := a.Add(b).Add(c)
					rhs := a.Add(b.Add(c))
					if lhs != rhs {
						t.Fatalf("(%v+%v)+%v != %v+(%v+%v)", a, b, c, a, b, c)
					}
				}
			}
		}
	})

	t.Run("Distributive", func(t *testing.T) {
		for _, av := range samples {
			for _, bv := range samples {
				for _, cv := range samples {
					a, b, c := New(av), New(bv), New(cv)
					lhs := a.Mul(b.Add(c))
					rhs := a.Mul(b).Add(a.Mul(c))
					if lhs != rhs {
						t.Fatalf("%v*(%v+%v) != %v*%v + %v*%v", a, b, c, a, b, a, c)
					}
				}
			}
		}
	})

	t.Run("AdditiveInverse", func(t *testing.T) {
		for _, av := range samples {
			a := New(av)
			if a.Add(a.Neg()) != Zero {
				t.Fatalf("%v + (-%v) != 0", a, a)
			}
		}
	})

	t.Run("MultiplicativeInverse", func(t *testing.T) {
		for _, av := range samples {
			a := New(av)
			if a.IsZero() {
				continue
			}
			inv, ok := a.Inverse()
			if !ok {
				t.Fatalf("expected inverse for non-zero %v", a)
			}
			if a.Mul(inv) != One {
				t.Fatalf("%v * %v^-1 != 1", a, a)
			}
		}
	})

	t.Run("ZeroHasNoInverse", func(t *testing.T) {
		if _, ok := Zero.Inverse(); ok {
			t.Fatal("expected zero to have no inverse")
		}
	})
}

func TestEncodingRoundTrip(t *testing.T) {
	samples := []uint64{0, 1, Modulus - 1, 42, 123456789}
	for _, v := range samples {
		a := New(v)
		b := FromBytes(a.Bytes())
		if a != b {
			t.Fatalf("round trip failed for %d: got %v want %v", v, b, a)
		}
	}
}

func TestReductionOnConstruction(t *testing.T) {
	a := New(Modulus + 5)
	if uint64(a) != 5 {
		t.Fatalf("expected reduction to 5, got %v", a)
	}
}

func TestLessThan(t *testing.T) {
	if !LessThan(New(5), New(10)) {
		t.Fatal("expected 5 < 10")
	}
	if LessThan(New(10), New(5)) {
		t.Fatal("expected 10 !< 5")
	}
	if LessThan(New(5), New(5)) {
		t.Fatal("expected 5 !< 5")
	}
}

func TestPowAndFromUint32(t *testing.T) {
	a := FromUint32(3)
	if a.Pow(0) != One {
		t.Fatal("a^0 should be 1")
	}
	if a.Pow(1) != a {
		t.Fatal("a^1 should be a")
	}
	square := a.Mul(a)
	if a.Pow(2) != square {
		t.Fatal("a^2 should equal a*a")
	}
}
