// Package field implements arithmetic over the 31-bit prime field
// F_p with p = 2^31 - 2^27 + 1 (the "BabyBear" prime), used as the
// base field for every trace cell, commitment digest input, and
// public input in the RepID STARK engine.
package field

import "fmt"

// Modulus is p = 2^31 - 2^27 + 1 = 2013265921.
const Modulus uint64 = 2013265921

// Element is a field element, always held in canonical form [0, Modulus).
type Element uint64

// Zero is the additive identity.
const Zero Element = 0

// One is the multiplicative identity.
const One Element = 1

// New reduces value modulo the field and returns the canonical element.
func New(value uint64) Element {
	return Element(value % Modulus)
}

// FromUint32 reduces a uint32 modulo the field.
func FromUint32(value uint32) Element {
	return New(uint64(value))
}

// FromUint64 reduces a uint64 modulo the field.
func FromUint64(value uint64) Element {
	return New(value)
}

// Add returns a + b mod p.
func (a Element) Add(b Element) Element {
	return New(uint64(a) + uint64(b))
}

// Sub returns a - b mod p.
func (a Element) Sub(b Element) Element {
	return New(uint64(a) + Modulus - uint64(b))
}

// Neg returns -a mod p.
func (a Element) Neg() Element {
	if a == 0 {
		return 0
	}
	return Element(Modulus - uint64(a))
}

// Mul returns a * b mod p. Both operands are below 2^31, so their
// product fits in a uint64 without overflow.
func (a Element) Mul(b Element) Element {
	product := uint64(a) * uint64(b) // both < 2^31, product fits in uint64
	return Element(product % Modulus)
}

// Pow returns a^exp mod p via right-to-left square-and-multiply.
func (a Element) Pow(exp uint64) Element {
	result := One
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Inverse returns the multiplicative inverse of a, or false if a is zero.
func (a Element) Inverse() (Element, bool) {
	if a == 0 {
		return 0, false
	}
	return a.Pow(Modulus - 2), true
}

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool {
	return a == 0
}

// Equal reports whether a and b are the same field element.
func (a Element) Equal(b Element) bool {
	return a == b
}

// Bytes encodes a as 8 little-endian bytes (high bytes always zero).
func (a Element) Bytes() [8]byte {
	var out [8]byte
	v := uint64(a)
	for i := 0; i < 8; i++ {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// FromBytes decodes 8 little-endian bytes into a canonical element,
// reducing if the encoded value happens to exceed the modulus.
func FromBytes(b [8]byte) Element {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return New(v)
}

// LessThan compares two elements by their canonical integer value. This
// is not a field operation (the field has no order), but the RepID
// statements compare scores against a threshold as plain integers, so
// canonical representatives are compared directly.
func LessThan(a, b Element) bool {
	return uint64(a) < uint64(b)
}

// String renders the element's canonical integer value.
func (a Element) String() string {
	return fmt.Sprintf("%d", uint64(a))
}
