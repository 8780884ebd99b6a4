package ssdvfec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGF64K_Uint16RoundTrip(t *testing.T) {
	// Components are packed big-endian.
	assert.Equal(t, GF64K{Hi: 0x12, Lo: 0x34}, GF64KFromUint16(0x1234))

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint16().Draw(t, "v")
		assert.Equal(t, v, GF64KFromUint16(v).Uint16())
	})
}

func TestGF64K_DivMulRoundTrip(t *testing.T) {
	a := GF64K{Hi: 87, Lo: 34}
	for _, b := range []GF64K{{Hi: 153, Lo: 221}, {Hi: 13, Lo: 0}, {Hi: 0, Lo: 174}} {
		assert.Equal(t, a, a.Div(b).Mul(b))
	}

	rapid.Check(t, func(t *rapid.T) {
		a := GF64KFromUint16(rapid.Uint16().Draw(t, "a"))
		b := GF64KFromUint16(rapid.Uint16Range(1, 0xffff).Draw(t, "b"))
		assert.Equal(t, a, a.Div(b).Mul(b))
	})
}

func TestGF64K_Frobenius(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := GF64KFromUint16(rapid.Uint16().Draw(t, "a"))
		b := GF64KFromUint16(rapid.Uint16().Draw(t, "b"))
		s := a.Add(b)
		assert.Equal(t, a.Mul(a).Add(b.Mul(b)), s.Mul(s))
	})
}

func TestGF64K_ReductionPolyHasRootY(t *testing.T) {
	y := GF64K{Hi: 1, Lo: 0}
	alpha := GF64K{Lo: gf64kPolyXCoeff}
	one := GF64KFromUint16(1)
	assert.Equal(t, GF64K{}, y.Mul(y).Add(alpha.Mul(y)).Add(one))
}

func TestGF64K_ReductionPolyIrreducibleOverGF256(t *testing.T) {
	for j := 0; j <= 255; j++ {
		x := GF256(j)
		v := x.Mul(x).Add(gf64kPolyXCoeff.Mul(x)).Add(1)
		assert.NotEqual(t, GF256(0), v, "root at %#02x", j)
	}
}

func TestGF64K_DivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { GF64KFromUint16(0x1234).Div(GF64K{}) })
}
