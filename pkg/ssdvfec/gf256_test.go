package ssdvfec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGF256_Powers(t *testing.T) {
	a := GF256(1)
	for j := 0; j < 8; j++ {
		assert.Equal(t, GF256(1<<j), a)
		a = a.Mul(2)
	}
	// x⁸ = x⁴ + x³ + x² + 1
	assert.Equal(t, GF256(0x1d), a)
}

func TestGF256_DivMulRoundTrip(t *testing.T) {
	c := GF256(123).Div(187)
	assert.Equal(t, GF256(123), c.Mul(187))

	rapid.Check(t, func(t *rapid.T) {
		a := GF256(rapid.Byte().Draw(t, "a"))
		b := GF256(rapid.ByteRange(1, 255).Draw(t, "b"))
		assert.Equal(t, a, a.Div(b).Mul(b))
	})
}

func TestGF256_Frobenius(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := GF256(rapid.Byte().Draw(t, "a"))
		b := GF256(rapid.Byte().Draw(t, "b"))
		s := a.Add(b)
		assert.Equal(t, a.Mul(a).Add(b.Mul(b)), s.Mul(s))
	})
}

func TestGF256_Zero(t *testing.T) {
	assert.Equal(t, GF256(0), GF256(0).Mul(57))
	assert.Equal(t, GF256(0), GF256(57).Mul(0))
	assert.Equal(t, GF256(0), GF256(0).Div(57))
}

func TestGF256_DivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { GF256(57).Div(0) })
}
