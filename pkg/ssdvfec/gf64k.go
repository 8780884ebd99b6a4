package ssdvfec

// GF64K is an element of the finite field GF(2¹⁶), constructed as the
// degree-2 extension GF(2⁸)[y] / (y² + αy + 1), where α = x³ is the
// GF(2⁸) element with numeric value 8. The pair (Hi, Lo) represents
// Hi·y + Lo. Arithmetic uses ad-hoc formulas for a degree-2 extension.
type GF64K struct {
	Hi, Lo GF256
}

// gf64kPolyXCoeff is α, the y-coefficient of the reduction polynomial.
const gf64kPolyXCoeff = GF256(1 << 3)

// GF64KFromUint16 splits v into the (hi, lo) component pair,
// big-endian.
func GF64KFromUint16(v uint16) GF64K {
	return GF64K{Hi: GF256(v >> 8), Lo: GF256(v & 0xff)}
}

// Uint16 packs the (hi, lo) component pair back into an integer,
// big-endian.
func (a GF64K) Uint16() uint16 {
	return uint16(a.Hi)<<8 | uint16(a.Lo)
}

// Add returns a + b, componentwise.
func (a GF64K) Add(b GF64K) GF64K {
	return GF64K{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo}
}

// Sub returns a − b, which in characteristic 2 equals a + b.
func (a GF64K) Sub(b GF64K) GF64K {
	return a.Add(b)
}

// Mul returns a · b, reducing the y² term through the relation
// y² = αy + 1.
func (a GF64K) Mul(b GF64K) GF64K {
	over := a.Hi.Mul(b.Hi)
	return GF64K{
		Hi: a.Hi.Mul(b.Lo).Add(a.Lo.Mul(b.Hi)).Add(gf64kPolyXCoeff.Mul(over)),
		Lo: a.Lo.Mul(b.Lo).Add(over),
	}
}

// Div returns a / b, solving the 2x2 linear system over GF(2⁸) with
// Cramer's rule. Division by zero is a programming error and panics.
func (a GF64K) Div(b GF64K) GF64K {
	if b == (GF64K{}) {
		panic("ssdvfec: GF(2^16) division by zero")
	}
	discr := b.Lo.Mul(b.Lo).Add(gf64kPolyXCoeff.Mul(b.Hi).Mul(b.Lo)).Add(b.Hi.Mul(b.Hi))
	return GF64K{
		Hi: a.Hi.Mul(b.Lo).Add(a.Lo.Mul(b.Hi)).Div(discr),
		Lo: a.Lo.Mul(b.Lo.Add(gf64kPolyXCoeff.Mul(b.Hi))).Add(a.Hi.Mul(b.Hi)).Div(discr),
	}
}
