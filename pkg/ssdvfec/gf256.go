package ssdvfec

// GF256 is an element of the finite field GF(2⁸), realized as the
// quotient GF(2)[x] / (x⁸ + x⁴ + x³ + x² + 1). Multiplication and
// division use tables of exponentials and logarithms.
type GF256 uint8

// gf256Poly is the reduction polynomial x⁸ + x⁴ + x³ + x² + 1.
const gf256Poly = 0x11d

// gf256Exp[j] holds xʲ for j = 0…254; entry 255 is unused and zero.
// gf256Log[b] holds the exponent j with xʲ = b for b = 1…255; entry 0
// is unused and zero, since the logarithm of 0 is undefined.
var (
	gf256Exp [256]byte
	gf256Log [256]byte
)

func init() {
	v := 1
	for j := 0; j < 255; j++ {
		gf256Exp[j] = byte(v)
		gf256Log[v] = byte(j)
		v <<= 1
		if v&0x100 != 0 {
			v ^= gf256Poly
		}
	}
}

// Add returns a + b. Addition in characteristic 2 is XOR.
func (a GF256) Add(b GF256) GF256 {
	return a ^ b
}

// Sub returns a − b, which in characteristic 2 equals a + b.
func (a GF256) Sub(b GF256) GF256 {
	return a ^ b
}

// Mul returns a · b.
func (a GF256) Mul(b GF256) GF256 {
	if a == 0 || b == 0 {
		return 0
	}
	s := int(gf256Log[a]) + int(gf256Log[b])
	if s >= 255 {
		s -= 255
	}
	return GF256(gf256Exp[s])
}

// Div returns a / b. Division by zero is a programming error and
// panics.
func (a GF256) Div(b GF256) GF256 {
	if b == 0 {
		panic("ssdvfec: GF(2^8) division by zero")
	}
	if a == 0 {
		return 0
	}
	s := 255 + int(gf256Log[a]) - int(gf256Log[b])
	if s >= 255 {
		s -= 255
	}
	return GF256(gf256Exp[s])
}
