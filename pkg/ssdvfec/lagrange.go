package ssdvfec

import "encoding/binary"

// The Lagrange polynomial L(x) interpolating L(x_j) = y_j over k
// evaluation points can be written in barycentric form as
//
//	L(x) = l(x) Σ_{j=0}^{k-1} w_j·y_j / (x − x_j)
//
// with
//
//	l(x) = ∏_{j=0}^{k-1} (x − x_j)
//	w_j  = ∏_{m≠j} (x_j − x_m)⁻¹.
//
// Both the encoder and the decoder pre-scale the packet data words
// y_j to w_j·y_j in place, so that evaluating L at a fresh point costs
// one product and one accumulation pass per word. The evaluation-point
// list differs between the two: the encoder uses the sequential ids
// 0…k−1, the decoder the packet ids of the first k survivors in its
// input buffer. Callers pass the list as an id callback so neither
// side materialises it.

// lagrangeWeightInv computes w_j⁻¹ = ∏_{m≠j} (x_j − x_m).
func lagrangeWeightInv(j, k int, id func(int) uint16) GF64K {
	xj := GF64KFromUint16(id(j))
	ret := GF64KFromUint16(1)
	for m := 0; m < k; m++ {
		if m == j {
			continue
		}
		ret = ret.Mul(xj.Sub(GF64KFromUint16(id(m))))
	}
	return ret
}

// valuesToLagrange replaces, in place, each 2-byte big-endian data
// word y_j of the first k packets of buf with the scaled word w_j·y_j.
func valuesToLagrange(f Format, buf []byte, k int, id func(int) uint16) {
	for j := 0; j < k; j++ {
		wj := GF64KFromUint16(1).Div(lagrangeWeightInv(j, k, id))
		data := f.PacketAt(buf, j).Data()
		for r := 0; r+2 <= len(data); r += 2 {
			yj := GF64KFromUint16(binary.BigEndian.Uint16(data[r:]))
			binary.BigEndian.PutUint16(data[r:], yj.Mul(wj).Uint16())
		}
	}
}

// evalLagrange evaluates L(x) from the Lagrange-weighted packets of
// buf and writes the resulting data words to out. x must differ from
// every evaluation point; for an x in the evaluation set both l(x) and
// the denominator of one of the 1/(x − x_j) terms vanish (the division
// by zero panics), so that case is handled by
// undoing the w_j scaling instead (see Encoder.encodeSystematicData).
func evalLagrange(f Format, buf []byte, k int, id func(int) uint16, x GF64K, out []byte) {
	lx := GF64KFromUint16(1)
	for j := 0; j < k; j++ {
		lx = lx.Mul(x.Sub(GF64KFromUint16(id(j))))
	}
	for r := 0; r+2 <= len(out); r += 2 {
		var sum GF64K
		for j := 0; j < k; j++ {
			data := f.PacketAt(buf, j).Data()
			wjyj := GF64KFromUint16(binary.BigEndian.Uint16(data[r:]))
			xj := GF64KFromUint16(id(j))
			sum = sum.Add(wjyj.Div(x.Sub(xj)))
		}
		binary.BigEndian.PutUint16(out[r:], lx.Mul(sum).Uint16())
	}
}

// sequentialIDs is the evaluation-point list 0, 1, …, k−1 used by the
// encoder.
func sequentialIDs(j int) uint16 {
	return uint16(j)
}
