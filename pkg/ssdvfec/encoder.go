package ssdvfec

import (
	"encoding/binary"
	"errors"
)

// Errors returned by NewEncoder.
var (
	// ErrEmptyInput is returned when the encoder input contains no
	// packets.
	ErrEmptyInput = errors.New("ssdvfec: encoder input is empty")
	// ErrTooLongInput is returned when the encoder input contains more
	// than 65535 packets.
	ErrTooLongInput = errors.New("ssdvfec: encoder input is too long")
	// ErrNonSystematicInput is returned when the first packet of the
	// encoder input is a FEC packet. The other packets are not checked.
	ErrNonSystematicInput = errors.New("ssdvfec: non-systematic packet in encoder input")
)

// Encoder generates an arbitrary number of packets for an SSDV image
// in a fountain-code-like manner. It is initialized with NewEncoder by
// giving it the systematic packets of the image; afterwards Encode can
// be called to generate the packet with any 16-bit packet ID.
//
// The Encoder keeps a reference to the caller's input buffer and
// transforms it in place, so the buffer must outlive the Encoder and
// must not be accessed by other code while the Encoder is in use. An
// Encoder is not safe for concurrent use.
type Encoder struct {
	f   Format
	buf []byte
	k   int
}

// NewEncoder creates a FEC encoder for an SSDV image.
//
// systematic holds the concatenation of the image's k systematic
// packets, in ascending packet ID order and without repetitions. The
// encoder works in place in this buffer: after NewEncoder returns
// successfully the buffer holds Lagrange-weighted values and is no
// longer a valid SSDV image.
func NewEncoder(f Format, systematic []byte) (*Encoder, error) {
	k := f.NumPackets(systematic)
	if k == 0 {
		return nil, ErrEmptyInput
	}
	if k > 0xffff {
		return nil, ErrTooLongInput
	}
	// Only the first packet is checked; the others are trusted.
	if f.PacketAt(systematic, 0).IsFEC() {
		return nil, ErrNonSystematicInput
	}
	e := &Encoder{f: f, buf: systematic, k: k}
	valuesToLagrange(f, e.buf, k, sequentialIDs)
	return e, nil
}

// NumSystematic returns the number of systematic packets in the
// image.
func (e *Encoder) NumSystematic() int {
	return e.k
}

// Encode generates the packet with the given packet ID into out, which
// must be at least PacketLen bytes long. Packet IDs smaller than the
// number of systematic packets reproduce the corresponding input
// packet byte for byte; larger IDs yield FEC packets.
func (e *Encoder) Encode(packetID uint16, out []byte) {
	p := e.f.Packet(out)
	e.encodeHeader(packetID, p)
	if p.IsFEC() {
		evalLagrange(e.f, e.buf, e.k, sequentialIDs, GF64KFromUint16(packetID), p.Data())
	} else {
		e.encodeSystematicData(packetID, p.Data())
	}
	p.UpdateCRC32()
}

func (e *Encoder) encodeHeader(packetID uint16, out Packet) {
	first := e.f.PacketAt(e.buf, 0)
	out.SetFixedFields()
	copy(out.Callsign(), first.Callsign())
	out.SetImageID(first.ImageID())
	out.SetPacketID(packetID)
	isFEC := int(packetID) >= e.k
	if isFEC {
		out.SetNumSystematic(uint16(e.k))
	} else {
		w, _ := first.Width()
		h, _ := first.Height()
		out.SetWidth(w)
		out.SetHeight(h)
	}
	out.SetFlags(first.Flags())
	out.SetEOI(int(packetID) == e.k-1)
	out.SetFEC(isFEC)
}

// encodeSystematicData undoes the w_j scaling performed by NewEncoder
// for the requested packet; evalLagrange is not usable here because
// at an evaluation point both l(x) and the denominator of one of the
// 1/(x − x_j) terms vanish.
func (e *Encoder) encodeSystematicData(packetID uint16, out []byte) {
	wjInv := lagrangeWeightInv(int(packetID), e.k, sequentialIDs)
	data := e.f.PacketAt(e.buf, int(packetID)).Data()
	for r := 0; r+2 <= len(data); r += 2 {
		wjyj := GF64KFromUint16(binary.BigEndian.Uint16(data[r:]))
		binary.BigEndian.PutUint16(out[r:], wjyj.Mul(wjInv).Uint16())
	}
}
