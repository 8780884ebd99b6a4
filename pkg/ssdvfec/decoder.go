package ssdvfec

import "errors"

// Errors returned by Decode.
var (
	// ErrEoiOnFecPacket is returned when the EOI flag is set on a FEC
	// packet.
	ErrEoiOnFecPacket = errors.New("ssdvfec: EOI set on FEC packet")
	// ErrDuplicatedEoi is returned when the EOI flag is set on several
	// different packets.
	ErrDuplicatedEoi = errors.New("ssdvfec: EOI set on several different packets")
	// ErrNumSystematicMismatch is returned when different FEC packets
	// declare different numbers of systematic packets.
	ErrNumSystematicMismatch = errors.New("ssdvfec: mismatched number of systematic packets on different FEC packets")
	// ErrUnknownNumSystematic is returned when the number of
	// systematic packets cannot be determined: the packet carrying the
	// EOI flag is missing and there are no FEC packets.
	ErrUnknownNumSystematic = errors.New("ssdvfec: could not determine number of systematic packets")
	// ErrEoiFecMismatch is returned when the packet ID carrying the
	// EOI flag contradicts the number of systematic packets declared
	// by the FEC packets.
	ErrEoiFecMismatch = errors.New("ssdvfec: mismatch between EOI and number of systematic packets")
	// ErrNotEnoughInput is returned when there are fewer distinct
	// valid input packets than systematic packets in the image.
	ErrNotEnoughInput = errors.New("ssdvfec: not enough input packets")
	// ErrOutputTooShort is returned when the output buffer holds fewer
	// packets than the image has systematic packets.
	ErrOutputTooShort = errors.New("ssdvfec: output buffer is too short")
	// ErrWrongSystematicId is returned when a systematic packet has a
	// packet ID outside the systematic range.
	ErrWrongSystematicId = errors.New("ssdvfec: wrong packet ID on systematic packet")
	// ErrMultipleImageIds is returned when the input packets carry
	// multiple image IDs.
	ErrMultipleImageIds = errors.New("ssdvfec: multiple image IDs")
	// ErrInconsistentFlags is returned when packets disagree on flag
	// bits other than EOI and FEC.
	ErrInconsistentFlags = errors.New("ssdvfec: inconsistent flags on different packets")
	// ErrDimensionsMismatch is returned when systematic packets
	// disagree on the image width or height.
	ErrDimensionsMismatch = errors.New("ssdvfec: mismatched width or height on different systematic packets")
	// ErrNoSystematic is returned when there are no systematic
	// packets; at least one is required to obtain the image width and
	// height.
	ErrNoSystematic = errors.New("ssdvfec: no systematic packets")
)

// invalidPacketID marks an output slot whose packet has not been
// recovered yet. The value 2¹⁶−1 is never the ID of a systematic
// packet, since an image has at most 2¹⁶−1 systematic packets.
const invalidPacketID = 0xffff

// flagsMask covers the EOI and FEC bits, the only flag bits allowed to
// differ between packets of one image.
const flagsMask = FlagEOI | FlagFEC

// Decode recovers an SSDV image from a buffer of received packets.
//
// input holds the concatenation of the received packets, which may be
// out of order and may include duplicates, extra packets and packets
// with a wrong CRC-32. Decode works in place in input, modifying its
// contents. On success the k systematic packets of the image are
// written contiguously to the front of output and the subslice of
// output holding them is returned. On error the contents of output are
// unspecified.
func Decode(f Format, input, output []byte) ([]byte, error) {
	d := decoder{f: f, input: input, output: output}
	if err := d.init(); err != nil {
		return nil, err
	}
	d.initOutput()
	d.copySystematic()
	if !d.allSystematicObtained() {
		valuesToLagrange(d.f, d.input, d.k, d.survivorID)
		d.interpolateMissing()
	}
	return d.output[:d.k*f.PacketLen], nil
}

// decoder holds the state of a single Decode call. It lives only for
// the duration of that call.
type decoder struct {
	f      Format
	input  []byte
	n      int // survivor count after sanitizing
	output []byte
	k      int // number of systematic packets in the image

	// Common header data extracted from the survivors.
	callsign []byte
	imageID  uint8
	width    uint8
	height   uint8
	flags    byte // EOI and FEC bits masked off
}

func (d *decoder) init() error {
	d.n = d.sanitize()
	k, err := d.findNumSystematic()
	if err != nil {
		return err
	}
	d.k = int(k)
	// Check n > 0 explicitly before touching survivor 0: maliciously
	// formed packets could make k come out as 0.
	if d.n == 0 || d.n < d.k {
		return ErrNotEnoughInput
	}
	if d.f.NumPackets(d.output) < d.k {
		return ErrOutputTooShort
	}
	d.callsign = d.f.PacketAt(d.input, 0).Callsign()
	if err := d.checkSystematicIDs(); err != nil {
		return err
	}
	if err := d.findImageIDFlags(); err != nil {
		return err
	}
	return d.findImageDimensions()
}

// sanitize drops every packet whose stored CRC-32 does not match the
// computed one, then every later packet whose packet ID duplicates an
// earlier survivor (first wins), compacting the survivors to the front
// of the input buffer. It returns the survivor count.
func (d *decoder) sanitize() int {
	plen := d.f.PacketLen
	n := d.f.NumPackets(d.input)
	j := 0
	for j < n {
		if !d.f.PacketAt(d.input, j).CRC32IsValid() {
			copy(d.input[j*plen:], d.input[(j+1)*plen:n*plen])
			n--
			continue
		}
		id := d.f.PacketAt(d.input, j).PacketID()
		m := j + 1
		for m < n {
			if d.f.PacketAt(d.input, m).PacketID() == id {
				copy(d.input[m*plen:], d.input[(m+1)*plen:n*plen])
				n--
			} else {
				m++
			}
		}
		j++
	}
	return n
}

// findNumSystematic determines the number of systematic packets in the
// image from the survivors: from the packet ID carrying the EOI flag,
// from the number-of-systematic-packets field of the FEC packets, or
// from both if they agree.
func (d *decoder) findNumSystematic() (uint16, error) {
	var idEOI, kFEC uint16
	var haveEOI, haveFEC bool
	for j := 0; j < d.n; j++ {
		p := d.f.PacketAt(d.input, j)
		if p.IsEOI() {
			if p.IsFEC() {
				return 0, ErrEoiOnFecPacket
			}
			if haveEOI {
				return 0, ErrDuplicatedEoi
			}
			idEOI, haveEOI = p.PacketID(), true
		}
		if k, ok := p.NumSystematic(); ok {
			if haveFEC && k != kFEC {
				return 0, ErrNumSystematicMismatch
			}
			kFEC, haveFEC = k, true
		}
	}
	switch {
	case !haveEOI && !haveFEC:
		return 0, ErrUnknownNumSystematic
	case haveEOI && !haveFEC:
		return idEOI + 1, nil
	case !haveEOI:
		return kFEC, nil
	default:
		if idEOI+1 != kFEC {
			return 0, ErrEoiFecMismatch
		}
		return kFEC, nil
	}
}

func (d *decoder) checkSystematicIDs() error {
	for j := 0; j < d.n; j++ {
		p := d.f.PacketAt(d.input, j)
		if !p.IsFEC() && int(p.PacketID()) >= d.k {
			return ErrWrongSystematicId
		}
	}
	return nil
}

func (d *decoder) findImageIDFlags() error {
	first := d.f.PacketAt(d.input, 0)
	d.imageID = first.ImageID()
	d.flags = first.Flags() &^ flagsMask
	for j := 0; j < d.n; j++ {
		p := d.f.PacketAt(d.input, j)
		if p.ImageID() != d.imageID {
			return ErrMultipleImageIds
		}
		if p.Flags()&^flagsMask != d.flags {
			return ErrInconsistentFlags
		}
	}
	return nil
}

func (d *decoder) findImageDimensions() error {
	var have bool
	for j := 0; j < d.n; j++ {
		p := d.f.PacketAt(d.input, j)
		w, ok := p.Width()
		if !ok {
			continue
		}
		// If width is present, height is also present.
		h, _ := p.Height()
		if have && (w != d.width || h != d.height) {
			return ErrDimensionsMismatch
		}
		if !have {
			d.width, d.height, have = w, h, true
		}
	}
	if !have {
		return ErrNoSystematic
	}
	return nil
}

// initOutput stamps the reserved packet ID into every output slot so
// that slots not yet recovered can be told apart.
func (d *decoder) initOutput() {
	for i := 0; i < d.k; i++ {
		d.f.PacketAt(d.output, i).SetPacketID(invalidPacketID)
	}
}

// copySystematic copies every systematic survivor verbatim into the
// output slot given by its packet ID.
func (d *decoder) copySystematic() {
	plen := d.f.PacketLen
	for j := 0; j < d.n; j++ {
		p := d.f.PacketAt(d.input, j)
		if !p.IsFEC() {
			copy(d.output[int(p.PacketID())*plen:], p.Bytes())
		}
	}
}

func (d *decoder) allSystematicObtained() bool {
	for i := 0; i < d.k; i++ {
		if d.f.PacketAt(d.output, i).PacketID() == invalidPacketID {
			return false
		}
	}
	return true
}

// survivorID gives the evaluation point of the j-th survivor. Unlike
// the encoder's points, the ids of the first k survivors are neither
// sorted nor contiguous and may mix systematic and FEC ids.
func (d *decoder) survivorID(j int) uint16 {
	return d.f.PacketAt(d.input, j).PacketID()
}

// interpolateMissing recovers each still-missing systematic packet by
// evaluating the Lagrange polynomial through the first k survivors at
// the missing packet's id, then fills in the header from the common
// data collected during init.
func (d *decoder) interpolateMissing() {
	for i := 0; i < d.k; i++ {
		out := d.f.PacketAt(d.output, i)
		if out.PacketID() != invalidPacketID {
			continue
		}
		evalLagrange(d.f, d.input, d.k, d.survivorID, GF64KFromUint16(uint16(i)), out.Data())

		out.SetFixedFields()
		copy(out.Callsign(), d.callsign)
		out.SetImageID(d.imageID)
		out.SetPacketID(uint16(i))
		out.SetWidth(d.width)
		out.SetHeight(d.height)
		out.SetFlags(d.flags)
		out.SetEOI(i == d.k-1)
		out.SetFEC(false)
		out.UpdateCRC32()
	}
}
