package ssdvfec

import "encoding/binary"

// Flag bits of the SSDV flags field.
const (
	// FlagEOI marks the last systematic packet of an image.
	FlagEOI byte = 0x04
	// FlagFEC marks a FEC (parity) packet.
	FlagFEC byte = 0x40
)

// Packet is a typed view over a raw packet buffer obeying a Format.
// The buffer is owned by the caller; accessors read and write it in
// place and never allocate.
type Packet struct {
	f Format
	b []byte
}

// Bytes returns the underlying packet buffer.
func (p Packet) Bytes() []byte {
	return p.b
}

// ImageID returns the image ID field.
func (p Packet) ImageID() uint8 {
	return p.b[p.f.ImageIDOffset]
}

// SetImageID sets the image ID field.
func (p Packet) SetImageID(id uint8) {
	p.b[p.f.ImageIDOffset] = id
}

// PacketID returns the packet ID field.
func (p Packet) PacketID() uint16 {
	return binary.BigEndian.Uint16(p.b[p.f.ImageIDOffset+1:])
}

// SetPacketID sets the packet ID field.
func (p Packet) SetPacketID(id uint16) {
	binary.BigEndian.PutUint16(p.b[p.f.ImageIDOffset+1:], id)
}

// Width returns the image width field. The field is only present on
// systematic packets; ok is false on a FEC packet.
func (p Packet) Width() (w uint8, ok bool) {
	if p.IsFEC() {
		return 0, false
	}
	return p.b[p.f.ImageIDOffset+3], true
}

// SetWidth sets the image width field. It should only be called on
// systematic packets.
func (p Packet) SetWidth(w uint8) {
	p.b[p.f.ImageIDOffset+3] = w
}

// Height returns the image height field. The field is only present on
// systematic packets; ok is false on a FEC packet.
func (p Packet) Height() (h uint8, ok bool) {
	if p.IsFEC() {
		return 0, false
	}
	return p.b[p.f.ImageIDOffset+4], true
}

// SetHeight sets the image height field. It should only be called on
// systematic packets.
func (p Packet) SetHeight(h uint8) {
	p.b[p.f.ImageIDOffset+4] = h
}

// NumSystematic returns the number-of-systematic-packets field. The
// field is only present on FEC packets; ok is false on a systematic
// packet, whose same bytes hold width and height instead.
func (p Packet) NumSystematic() (k uint16, ok bool) {
	if !p.IsFEC() {
		return 0, false
	}
	return binary.BigEndian.Uint16(p.b[p.f.ImageIDOffset+3:]), true
}

// SetNumSystematic sets the number-of-systematic-packets field. It
// should only be called on FEC packets.
func (p Packet) SetNumSystematic(k uint16) {
	binary.BigEndian.PutUint16(p.b[p.f.ImageIDOffset+3:], k)
}

// Flags returns the flags field.
func (p Packet) Flags() byte {
	return p.b[p.f.ImageIDOffset+5]
}

// SetFlags sets the flags field.
func (p Packet) SetFlags(flags byte) {
	p.b[p.f.ImageIDOffset+5] = flags
}

// IsEOI reports whether the EOI flag is set.
func (p Packet) IsEOI() bool {
	return p.Flags()&FlagEOI != 0
}

// SetEOI sets or clears the EOI flag.
func (p Packet) SetEOI(eoi bool) {
	flags := p.Flags() &^ FlagEOI
	if eoi {
		flags |= FlagEOI
	}
	p.SetFlags(flags)
}

// IsFEC reports whether the FEC packet flag is set.
func (p Packet) IsFEC() bool {
	return p.Flags()&FlagFEC != 0
}

// SetFEC sets or clears the FEC packet flag.
func (p Packet) SetFEC(fec bool) {
	flags := p.Flags() &^ FlagFEC
	if fec {
		flags |= FlagFEC
	}
	p.SetFlags(flags)
}

// Callsign returns the callsign field as a mutable view. It is empty
// for formats without a callsign field.
func (p Packet) Callsign() []byte {
	return p.b[p.f.CallsignOffset : p.f.CallsignOffset+p.f.CallsignLen]
}

// Data returns the data field (MCU offset, MCU index and payload) as a
// mutable view.
func (p Packet) Data() []byte {
	off := p.f.ImageIDOffset + 6
	return p.b[off : off+p.f.DataLen]
}

// CRC32 returns the stored CRC-32 field, held big-endian in the last 4
// bytes of the packet.
func (p Packet) CRC32() uint32 {
	return binary.BigEndian.Uint32(p.b[p.f.PacketLen-4:])
}

// SetCRC32 sets the CRC-32 field.
func (p Packet) SetCRC32(crc uint32) {
	binary.BigEndian.PutUint32(p.b[p.f.PacketLen-4:], crc)
}

// ComputeCRC32 computes the CRC-32 over the format's CRC range with
// the format's initial value.
func (p Packet) ComputeCRC32() uint32 {
	return CRC32(p.b[p.f.CrcDataOffset:p.f.CrcDataOffset+p.f.CrcDataLen], p.f.CrcInit)
}

// CRC32IsValid reports whether the stored CRC-32 equals the computed
// one.
func (p Packet) CRC32IsValid() bool {
	return p.CRC32() == p.ComputeCRC32()
}

// UpdateCRC32 stores the computed CRC-32 in the packet.
func (p Packet) UpdateCRC32() {
	p.SetCRC32(p.ComputeCRC32())
}

// SetFixedFields writes every fixed byte of the format into the
// packet.
func (p Packet) SetFixedFields() {
	for _, fb := range p.f.FixedBytes {
		p.b[fb.Offset] = fb.Value
	}
}
