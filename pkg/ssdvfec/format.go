package ssdvfec

// FixedByte is a byte written verbatim at a fixed offset of every
// emitted packet, such as a sync byte or a packet type marker.
type FixedByte struct {
	Offset int
	Value  byte
}

// Format describes an SSDV packet layout as a flat parameter record:
// lengths, field offsets, fixed-byte stamps and the CRC-32 initial
// value. The image ID, packet ID, width, height, flags and data fields
// are adjacent starting at ImageIDOffset, with the same lengths as in
// the standard SSDV packet format; the callsign field is optional and
// may sit anywhere. The 4 CRC bytes occupy the last 4 bytes of the
// packet, big-endian.
type Format struct {
	// Name identifies the format in diagnostics and on the CLI.
	Name string

	// PacketLen is the total packet length in bytes.
	PacketLen int

	// DataLen is the length of the data field in bytes. It equals
	// PacketLen − (ImageIDOffset + 6) − 4 and must be even, since the
	// FEC arithmetic walks the data in 2-byte words.
	DataLen int

	// CrcDataOffset and CrcDataLen delimit the contiguous byte range
	// covered by the CRC-32 calculation.
	CrcDataOffset int
	CrcDataLen    int

	// CallsignOffset and CallsignLen delimit the callsign field. Both
	// are zero for formats without one.
	CallsignOffset int
	CallsignLen    int

	// ImageIDOffset is the byte offset where the image ID field
	// starts.
	ImageIDOffset int

	// FixedBytes are written verbatim on every emitted packet.
	FixedBytes []FixedByte

	// CrcInit is the CRC-32 initial value for this format.
	CrcInit uint32
}

// NoFEC is the no-FEC standard SSDV packet format: 256-byte packets
// with a sync byte, a packet type byte and a 4-byte callsign.
var NoFEC = Format{
	Name:           "no-fec",
	PacketLen:      256,
	DataLen:        240,
	CrcDataOffset:  1,
	CrcDataLen:     251,
	CallsignOffset: 2,
	CallsignLen:    4,
	ImageIDOffset:  6,
	FixedBytes: []FixedByte{
		{Offset: 0, Value: 0x55}, // sync byte
		{Offset: 1, Value: 0x67}, // packet type: no-FEC mode
	},
	CrcInit: CRC32InitStandard,
}

// Longjiang2 is the custom 218-byte packet format used during the
// Longjiang-2 mission. It omits the sync byte, packet type and
// callsign fields, but includes them implicitly in the CRC-32 through
// the DSLWP initial value.
var Longjiang2 = Format{
	Name:          "longjiang2",
	PacketLen:     218,
	DataLen:       208,
	CrcDataOffset: 0,
	CrcDataLen:    214,
	ImageIDOffset: 0,
	CrcInit:       CRC32InitDSLWP,
}

// NumPackets returns how many whole packets fit in buf.
func (f Format) NumPackets(buf []byte) int {
	return len(buf) / f.PacketLen
}

// Packet binds a view over a single packet buffer. The buffer must be
// at least PacketLen bytes long.
func (f Format) Packet(b []byte) Packet {
	return Packet{f: f, b: b[:f.PacketLen]}
}

// PacketAt binds a view over the i-th packet of a contiguous buffer of
// concatenated packets.
func (f Format) PacketAt(buf []byte, i int) Packet {
	return Packet{f: f, b: buf[i*f.PacketLen : (i+1)*f.PacketLen]}
}
