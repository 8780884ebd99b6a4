package ssdvfec

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_Layout(t *testing.T) {
	for _, format := range []Format{NoFEC, Longjiang2} {
		t.Run(format.Name, func(t *testing.T) {
			headerLen := format.ImageIDOffset + 6
			assert.Equal(t, format.PacketLen-headerLen-4, format.DataLen)
			assert.Zero(t, format.DataLen%2, "data length must be even for 2-byte words")
			assert.Equal(t, format.PacketLen-4, format.CrcDataOffset+format.CrcDataLen)
		})
	}
}

func TestPacket_HeaderFields(t *testing.T) {
	for _, format := range []Format{NoFEC, Longjiang2} {
		t.Run(format.Name, func(t *testing.T) {
			buf := make([]byte, format.PacketLen)
			p := format.Packet(buf)

			p.SetImageID(0x2a)
			p.SetPacketID(0x0102)
			p.SetWidth(8)
			p.SetHeight(6)

			assert.Equal(t, uint8(0x2a), p.ImageID())
			assert.Equal(t, uint16(0x0102), p.PacketID())
			// Packet ID is stored big-endian.
			assert.Equal(t, byte(0x01), buf[format.ImageIDOffset+1])
			assert.Equal(t, byte(0x02), buf[format.ImageIDOffset+2])

			w, ok := p.Width()
			assert.True(t, ok)
			assert.Equal(t, uint8(8), w)
			h, ok := p.Height()
			assert.True(t, ok)
			assert.Equal(t, uint8(6), h)
		})
	}
}

func TestPacket_FieldPresenceFollowsFecFlag(t *testing.T) {
	buf := make([]byte, Longjiang2.PacketLen)
	p := Longjiang2.Packet(buf)

	p.SetFEC(true)
	p.SetNumSystematic(230)

	_, ok := p.Width()
	assert.False(t, ok)
	_, ok = p.Height()
	assert.False(t, ok)
	k, ok := p.NumSystematic()
	assert.True(t, ok)
	assert.Equal(t, uint16(230), k)
	// Width/height and the systematic count share the same bytes.
	assert.Equal(t, uint16(230), binary.BigEndian.Uint16(buf[Longjiang2.ImageIDOffset+3:]))

	p.SetFEC(false)
	_, ok = p.NumSystematic()
	assert.False(t, ok)
	_, ok = p.Width()
	assert.True(t, ok)
}

func TestPacket_FlagBitsDoNotClobberEachOther(t *testing.T) {
	buf := make([]byte, Longjiang2.PacketLen)
	p := Longjiang2.Packet(buf)

	p.SetFlags(0x01)
	p.SetEOI(true)
	assert.Equal(t, byte(0x05), p.Flags())
	assert.True(t, p.IsEOI())

	p.SetFEC(true)
	assert.Equal(t, byte(0x45), p.Flags())
	assert.True(t, p.IsFEC())

	p.SetEOI(false)
	assert.Equal(t, byte(0x41), p.Flags())
	assert.True(t, p.IsFEC())
	assert.False(t, p.IsEOI())
}

func TestPacket_Callsign(t *testing.T) {
	buf := make([]byte, NoFEC.PacketLen)
	p := NoFEC.Packet(buf)
	copy(p.Callsign(), "T3ST")
	assert.Equal(t, []byte("T3ST"), buf[2:6])

	// Longjiang-2 has no callsign field.
	assert.Empty(t, Longjiang2.Packet(make([]byte, Longjiang2.PacketLen)).Callsign())
}

func TestPacket_FixedFields(t *testing.T) {
	buf := make([]byte, NoFEC.PacketLen)
	NoFEC.Packet(buf).SetFixedFields()
	assert.Equal(t, byte(0x55), buf[0])
	assert.Equal(t, byte(0x67), buf[1])
}

func TestPacket_CRC32(t *testing.T) {
	for _, format := range []Format{NoFEC, Longjiang2} {
		t.Run(format.Name, func(t *testing.T) {
			buf := make([]byte, format.PacketLen)
			rand.New(rand.NewSource(7)).Read(buf)
			p := format.Packet(buf)

			p.UpdateCRC32()
			assert.True(t, p.CRC32IsValid())
			assert.Equal(t, p.ComputeCRC32(), p.CRC32())
			// The CRC is stored big-endian in the last 4 bytes.
			assert.Equal(t, p.CRC32(), binary.BigEndian.Uint32(buf[format.PacketLen-4:]))

			buf[format.CrcDataOffset] ^= 0xff
			assert.False(t, p.CRC32IsValid())
		})
	}
}
