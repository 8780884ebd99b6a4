package ssdvfec

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCRC32_CheckValue(t *testing.T) {
	assert.Equal(t, uint32(0xCBF43926), CRC32([]byte("123456789"), CRC32InitStandard))
	assert.Equal(t, uint32(0x599CAF5C), CRC32([]byte("123456789"), CRC32InitDSLWP))
}

func TestCRC32_DSLWPVectors(t *testing.T) {
	assert.Equal(t, uint32(0xB11B021E), CRC32(nil, CRC32InitDSLWP))
	assert.Equal(t, uint32(0x32B28953), CRC32([]byte{0, 1, 2, 3, 4, 5, 6, 7}, CRC32InitDSLWP))
}

func TestCRC32_StandardInitMatchesStdlib(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		assert.Equal(t, crc32.ChecksumIEEE(data), CRC32(data, CRC32InitStandard))
	})
}
