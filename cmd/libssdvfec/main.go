// Command libssdvfec builds the C ABI of the SSDV FEC codec for
// flight-software integration:
//
//	go build -buildmode=c-shared -o libssdvfec.so ./cmd/libssdvfec
//
// (or -buildmode=c-archive for static linking). The exported functions
// are pinned to the Longjiang-2 packet format.
//
// The encoder lives in a single process-wide slot: the caller must
// serialize ssdv_fec_encoder_setup and ssdv_fec_encoder_encode, which
// are not safe to call concurrently with themselves or with each
// other. All buffers are caller-owned; the buffer given to setup must
// outlive all usage of the encoder until setup is called again with a
// new buffer.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/mkopp/go-ssdvfec/pkg/ssdvfec"
)

// Encoder error codes.
const (
	errEmptyInput         = -1
	errTooLongInput       = -2
	errNonSystematicInput = -3
)

// Decoder error codes.
const (
	errEoiOnFecPacket        = -16
	errDuplicatedEoi         = -17
	errNumSystematicMismatch = -18
	errUnknownNumSystematic  = -19
	errEoiFecMismatch        = -20
	errNotEnoughInput        = -21
	errOutputTooShort        = -22
	errWrongSystematicId     = -23
	errMultipleImageIds      = -24
	errInconsistentFlags     = -25
	errDimensionsMismatch    = -26
	errNoSystematic          = -27
)

// fecEncoder is the process-wide encoder slot. Access is single
// threaded by contract.
var fecEncoder *ssdvfec.Encoder

func packetBuffer(p *C.char, numPackets C.int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(numPackets)*ssdvfec.Longjiang2.PacketLen)
}

// ssdv_fec_encoder_setup prepares the SSDV FEC encoder over the
// num_ssdv_packets systematic packets concatenated at ssdv_packets,
// modifying the buffer in place. It returns zero on success or a
// negative error code.
//
//export ssdv_fec_encoder_setup
func ssdv_fec_encoder_setup(ssdv_packets *C.char, num_ssdv_packets C.int) C.int {
	encoder, err := ssdvfec.NewEncoder(ssdvfec.Longjiang2, packetBuffer(ssdv_packets, num_ssdv_packets))
	if err != nil {
		switch {
		case errors.Is(err, ssdvfec.ErrTooLongInput):
			return errTooLongInput
		case errors.Is(err, ssdvfec.ErrNonSystematicInput):
			return errNonSystematicInput
		default:
			return errEmptyInput
		}
	}
	fecEncoder = encoder
	return 0
}

// ssdv_fec_encoder_encode generates the packet with the given packet
// ID using the encoder prepared by ssdv_fec_encoder_setup, writing it
// to output, which must hold at least one SSDV packet. packet_id must
// be non-negative and smaller than 2¹⁶−1.
//
//export ssdv_fec_encoder_encode
func ssdv_fec_encoder_encode(packet_id C.int, output *C.char) {
	fecEncoder.Encode(uint16(packet_id), packetBuffer(output, 1))
}

// ssdv_fec_decoder_decode decodes an SSDV image from the
// num_input_packets received packets concatenated at input, modifying
// the input buffer in place. On success the decoded image is written
// to the beginning of output (sized num_output_packets packets) and
// the number of decoded packets is returned; on failure a negative
// error code is returned.
//
//export ssdv_fec_decoder_decode
func ssdv_fec_decoder_decode(input *C.char, num_input_packets C.int, output *C.char, num_output_packets C.int) C.int {
	decoded, err := ssdvfec.Decode(
		ssdvfec.Longjiang2,
		packetBuffer(input, num_input_packets),
		packetBuffer(output, num_output_packets),
	)
	if err != nil {
		return decodeErrorCode(err)
	}
	return C.int(len(decoded) / ssdvfec.Longjiang2.PacketLen)
}

func decodeErrorCode(err error) C.int {
	switch {
	case errors.Is(err, ssdvfec.ErrEoiOnFecPacket):
		return errEoiOnFecPacket
	case errors.Is(err, ssdvfec.ErrDuplicatedEoi):
		return errDuplicatedEoi
	case errors.Is(err, ssdvfec.ErrNumSystematicMismatch):
		return errNumSystematicMismatch
	case errors.Is(err, ssdvfec.ErrUnknownNumSystematic):
		return errUnknownNumSystematic
	case errors.Is(err, ssdvfec.ErrEoiFecMismatch):
		return errEoiFecMismatch
	case errors.Is(err, ssdvfec.ErrNotEnoughInput):
		return errNotEnoughInput
	case errors.Is(err, ssdvfec.ErrOutputTooShort):
		return errOutputTooShort
	case errors.Is(err, ssdvfec.ErrWrongSystematicId):
		return errWrongSystematicId
	case errors.Is(err, ssdvfec.ErrMultipleImageIds):
		return errMultipleImageIds
	case errors.Is(err, ssdvfec.ErrInconsistentFlags):
		return errInconsistentFlags
	case errors.Is(err, ssdvfec.ErrDimensionsMismatch):
		return errDimensionsMismatch
	default:
		return errNoSystematic
	}
}

func main() {}
