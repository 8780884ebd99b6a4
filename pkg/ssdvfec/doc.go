// Package ssdvfec implements a systematic erasure FEC scheme for SSDV,
// the amateur-radio slow-scan digital video packet format.
//
// The scheme is a Reed-Solomon code over GF(2¹⁶) used as a
// fountain-like code. Given an SSDV image formed by k packets, the
// encoder can generate up to 2¹⁶ distinct packets identified by a
// packet ID from 0 to 2¹⁶−1. Packets with IDs 0 to k−1 are
// "systematic" and byte-identical to the original image packets; the
// rest are "FEC" packets. A receiver recovers the original image from
// any k distinct packets.
//
// # Basic Usage
//
//	enc, err := ssdvfec.NewEncoder(ssdvfec.Longjiang2, image)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := make([]byte, ssdvfec.Longjiang2.PacketLen)
//	enc.Encode(300, out)
//
//	decoded, err := ssdvfec.Decode(ssdvfec.Longjiang2, received, output)
//
// # Memory model
//
// The codec is designed with small microcontrollers in mind and
// allocates no packet or scratch buffers (NewEncoder allocates only the
// small Encoder value): packets live in caller-owned contiguous byte buffers of
// k × PacketLen bytes, and both the encoder setup and the decoder work
// in place in their input buffers. After NewEncoder returns, the input
// buffer holds Lagrange-weighted values and is no longer a valid SSDV
// image. The only tables are two 256-byte log/exp tables for the
// GF(2⁸) arithmetic.
//
// A single Encoder instance and a single Decode call are not safe for
// concurrent use; they hold exclusive access to their buffers for the
// duration of use.
package ssdvfec
