package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mkopp/go-ssdvfec/pkg/ssdvfec"
	"github.com/spf13/cobra"
)

var formatName string

func init() {
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "no-fec", "SSDV packet format (no-fec, longjiang2)")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <input> <output>",
	Short: "Generate SSDV FEC packets from an SSDV image",
	Long: `Generate packets for the SSDV image in the input file.

The number of packets to generate is given either directly with
--npackets or as a coding rate with --rate, which chooses
round(input packets / rate) output packets.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatByName(formatName)
		if err != nil {
			return err
		}

		first, _ := cmd.Flags().GetUint16("first")
		npackets, _ := cmd.Flags().GetUint16("npackets")
		rate, _ := cmd.Flags().GetFloat64("rate")
		haveNPackets := cmd.Flags().Changed("npackets")
		haveRate := cmd.Flags().Changed("rate")

		switch {
		case haveNPackets && haveRate:
			return errors.New("the --npackets and --rate options are mutually exclusive")
		case !haveNPackets && !haveRate:
			return errors.New("one of the --npackets and --rate options must be used")
		case haveRate && (rate <= 0 || rate > 1):
			return errors.New("the coding rate must be in the interval (0, 1]")
		}

		input, err := readPackets(format, args[0])
		if err != nil {
			return err
		}
		numInput := format.NumPackets(input)

		encoder, err := ssdvfec.NewEncoder(format, input)
		if err != nil {
			return err
		}

		n := int(npackets)
		if haveRate {
			n = int(math.Round(float64(numInput) / rate))
			if maxN := 0xffff - int(first); n > maxN {
				n = maxN
			}
		}

		encoded := make([]byte, n*format.PacketLen)
		for j := 0; j < n; j++ {
			encoder.Encode(first+uint16(j), encoded[j*format.PacketLen:(j+1)*format.PacketLen])
		}
		return os.WriteFile(args[1], encoded, 0644)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <input> <output>",
	Short: "Recover an SSDV image from received FEC packets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatByName(formatName)
		if err != nil {
			return err
		}

		input, err := readPackets(format, args[0])
		if err != nil {
			return err
		}

		output := make([]byte, len(input))
		decoded, err := ssdvfec.Decode(format, input, output)
		if err != nil {
			return fmt.Errorf("decoding failed: %w", err)
		}
		return os.WriteFile(args[1], decoded, 0644)
	},
}

func init() {
	encodeCmd.Flags().Uint16("first", 0, "First packet ID")
	encodeCmd.Flags().Uint16("npackets", 0, "Number of packets to generate")
	encodeCmd.Flags().Float64("rate", 0, "Coding rate in (0, 1]")
}

func formatByName(name string) (ssdvfec.Format, error) {
	switch name {
	case "no-fec":
		return ssdvfec.NoFEC, nil
	case "longjiang2":
		return ssdvfec.Longjiang2, nil
	}
	return ssdvfec.Format{}, fmt.Errorf("unknown packet format %q", name)
}

// readPackets reads a whole file of concatenated packets. A packet
// with a wrong CRC-32 is only warned about; the decoder drops such
// packets itself.
func readPackets(format ssdvfec.Format, path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(buf)%format.PacketLen != 0 {
		return nil, fmt.Errorf("size of %s is not a multiple of the %d byte packet length", path, format.PacketLen)
	}
	for j := 0; j < format.NumPackets(buf); j++ {
		if !format.PacketAt(buf, j).CRC32IsValid() {
			log.Warnf("CRC-32 for packet number %d in input file is wrong (perhaps the packet format is wrong)", j)
		}
	}
	return buf, nil
}
