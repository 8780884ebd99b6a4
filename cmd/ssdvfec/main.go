package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ssdvfec",
	Short: "SSDV erasure FEC encoder and decoder",
	Long: `A command line encoder and decoder for the SSDV systematic erasure FEC scheme.

Input and output files are concatenations of raw SSDV packet bytes.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
