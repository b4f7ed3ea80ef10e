package cmd

import (
	"fmt"
	"os"

	"github.com/jgrimm/slotmap/cmd/perf"
	"github.com/spf13/cobra"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "slotmap",
		Short: "striped concurrent map toolkit",
		Long: fmt.Sprintf(`slotMap (v%s)

A striped, reader/writer-locked concurrent map library for Go,
with per-shard pooling and a rich conditional-mutation API.
This binary bundles the development tooling for the library.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of slotmap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("slotMap v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
