package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information for this binary",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gf %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
