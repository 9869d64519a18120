package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer"
)

// Build information, set with -ldflags at release time.
var (
	BuildTime = "unknown"
	GitCommit = "dev"
)

// VersionOptions holds options for the version command
type VersionOptions struct {
	*GlobalOptions

	// Short prints the version number only
	Short bool
}

// NewVersionCommand creates the version command.
//
// Usage:
//
//	idanalyzer version [--short]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for displaying version info
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &VersionOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display the CLI version, the library client identifier sent to the API
and build details.`,
		Example: `  idanalyzer version
  idanalyzer version --short`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Short, "short", false, "print the version number only")

	return cmd
}

// runVersion prints version information.
func runVersion(opts *VersionOptions) error {
	if opts.Short {
		fmt.Fprintln(opts.out, idanalyzer.Version)
		return nil
	}

	fmt.Fprintln(opts.out, "Client Version:")
	fmt.Fprintf(opts.out, "  Version:    %s\n", idanalyzer.Version)
	fmt.Fprintf(opts.out, "  Library:    %s\n", idanalyzer.ClientLibrary)
	fmt.Fprintf(opts.out, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(opts.out, "  Git Commit: %s\n", GitCommit)
	return nil
}
