package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer/internal/config"
	"github.com/tsingmao/idanalyzer/internal/logger"
)

// ConfigInitOptions holds options for config init
type ConfigInitOptions struct {
	*GlobalOptions

	// Force overwrites an existing profile
	Force bool
}

// NewConfigCommand creates the config command group.
//
// Usage:
//
//	idanalyzer config show
//	idanalyzer config init --api-key KEY [--region EU] [--force]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command with the config subcommands
func NewConfigCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the CLI profile",
	}

	initOpts := &ConfigInitOptions{GlobalOptions: globalOpts}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a profile file",
		Long: `Write the effective profile (defaults, environment and the --api-key,
--region and --strict flags) to the profile file.`,
		Example: `  idanalyzer config init --api-key YOUR_KEY --region EU`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(initOpts)
		},
	}
	initCmd.Flags().BoolVar(&initOpts.Force, "force", false, "overwrite an existing profile")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective profile with the API key masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(globalOpts)
			},
		},
		initCmd,
	)

	return cmd
}

func profilePath(opts *GlobalOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return config.DefaultPath()
}

// runConfigShow prints the merged profile.
func runConfigShow(opts *GlobalOptions) error {
	p, err := loadProfile(opts)
	if err != nil {
		return err
	}
	if opts.Output == outputJSON {
		return printValue(opts, p.Redacted())
	}
	showYAML := *opts
	showYAML.Output = outputYAML
	return printValue(&showYAML, p.Redacted())
}

// runConfigInit validates and saves the effective profile.
func runConfigInit(opts *ConfigInitOptions) error {
	path := profilePath(opts.GlobalOptions)
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("profile %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}

	// the old file, if any, does not contribute
	p, err := config.LoadEnv()
	if err != nil {
		return err
	}
	applyFlags(opts.GlobalOptions, p)
	if err := p.Validate(); err != nil {
		return err
	}
	if err := p.Save(path); err != nil {
		return err
	}

	logger.Debug("Saved profile to %s", path)
	fmt.Fprintf(opts.out, "Profile written to %s\n", path)
	return nil
}
