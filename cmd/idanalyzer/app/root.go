// Package app provides the command-line interface implementation for
// idanalyzer.
//
// This package contains all CLI commands and their implementations, built
// with cobra. Commands are organized hierarchically with a root command and
// one subcommand per API family (scan, docupass, vault, aml) plus local
// helpers (config, version).
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/tsingmao/idanalyzer"
	"github.com/tsingmao/idanalyzer/internal/config"
	"github.com/tsingmao/idanalyzer/internal/logger"
)

const (
	// cliName is the name of the CLI application
	cliName = "idanalyzer"

	// cliDescription is the short description shown in help text
	cliDescription = "idanalyzer - identity document scanning and verification"
)

// Output formats accepted by --output.
const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// ConfigPath is the profile file (default ~/.idanalyzer/config.yaml)
	ConfigPath string

	// APIKey overrides the configured API key
	APIKey string

	// Region overrides the configured region or endpoint
	Region string

	// Strict fails on API-level errors instead of printing the response
	Strict bool

	// Output selects the result format
	Output string

	// Verbose enables debug logging
	Verbose bool

	// out receives command results; set from the cobra command so tests can
	// capture it
	out io.Writer
}

// NewIDAnalyzerCommand creates the root idanalyzer command with all
// subcommands.
//
// The root command provides the main entry point for the CLI. It sets up
// global flags, routes logging to stderr and registers all subcommands.
//
// Returns:
//   - A configured cobra.Command ready for execution
//
// Example:
//
//	cmd := NewIDAnalyzerCommand()
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(1)
//	}
func NewIDAnalyzerCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `idanalyzer is a command-line client for the ID Analyzer API.

It scans passports, driver licenses and ID cards, creates DocuPass
verification sessions, manages documents stored in the vault and searches
AML sanction and PEP lists.

Credentials are read from ~/.idanalyzer/config.yaml, a .env file and
IDANALYZER_* environment variables. Run 'idanalyzer config init' to create
a profile.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			// stdout carries results only
			logger.SetOutput(zapcore.AddSync(cmd.ErrOrStderr()))
			if opts.Verbose {
				logger.SetDebug(true)
			}
			switch opts.Output {
			case "", outputJSON, outputYAML, outputTable:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (json, yaml, table)", opts.Output)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"profile file (default ~/.idanalyzer/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.APIKey, "api-key", "",
		"API key (overrides profile)")
	cmd.PersistentFlags().StringVar(&opts.Region, "region", "",
		"US, EU or a custom endpoint URL (overrides profile)")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false,
		"fail on API errors instead of printing the error response")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "",
		"output format: json, yaml or table")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(
		NewScanCommand(opts),
		NewDocuPassCommand(opts),
		NewVaultCommand(opts),
		NewAMLCommand(opts),
		NewConfigCommand(opts),
		NewVersionCommand(opts),
	)

	return cmd
}

// loadProfile reads the profile and applies the global flag overrides.
//
// Priority, highest first:
//  1. --api-key, --region, --strict, --verbose flags
//  2. IDANALYZER_* environment and .env
//  3. Profile file
//  4. Defaults
func loadProfile(opts *GlobalOptions) (*config.Profile, error) {
	p, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(opts, p)
	return p, nil
}

// applyFlags copies the global flag overrides into p.
func applyFlags(opts *GlobalOptions, p *config.Profile) {
	if opts.APIKey != "" {
		p.APIKey = opts.APIKey
	}
	if opts.Region != "" {
		p.Region = opts.Region
	}
	if opts.Strict {
		p.Strict = true
	}
	if opts.Verbose {
		p.Debug = true
	}
	if p.Debug {
		logger.SetDebug(true)
	}
}

// apiProfile loads and validates the profile for commands that call the API.
func apiProfile(opts *GlobalOptions) (*config.Profile, error) {
	p, err := loadProfile(opts)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w (run 'idanalyzer config init' or set IDANALYZER_API_KEY)", err)
	}
	return p, nil
}

func clientOptions(p *config.Profile) []idanalyzer.Option {
	return []idanalyzer.Option{
		idanalyzer.WithTimeout(p.Timeout),
		idanalyzer.WithUserAgent(idanalyzer.DefaultUserAgent + " (cli)"),
	}
}

// printResult writes resp in the selected format and turns an API error
// carried in the body into a command error.
func printResult(opts *GlobalOptions, resp idanalyzer.Response) error {
	if err := printValue(opts, resp); err != nil {
		return err
	}
	if apiErr := resp.Err(); apiErr != nil {
		return apiErr
	}
	return nil
}

// printValue writes v as YAML when requested, JSON otherwise.
func printValue(opts *GlobalOptions, v interface{}) error {
	if opts.Output == outputYAML {
		enc := yaml.NewEncoder(opts.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(opts.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// parseKeyValues parses KEY=VALUE arguments. Values "true" and "false"
// become booleans; everything else stays a string.
func parseKeyValues(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid KEY=VALUE pair %q", pair)
		}
		switch value {
		case "true":
			out[key] = true
		case "false":
			out[key] = false
		default:
			out[key] = value
		}
	}
	return out, nil
}

// setterFunc is implemented by every client with a parameter table.
type setterFunc func(key string, value interface{})

// applyParameters passes --set KEY=VALUE flags to SetParameter.
func applyParameters(set setterFunc, pairs []string) error {
	kv, err := parseKeyValues(pairs)
	if err != nil {
		return err
	}
	for k, v := range kv {
		set(k, v)
	}
	return nil
}
