package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer"
)

// AMLOptions holds options shared by the aml subcommands
type AMLOptions struct {
	*GlobalOptions

	Country  string
	DOB      string
	Database string
	Entity   string
}

// NewAMLCommand creates the aml command group.
//
// Usage:
//
//	idanalyzer aml name NAME [--country CC] [--dob YYYY-MM-DD] [--database DBS] [--entity person|legalentity]
//	idanalyzer aml id NUMBER [...]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command with the AML subcommands
func NewAMLCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &AMLOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "aml",
		Short: "Search AML sanction and PEP lists",
		Long: `Search sanction lists and politically exposed persons by name or by
document number.`,
		Example: `  idanalyzer aml name "John Smith" --country US --dob 1970
  idanalyzer aml id X1234567 --database un_sc,us_ofac`,
	}

	cmd.PersistentFlags().StringVar(&opts.Country, "country", "", "ISO alpha-2 country code")
	cmd.PersistentFlags().StringVar(&opts.DOB, "dob", "", "birthday: YYYY, YYYY-MM or YYYY-MM-DD")
	cmd.PersistentFlags().StringVar(&opts.Database, "database", "", "comma separated database codes (default all)")
	cmd.PersistentFlags().StringVar(&opts.Entity, "entity", "", "person or legalentity (default both)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "name NAME",
			Short: "Search by person or company name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAML(cmd.Context(), opts, func(ctx context.Context, a *idanalyzer.AMLAPI) (idanalyzer.Response, error) {
					return a.SearchByName(ctx, args[0], opts.Country, opts.DOB)
				})
			},
		},
		&cobra.Command{
			Use:   "id NUMBER",
			Short: "Search by passport or ID card number",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAML(cmd.Context(), opts, func(ctx context.Context, a *idanalyzer.AMLAPI) (idanalyzer.Response, error) {
					return a.SearchByIDNumber(ctx, args[0], opts.Country, opts.DOB)
				})
			},
		},
	)

	return cmd
}

// runAML builds an AML client from the profile and flags, runs search and
// prints the result.
func runAML(ctx context.Context, opts *AMLOptions,
	search func(context.Context, *idanalyzer.AMLAPI) (idanalyzer.Response, error)) error {
	p, err := apiProfile(opts.GlobalOptions)
	if err != nil {
		return err
	}

	a, err := idanalyzer.NewAMLAPI(p.APIKey, p.Region, clientOptions(p)...)
	if err != nil {
		return err
	}
	a.ThrowAPIError(p.Strict)
	a.SetAMLDatabase(opts.Database)
	if err := a.SetEntityType(idanalyzer.EntityType(opts.Entity)); err != nil {
		return err
	}

	resp, err := search(ctx, a)
	if err != nil {
		return fmt.Errorf("aml search failed: %w", err)
	}
	return printResult(opts.GlobalOptions, resp)
}
