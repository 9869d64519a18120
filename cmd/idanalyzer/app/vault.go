package app

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer"
)

// VaultListOptions holds options for vault list
type VaultListOptions struct {
	*GlobalOptions

	Filter  []string
	OrderBy string
	Sort    string
	Limit   int
	Offset  int
}

// NewVaultCommand creates the vault command group.
//
// Usage:
//
//	idanalyzer vault list|get|update|delete|add-image|delete-image|search-face|train|train-status
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command with the vault subcommands
func NewVaultCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage documents stored in the vault",
		Long: `List, inspect, update and delete vault entries, manage their images and
search the vault by face.`,
	}

	cmd.AddCommand(
		newVaultListCommand(globalOpts),
		newVaultGetCommand(globalOpts),
		newVaultUpdateCommand(globalOpts),
		newVaultDeleteCommand(globalOpts),
		newVaultAddImageCommand(globalOpts),
		newVaultDeleteImageCommand(globalOpts),
		newVaultSearchFaceCommand(globalOpts),
		newVaultActionCommand(globalOpts, "train", "Train the vault for face search", (*idanalyzer.Vault).TrainFace),
		newVaultActionCommand(globalOpts, "train-status", "Show face search training status", (*idanalyzer.Vault).TrainingStatus),
	)

	return cmd
}

func newVaultListCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &VaultListOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault entries",
		Long: `List vault entries. Filtering, ordering and paging happen on the server.

Output is a table by default; use -o json or -o yaml for the full response.`,
		Example: `  # Latest 10 entries
  idanalyzer vault list

  # Filter and page
  idanalyzer vault list --filter "lastName=SMITH" --filter "createtime>=2024/01/01" --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVaultList(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Filter, "filter", nil,
		fmt.Sprintf("filter statement (repeatable, max %d)", idanalyzer.MaxListFilters))
	cmd.Flags().StringVar(&opts.OrderBy, "order-by", "createtime", "field to sort on")
	cmd.Flags().StringVar(&opts.Sort, "sort", "DESC", "ASC or DESC")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "number of entries")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "entries to skip")

	return cmd
}

func newVaultGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a vault entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.Get(cmd.Context(), args[0])
			})
		},
	}
}

func newVaultUpdateCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "update ID KEY=VALUE...",
		Short:   "Update fields of a vault entry",
		Example: `  idanalyzer vault update 0a1b2c firstName=JANE verified=true`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseKeyValues(args[1:])
			if err != nil {
				return err
			}
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.Update(cmd.Context(), args[0], data)
			})
		},
	}
}

func newVaultDeleteCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete vault entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.Delete(cmd.Context(), args...)
			})
		},
	}
}

func newVaultAddImageCommand(globalOpts *GlobalOptions) *cobra.Command {
	var kind int

	cmd := &cobra.Command{
		Use:   "add-image ID IMAGE",
		Short: "Attach a document or face image to a vault entry",
		Long: `Attach an image to a vault entry. IMAGE is a URL, a local file or base64
content. --type 0 marks a document image, 1 a face image.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.AddImage(cmd.Context(), args[0], args[1], idanalyzer.VaultImageType(kind))
			})
		},
	}
	cmd.Flags().IntVar(&kind, "type", 0, "image type: 0 document, 1 person")

	return cmd
}

func newVaultDeleteImageCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-image ID IMAGE_ID",
		Short: "Remove an image from a vault entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.DeleteImage(cmd.Context(), args[0], args[1])
			})
		},
	}
}

func newVaultSearchFaceCommand(globalOpts *GlobalOptions) *cobra.Command {
	var (
		maxEntry  int
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "search-face IMAGE",
		Short: "Find vault entries matching a face",
		Long: `Search the vault for entries whose face matches IMAGE. The vault must be
trained first with 'idanalyzer vault train'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return v.SearchFace(cmd.Context(), args[0], maxEntry, threshold)
			})
		},
	}
	cmd.Flags().IntVar(&maxEntry, "max-entry", 10, "maximum matches (1-10)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum confidence (0-1]")

	return cmd
}

func newVaultActionCommand(globalOpts *GlobalOptions, use, short string,
	action func(*idanalyzer.Vault, context.Context) (idanalyzer.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withVault(globalOpts, func(v *idanalyzer.Vault) (idanalyzer.Response, error) {
				return action(v, cmd.Context())
			})
		},
	}
}

// newVault builds a Vault client from the profile.
func newVault(opts *GlobalOptions) (*idanalyzer.Vault, error) {
	p, err := apiProfile(opts)
	if err != nil {
		return nil, err
	}
	v, err := idanalyzer.NewVault(p.APIKey, p.Region, clientOptions(p)...)
	if err != nil {
		return nil, err
	}
	v.ThrowAPIError(p.Strict)
	return v, nil
}

// withVault runs one vault action and prints its response.
func withVault(opts *GlobalOptions, fn func(*idanalyzer.Vault) (idanalyzer.Response, error)) error {
	v, err := newVault(opts)
	if err != nil {
		return err
	}
	resp, err := fn(v)
	if err != nil {
		return fmt.Errorf("vault request failed: %w", err)
	}
	return printResult(opts, resp)
}

// runVaultList executes vault list.
//
// Parameters:
//   - ctx: Command context
//   - opts: List options
//
// Returns:
//   - nil on success
//   - error if the filters are invalid or the request fails
func runVaultList(ctx context.Context, opts *VaultListOptions) error {
	v, err := newVault(opts.GlobalOptions)
	if err != nil {
		return err
	}

	resp, err := v.List(ctx, idanalyzer.ListOptions{
		Filter:  opts.Filter,
		OrderBy: opts.OrderBy,
		Sort:    opts.Sort,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
	})
	if err != nil {
		return fmt.Errorf("failed to list vault entries: %w", err)
	}

	if opts.Output != "" && opts.Output != outputTable {
		return printResult(opts.GlobalOptions, resp)
	}
	if apiErr := resp.Err(); apiErr != nil {
		return apiErr
	}
	return printVaultTable(opts.GlobalOptions, resp)
}

// vaultColumns are the entry fields shown by the list table.
var vaultColumns = []struct {
	header string
	field  string
}{
	{"ID", "id"},
	{"FIRST NAME", "firstName"},
	{"LAST NAME", "lastName"},
	{"DOCUMENT", "documentNumber"},
	{"COUNTRY", "issuerOrg_iso2"},
	{"CREATED", "createtime"},
}

// printVaultTable prints the "items" of a list response as a table.
func printVaultTable(opts *GlobalOptions, resp idanalyzer.Response) error {
	items, _ := resp["items"].([]interface{})
	if len(items) == 0 {
		fmt.Fprintln(opts.out, "No vault entries found.")
		return nil
	}

	w := tabwriter.NewWriter(opts.out, 0, 0, 3, ' ', 0)
	for i, col := range vaultColumns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col.header)
	}
	fmt.Fprintln(w)

	for _, item := range items {
		entry, _ := item.(map[string]interface{})
		for i, col := range vaultColumns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell(entry[col.field]))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if total, ok := resp["total"].(float64); ok {
		fmt.Fprintf(opts.out, "\nShowing %d of %s entries\n", len(items), strconv.FormatFloat(total, 'f', -1, 64))
	}
	return nil
}

func cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
