package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer"
	"github.com/tsingmao/idanalyzer/internal/logger"
)

// DocuPassOptions holds options shared by the docupass subcommands
type DocuPassOptions struct {
	*GlobalOptions

	// Company overrides the configured company name
	Company string
}

// DocuPassCreateOptions holds options for docupass create
type DocuPassCreateOptions struct {
	*DocuPassOptions

	Module       string
	CustomID     string
	CallbackURL  string
	SuccessURL   string
	FailURL      string
	MaxAttempt   int
	Face         string
	Threshold    float64
	Authenticate string
	MinScore     float64
	VerifyAge    string
	Country      string
	Type         string
	Language     string
	Welcome      string
	Reusable     bool
	Phone        bool
	SMS          string
	Parameters   []string
}

// DocuPassSignOptions holds options for docupass sign
type DocuPassSignOptions struct {
	*DocuPassOptions

	Template string
	Format   string
	Prefill  []string
}

// docuPassModules maps --module values to session types.
var docuPassModules = map[string]idanalyzer.DocuPassModule{
	"iframe":      idanalyzer.ModuleIframe,
	"mobile":      idanalyzer.ModuleMobile,
	"redirection": idanalyzer.ModuleRedirection,
	"live-mobile": idanalyzer.ModuleLiveMobile,
}

// NewDocuPassCommand creates the docupass command group.
//
// Usage:
//
//	idanalyzer docupass create|sign|validate
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command with the DocuPass subcommands
func NewDocuPassCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &DocuPassOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "docupass",
		Short: "Create and validate DocuPass sessions",
		Long: `Create hosted identity verification and contract signing sessions,
and validate DocuPass callbacks.`,
	}

	cmd.PersistentFlags().StringVar(&opts.Company, "company", "",
		"company name shown to users (overrides profile)")

	cmd.AddCommand(
		newDocuPassCreateCommand(opts),
		newDocuPassSignCommand(opts),
		newDocuPassValidateCommand(opts),
	)

	return cmd
}

func newDocuPassCreateCommand(parent *DocuPassOptions) *cobra.Command {
	opts := &DocuPassCreateOptions{DocuPassOptions: parent}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a verification session",
		Long: `Create a DocuPass identity verification session and print its reference
and URL.

A random custom ID is generated when --custom-id is not given so that the
callback can be matched to this invocation.`,
		Example: `  # Mobile session with photo face verification
  idanalyzer docupass create --module mobile --face photo

  # Redirection session for a known user
  idanalyzer docupass create --module redirection --custom-id user-42 \
    --success-url https://example.com/ok --fail-url https://example.com/fail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocuPassCreate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Module, "module", "iframe", "session type: iframe, mobile, redirection or live-mobile")
	cmd.Flags().StringVar(&opts.CustomID, "custom-id", "", "identifier returned in the callback (default random UUID)")
	cmd.Flags().StringVar(&opts.CallbackURL, "callback-url", "", "webhook receiving the result")
	cmd.Flags().StringVar(&opts.SuccessURL, "success-url", "", "redirect after success")
	cmd.Flags().StringVar(&opts.FailURL, "fail-url", "", "redirect after failure")
	cmd.Flags().IntVar(&opts.MaxAttempt, "max-attempt", 1, "verification attempts allowed (1-10)")
	cmd.Flags().StringVar(&opts.Face, "face", "", "face verification: photo or video")
	cmd.Flags().Float64Var(&opts.Threshold, "threshold", 0.4, "face match threshold (0-1]")
	cmd.Flags().StringVar(&opts.Authenticate, "authenticate", "", "authentication module: 1, 2 or quick")
	cmd.Flags().Float64Var(&opts.MinScore, "min-score", 0.3, "minimum authentication score (0-1]")
	cmd.Flags().StringVar(&opts.VerifyAge, "verify-age", "", "age range, e.g. 18-99")
	cmd.Flags().StringVar(&opts.Country, "restrict-country", "", "accepted countries, e.g. US,CA")
	cmd.Flags().StringVar(&opts.Type, "restrict-type", "", "accepted document types, e.g. PDI")
	cmd.Flags().StringVar(&opts.Language, "language", "", "page language, e.g. en")
	cmd.Flags().StringVar(&opts.Welcome, "welcome", "", "welcome message")
	cmd.Flags().BoolVar(&opts.Reusable, "reusable", false, "allow several users on the same URL")
	cmd.Flags().BoolVar(&opts.Phone, "phone", false, "ask the user to verify a phone number")
	cmd.Flags().StringVar(&opts.SMS, "sms", "", "text the verification link to this number")
	cmd.Flags().StringArrayVar(&opts.Parameters, "set", nil, "raw API parameter KEY=VALUE (repeatable)")

	return cmd
}

func newDocuPassSignCommand(parent *DocuPassOptions) *cobra.Command {
	opts := &DocuPassSignOptions{DocuPassOptions: parent}

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Create a contract signing session",
		Long: `Create a DocuPass session where the user reviews and signs a document
generated from a template, without identity verification.`,
		Example: `  idanalyzer docupass sign --template tpl_123 --format PDF --prefill price=100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocuPassSign(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Template, "template", "", "contract template ID (required)")
	cmd.Flags().StringVar(&opts.Format, "format", "PDF", "output format: PDF, DOCX or HTML")
	cmd.Flags().StringArrayVar(&opts.Prefill, "prefill", nil, "template field KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newDocuPassValidateCommand(parent *DocuPassOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate REFERENCE HASH",
		Short: "Check a DocuPass callback against the server",
		Long: `Validate the reference and hash received in a DocuPass callback. The
command prints "valid" or fails with "invalid".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocuPassValidate(cmd.Context(), parent, args[0], args[1])
		},
	}
}

// newDocuPass builds a DocuPass client from the profile.
func newDocuPass(opts *DocuPassOptions) (*idanalyzer.DocuPass, error) {
	p, err := apiProfile(opts.GlobalOptions)
	if err != nil {
		return nil, err
	}
	company := p.CompanyName
	if opts.Company != "" {
		company = opts.Company
	}

	dp, err := idanalyzer.NewDocuPass(p.APIKey, company, p.Region, clientOptions(p)...)
	if err != nil {
		return nil, err
	}
	dp.ThrowAPIError(p.Strict)
	return dp, nil
}

// runDocuPassCreate executes docupass create.
//
// Parameters:
//   - ctx: Command context
//   - opts: Create options
//
// Returns:
//   - nil on success
//   - error if an option is invalid or the request fails
func runDocuPassCreate(ctx context.Context, opts *DocuPassCreateOptions) error {
	module, ok := docuPassModules[strings.ToLower(opts.Module)]
	if !ok {
		return fmt.Errorf("unknown module %q (iframe, mobile, redirection, live-mobile)", opts.Module)
	}

	dp, err := newDocuPass(opts.DocuPassOptions)
	if err != nil {
		return err
	}
	if err := configureDocuPass(dp, opts); err != nil {
		return err
	}

	resp, err := dp.Create(ctx, module)
	if err != nil {
		return fmt.Errorf("failed to create %s session: %w", module, err)
	}
	return printResult(opts.GlobalOptions, resp)
}

// configureDocuPass applies the create flags to dp.
func configureDocuPass(dp *idanalyzer.DocuPass, opts *DocuPassCreateOptions) error {
	customID := opts.CustomID
	if customID == "" {
		customID = uuid.NewString()
		logger.Info("Using generated custom ID %s", customID)
	}
	dp.SetCustomID(customID)

	if err := dp.SetMaxAttempt(opts.MaxAttempt); err != nil {
		return err
	}
	if err := dp.SetCallbackURL(opts.CallbackURL); err != nil {
		return err
	}
	if err := dp.SetRedirectionURL(opts.SuccessURL, opts.FailURL); err != nil {
		return err
	}

	switch strings.ToLower(opts.Face) {
	case "":
	case "photo":
		if err := dp.EnableFaceVerification(true, idanalyzer.BiometricPhoto, opts.Threshold); err != nil {
			return err
		}
	case "video":
		if err := dp.EnableFaceVerification(true, idanalyzer.BiometricVideo, opts.Threshold); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown face verification %q (photo, video)", opts.Face)
	}

	if opts.Authenticate != "" {
		if err := dp.EnableAuthentication(true, idanalyzer.AuthModule(opts.Authenticate), opts.MinScore); err != nil {
			return err
		}
	}
	if err := dp.VerifyAge(opts.VerifyAge); err != nil {
		return err
	}

	dp.RestrictCountry(opts.Country)
	dp.RestrictType(opts.Type)
	dp.SetLanguage(opts.Language)
	dp.SetWelcomeMessage(opts.Welcome)
	dp.SetReusable(opts.Reusable)
	dp.EnablePhoneVerification(opts.Phone)
	dp.SMSVerificationLink(opts.SMS)

	return applyParameters(dp.SetParameter, opts.Parameters)
}

// runDocuPassSign executes docupass sign.
func runDocuPassSign(ctx context.Context, opts *DocuPassSignOptions) error {
	prefill, err := parseKeyValues(opts.Prefill)
	if err != nil {
		return err
	}

	dp, err := newDocuPass(opts.DocuPassOptions)
	if err != nil {
		return err
	}

	format := idanalyzer.ContractFormat(strings.ToUpper(opts.Format))
	resp, err := dp.CreateSignature(ctx, opts.Template, format, prefill)
	if err != nil {
		return fmt.Errorf("failed to create signature session: %w", err)
	}
	return printResult(opts.GlobalOptions, resp)
}

// runDocuPassValidate executes docupass validate.
func runDocuPassValidate(ctx context.Context, opts *DocuPassOptions, reference, hash string) error {
	dp, err := newDocuPass(opts)
	if err != nil {
		return err
	}

	valid, err := dp.Validate(ctx, reference, hash)
	if err != nil {
		return fmt.Errorf("failed to validate callback: %w", err)
	}
	if !valid {
		return fmt.Errorf("invalid: reference %s failed validation", reference)
	}
	fmt.Fprintln(opts.out, "valid")
	return nil
}
