package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsingmao/idanalyzer"
)

// ScanOptions holds options for the scan command
type ScanOptions struct {
	*GlobalOptions

	// Images to send
	Front    string
	Back     string
	Face     string
	Video    string
	Passcode string

	// Accuracy is 0, 1 or 2
	Accuracy int

	// Authenticate selects an authentication module; empty disables it
	Authenticate string

	// Vault stores the result in the vault
	Vault bool

	// Verification checks
	VerifyAge      string
	VerifyDOB      string
	VerifyName     string
	VerifyDocument string
	VerifyExpiry   bool

	// Restrictions
	Country string
	State   string
	Type    string

	// Extra checks
	Dualside bool
	AML      bool

	// CropDocument and CropFace request cropped images in the response
	CropDocument bool
	CropFace     bool

	// Parameters are raw KEY=VALUE API parameters
	Parameters []string
}

// NewScanCommand creates the scan command.
//
// The scan command sends a document, and optionally a face photo or video,
// to the Core API and prints the result.
//
// Usage:
//
//	idanalyzer scan --front IMAGE [--back IMAGE] [--face IMAGE] [--video VIDEO --passcode NNNN]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for scanning documents
func NewScanCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ScanOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan and verify an identity document",
		Long: `Scan a passport, driver license or ID card with the Core API.

Images may be URLs, local files or base64 content. A face photo or a face
video (with its 4 digit passcode) can be added for biometric verification.`,
		Example: `  # Scan the front of a license
  idanalyzer scan --front license.jpg

  # Both sides, face match and authentication
  idanalyzer scan --front front.jpg --back back.jpg --face selfie.png --authenticate quick

  # Video verification with age check
  idanalyzer scan --front id.jpg --video selfie.mp4 --passcode 1234 --verify-age 18-99`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Front, "front", "", "front of the document (required)")
	cmd.Flags().StringVar(&opts.Back, "back", "", "back of the document")
	cmd.Flags().StringVar(&opts.Face, "face", "", "face photo for biometric verification")
	cmd.Flags().StringVar(&opts.Video, "video", "", "face video for biometric verification")
	cmd.Flags().StringVar(&opts.Passcode, "passcode", "", "4 digit passcode spoken in the video")
	cmd.Flags().IntVar(&opts.Accuracy, "accuracy", 2, "OCR accuracy: 0 fast, 1 balanced, 2 accurate")
	cmd.Flags().StringVar(&opts.Authenticate, "authenticate", "", "authentication module: 1, 2 or quick")
	cmd.Flags().BoolVar(&opts.Vault, "vault", true, "save the result in the vault")
	cmd.Flags().StringVar(&opts.VerifyAge, "verify-age", "", "age range, e.g. 18-99")
	cmd.Flags().StringVar(&opts.VerifyDOB, "verify-dob", "", "date of birth, YYYY/MM/DD")
	cmd.Flags().StringVar(&opts.VerifyName, "verify-name", "", "full name")
	cmd.Flags().StringVar(&opts.VerifyDocument, "verify-document-number", "", "document number")
	cmd.Flags().BoolVar(&opts.VerifyExpiry, "verify-expiry", true, "check the expiry date")
	cmd.Flags().StringVar(&opts.Country, "restrict-country", "", "accepted countries, e.g. US,CA")
	cmd.Flags().StringVar(&opts.State, "restrict-state", "", "accepted states, e.g. CA,TX")
	cmd.Flags().StringVar(&opts.Type, "restrict-type", "", "accepted document types, e.g. PDI")
	cmd.Flags().BoolVar(&opts.Dualside, "dualside", false, "check front and back agree")
	cmd.Flags().BoolVar(&opts.AML, "aml", false, "screen the holder against AML databases")
	cmd.Flags().BoolVar(&opts.CropDocument, "crop-document", false, "return the cropped document image")
	cmd.Flags().BoolVar(&opts.CropFace, "crop-face", false, "return the cropped face image")
	cmd.Flags().StringArrayVar(&opts.Parameters, "set", nil, "raw API parameter KEY=VALUE (repeatable)")
	_ = cmd.MarkFlagRequired("front")

	return cmd
}

// runScan executes the scan command logic.
//
// Parameters:
//   - ctx: Command context
//   - opts: Scan command options
//
// Returns:
//   - nil on success
//   - error if configuration is invalid or the scan fails
func runScan(ctx context.Context, opts *ScanOptions) error {
	p, err := apiProfile(opts.GlobalOptions)
	if err != nil {
		return err
	}

	core, err := idanalyzer.NewCoreAPI(p.APIKey, p.Region, clientOptions(p)...)
	if err != nil {
		return err
	}
	core.ThrowAPIError(p.Strict)

	if err := configureCore(core, opts); err != nil {
		return err
	}

	resp, err := core.Scan(ctx, idanalyzer.ScanRequest{
		DocumentPrimary:        opts.Front,
		DocumentSecondary:      opts.Back,
		BiometricPhoto:         opts.Face,
		BiometricVideo:         opts.Video,
		BiometricVideoPasscode: opts.Passcode,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return printResult(opts.GlobalOptions, resp)
}

// configureCore applies the command flags to core.
func configureCore(core *idanalyzer.CoreAPI, opts *ScanOptions) error {
	if err := core.SetAccuracy(opts.Accuracy); err != nil {
		return err
	}
	if opts.Authenticate != "" {
		if err := core.EnableAuthentication(true, idanalyzer.AuthModule(opts.Authenticate)); err != nil {
			return err
		}
	}
	if err := core.VerifyAge(opts.VerifyAge); err != nil {
		return err
	}
	if err := core.VerifyDOB(opts.VerifyDOB); err != nil {
		return err
	}
	if opts.CropDocument || opts.CropFace {
		if err := core.EnableImageOutput(opts.CropDocument, opts.CropFace, idanalyzer.OutputURL); err != nil {
			return err
		}
	}

	core.EnableVault(opts.Vault, false, false, false)
	core.VerifyName(opts.VerifyName)
	core.VerifyDocumentNumber(opts.VerifyDocument)
	core.VerifyExpiry(opts.VerifyExpiry)
	core.RestrictCountry(opts.Country)
	core.RestrictState(opts.State)
	core.RestrictType(opts.Type)
	core.EnableDualsideCheck(opts.Dualside)
	core.EnableAMLCheck(opts.AML)

	return applyParameters(core.SetParameter, opts.Parameters)
}
