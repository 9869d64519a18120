package idanalyzer

import (
	"context"
	"net/url"

	"github.com/tsingmao/idanalyzer/internal/media"
)

// CoreAPI scans and validates passports, driver licenses and ID cards.
//
// Create one with NewCoreAPI, adjust it with the setter methods and call
// Scan. Settings persist across scans until changed or ResetConfig is called.
type CoreAPI struct {
	client
	paramTable
}

// coreDefaults returns a fresh copy of the default Core API settings.
func coreDefaults() Params {
	return Params{
		"accuracy":               2,
		"authenticate":           false,
		"authenticate_module":    string(AuthModuleV1),
		"ocr_scaledown":          2000,
		"outputimage":            false,
		"outputface":             false,
		"outputmode":             string(OutputURL),
		"dualsidecheck":          false,
		"verify_expiry":          true,
		"verify_documentno":      "",
		"verify_name":            "",
		"verify_dob":             "",
		"verify_age":             "",
		"verify_address":         "",
		"verify_postcode":        "",
		"country":                "",
		"region":                 "",
		"type":                   "",
		"checkblocklist":         "",
		"vault_save":             true,
		"vault_saveunrecognized": "",
		"vault_noduplicate":      "",
		"vault_automerge":        "",
		"vault_customdata1":      "",
		"vault_customdata2":      "",
		"vault_customdata3":      "",
		"vault_customdata4":      "",
		"vault_customdata5":      "",
		"barcodemode":            false,
		"biometric_threshold":    0.4,
		"aml_check":              false,
		"aml_strict_match":       false,
		"aml_database":           "",
		"contract_generate":      "",
		"contract_format":        "",
		"contract_prefill_data":  "",
	}
}

// NewCoreAPI creates a Core API client.
//
// Parameters:
//   - apiKey: Your API key (required)
//   - region: "US", "EU" or a custom endpoint URL (required)
//   - opts: Optional HTTP settings
//
// Returns:
//   - A configured CoreAPI with default settings
//   - An error wrapping ErrInvalidArgument if apiKey or region is empty
//
// Example:
//
//	core, err := idanalyzer.NewCoreAPI(apiKey, "US")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	core.EnableAuthentication(true, idanalyzer.AuthModuleQuick)
//	resp, err := core.Scan(ctx, idanalyzer.ScanRequest{DocumentPrimary: "id.jpg"})
func NewCoreAPI(apiKey, region string, opts ...Option) (*CoreAPI, error) {
	c, err := newClient(apiKey, region, "", opts)
	if err != nil {
		return nil, err
	}
	return &CoreAPI{
		client:     c,
		paramTable: newParamTable(coreDefaults),
	}, nil
}

// ResetConfig restores every setting to its default. The API key, region
// and error mode are kept.
func (c *CoreAPI) ResetConfig() {
	c.reset()
}

// SetAccuracy sets the OCR accuracy: 0 fast, 1 balanced, 2 accurate.
func (c *CoreAPI) SetAccuracy(accuracy int) error {
	if accuracy < 0 || accuracy > 2 {
		return invalidArgument("invalid accuracy, 0, 1 or 2 accepted")
	}
	c.set(Params{"accuracy": accuracy})
	return nil
}

// EnableAuthentication turns document authenticity checking on or off and
// selects the authentication module. The module is validated and stored
// only when enabling.
func (c *CoreAPI) EnableAuthentication(enabled bool, module AuthModule) error {
	if !enabled {
		c.set(Params{"authenticate": false})
		return nil
	}
	if err := checkAuthModule(module); err != nil {
		return err
	}
	c.set(Params{
		"authenticate":        true,
		"authenticate_module": string(module),
	})
	return nil
}

// SetOCRImageResize scales large images down before OCR. maxScale is 0 to
// disable resizing, or a value between 500 and 4000.
func (c *CoreAPI) SetOCRImageResize(maxScale int) error {
	if maxScale != 0 && (maxScale < 500 || maxScale > 4000) {
		return invalidArgument("invalid scale value, 0, or 500 to 4000 accepted")
	}
	c.set(Params{"ocr_scaledown": maxScale})
	return nil
}

// SetBiometricThreshold sets the minimum confidence, in (0, 1], for two faces
// to be considered identical. Higher is stricter.
func (c *CoreAPI) SetBiometricThreshold(threshold float64) error {
	if err := checkScore("threshold value", threshold); err != nil {
		return err
	}
	c.set(Params{"biometric_threshold": threshold})
	return nil
}

// EnableImageOutput requests cropped document and/or face images in the
// response, in the given format.
func (c *CoreAPI) EnableImageOutput(cropDocument, cropFace bool, format OutputFormat) error {
	if format != OutputURL && format != OutputBase64 {
		return invalidArgument("invalid output format, 'url' or 'base64' accepted")
	}
	c.set(Params{
		"outputimage": cropDocument,
		"outputface":  cropFace,
		"outputmode":  string(format),
	})
	return nil
}

// EnableAMLCheck screens the document holder against AML databases.
func (c *CoreAPI) EnableAMLCheck(enabled bool) {
	c.set(Params{"aml_check": enabled})
}

// SetAMLDatabase limits AML screening to comma separated database codes.
// An empty string checks every database.
func (c *CoreAPI) SetAMLDatabase(databases string) {
	c.set(Params{"aml_database": databases})
}

// EnableAMLStrictMatch only reports AML entities whose nationality and
// birthday also match.
func (c *CoreAPI) EnableAMLStrictMatch(enabled bool) {
	c.set(Params{"aml_strict_match": enabled})
}

// EnableDualsideCheck verifies that front and back of a document agree.
// A mismatch is reported as API error 14.
func (c *CoreAPI) EnableDualsideCheck(enabled bool) {
	c.set(Params{"dualsidecheck": enabled})
}

// VerifyExpiry checks the document expiry date.
func (c *CoreAPI) VerifyExpiry(enabled bool) {
	c.set(Params{"verify_expiry": enabled})
}

// VerifyDocumentNumber checks the document or personal number. Empty clears.
func (c *CoreAPI) VerifyDocumentNumber(documentNumber string) {
	c.set(Params{"verify_documentno": documentNumber})
}

// VerifyName checks the holder's full name. Empty clears.
func (c *CoreAPI) VerifyName(fullName string) {
	c.set(Params{"verify_name": fullName})
}

// VerifyDOB checks the date of birth, formatted YYYY/MM/DD. Empty clears.
func (c *CoreAPI) VerifyDOB(dob string) error {
	if err := checkDOB(dob); err != nil {
		return err
	}
	c.set(Params{"verify_dob": dob})
	return nil
}

// VerifyAge checks the holder's age is within a range such as "18-40".
// Empty clears.
func (c *CoreAPI) VerifyAge(ageRange string) error {
	if err := checkAgeRange(ageRange); err != nil {
		return err
	}
	c.set(Params{"verify_age": ageRange})
	return nil
}

// VerifyAddress checks the address. Empty clears.
func (c *CoreAPI) VerifyAddress(address string) {
	c.set(Params{"verify_address": address})
}

// VerifyPostcode checks the postcode. Empty clears.
func (c *CoreAPI) VerifyPostcode(postcode string) {
	c.set(Params{"verify_postcode": postcode})
}

// RestrictCountry accepts only documents issued by the given comma separated
// ISO alpha-2 countries, e.g. "US,CA". Others fail with API error 10.
func (c *CoreAPI) RestrictCountry(countryCodes string) {
	c.set(Params{"country": countryCodes})
}

// RestrictState accepts only documents issued by the given comma separated
// states, e.g. "CA,TX". Others fail with API error 11.
func (c *CoreAPI) RestrictState(states string) {
	c.set(Params{"region": states})
}

// RestrictType accepts only the given document types: P passport, D driver
// license, I identity card, e.g. "PD". Others fail with API error 12.
func (c *CoreAPI) RestrictType(documentType string) {
	c.set(Params{"type": documentType})
}

// EnableBarcodeMode disables visual OCR and reads AAMVA barcodes only.
func (c *CoreAPI) EnableBarcodeMode(enabled bool) {
	c.set(Params{"barcodemode": enabled})
}

// EnableVault stores the document image and parsed data in the vault.
func (c *CoreAPI) EnableVault(enabled, saveUnrecognized, noDuplicateImage, autoMergeDocument bool) {
	c.set(Params{
		"vault_save":             enabled,
		"vault_saveunrecognized": saveUnrecognized,
		"vault_noduplicate":      noDuplicateImage,
		"vault_automerge":        autoMergeDocument,
	})
}

// SetVaultData attaches up to five custom strings to the vault entry.
// Missing positions are cleared.
func (c *CoreAPI) SetVaultData(data ...string) error {
	if len(data) > 5 {
		return invalidArgument("at most 5 custom data fields accepted, got %d", len(data))
	}
	kv := Params{}
	for i := 0; i < 5; i++ {
		value := ""
		if i < len(data) {
			value = data[i]
		}
		kv["vault_customdata"+string(rune('1'+i))] = value
	}
	c.set(kv)
	return nil
}

// GenerateContract fills a contract template with data read from the
// document. prefill supplies extra template fields and may be nil.
func (c *CoreAPI) GenerateContract(templateID string, format ContractFormat, prefill map[string]interface{}) error {
	kv, err := contractParams(templateID, format, prefill)
	if err != nil {
		return err
	}
	kv["contract_generate"] = templateID
	c.set(kv)
	return nil
}

// ScanRequest names the images for a Core API scan. Each image is a URL, a
// local file path, or base64 content longer than 100 characters.
type ScanRequest struct {
	// DocumentPrimary is the front of the document. Required.
	DocumentPrimary string

	// DocumentSecondary is the back of the document.
	DocumentSecondary string

	// BiometricPhoto is a face photo to compare with the document.
	BiometricPhoto string

	// BiometricVideo is a face video to compare with the document.
	BiometricVideo string

	// BiometricVideoPasscode is the 4 digit number spoken in the video.
	// Required with BiometricVideo.
	BiometricVideoPasscode string
}

// scanImages maps each ScanRequest image to its URL and base64 field names.
var scanImages = []struct {
	label     string
	urlField  string
	dataField string
	value     func(ScanRequest) string
}{
	{"primary document image", "url", "file_base64", func(r ScanRequest) string { return r.DocumentPrimary }},
	{"secondary document image", "url_back", "file_back_base64", func(r ScanRequest) string { return r.DocumentSecondary }},
	{"face image", "faceurl", "face_base64", func(r ScanRequest) string { return r.BiometricPhoto }},
	{"face video", "videourl", "video_base64", func(r ScanRequest) string { return r.BiometricVideo }},
}

// Scan sends a document, and optionally face images or video, to the Core
// API and returns the scan and verification result.
//
// All arguments are validated and all local files read before the request
// is sent.
//
// Example:
//
//	resp, err := core.Scan(ctx, idanalyzer.ScanRequest{
//	    DocumentPrimary: "id_front.jpg",
//	    BiometricPhoto:  "selfie.png",
//	})
//	if err != nil {
//	    return err
//	}
//	if result := resp.Map("result"); result != nil {
//	    fmt.Println(result["firstName"], result["lastName"])
//	}
func (c *CoreAPI) Scan(ctx context.Context, req ScanRequest) (Response, error) {
	if req.DocumentPrimary == "" {
		return nil, invalidArgument("primary document image required")
	}

	form, err := c.form()
	if err != nil {
		return nil, err
	}

	for _, img := range scanImages {
		value := img.value(req)
		if value == "" {
			continue
		}
		if err := setMedia(form, value, img.urlField, img.dataField, img.label); err != nil {
			return nil, err
		}
	}

	if req.BiometricVideo != "" {
		if !media.IsPasscode(req.BiometricVideoPasscode) {
			return nil, invalidArgument("please provide a 4 digit passcode for video biometric verification")
		}
		form.Set("passcode", req.BiometricVideoPasscode)
	}

	return c.post(ctx, "", form)
}

// setMedia resolves value and stores it in form under urlField or dataField.
func setMedia(form url.Values, value, urlField, dataField, label string) error {
	src, err := media.Resolve(value)
	if err != nil {
		return invalidArgument("invalid %s, %v", label, err)
	}
	form.Set(src.Field(urlField, dataField), src.Value)
	return nil
}
