package idanalyzer

import (
	"context"
	"net/url"
	"strconv"
)

// DocuPass creates hosted identity verification and contract signing
// sessions.
//
// Users verify themselves on a DocuPass page opened in an iframe, a mobile
// browser or a redirect. Results are delivered to the callback URL and can be
// checked against the server with Validate.
type DocuPass struct {
	client
	paramTable
}

// docuPassDefaults returns the defaults for a company. The company name
// survives ResetConfig because it is part of the defaults.
func docuPassDefaults(companyName string) func() Params {
	return func() Params {
		return Params{
			"companyname":           companyName,
			"callbackurl":           "",
			"biometric":             0,
			"authenticate_minscore": 0,
			"authenticate_module":   string(AuthModuleV2),
			"maxattempt":            1,
			"documenttype":          "",
			"documentcountry":       "",
			"documentregion":        "",
			"dualsidecheck":         false,
			"verify_expiry":         false,
			"verify_documentno":     "",
			"verify_name":           "",
			"verify_dob":            "",
			"verify_age":            "",
			"verify_address":        "",
			"verify_postcode":       "",
			"successredir":          "",
			"failredir":             "",
			"customid":              "",
			"vault_save":            true,
			"return_documentimage":  true,
			"return_faceimage":      true,
			"return_type":           int(CallbackImageURL),
			"qr_color":              "",
			"qr_bgcolor":            "",
			"qr_size":               "",
			"qr_margin":             "",
			"welcomemessage":        "",
			"nobranding":            "",
			"logo":                  "",
			"language":              "",
			"biometric_threshold":   0.4,
			"reusable":              false,
			"aml_check":             false,
			"aml_strict_match":      false,
			"aml_database":          "",
			"phoneverification":     false,
			"verify_phone":          "",
			"sms_verification_link": "",
			"customhtmlurl":         "",
			"contract_generate":     "",
			"contract_sign":         "",
			"contract_format":       "",
			"contract_prefill_data": "",
			"sms_contract_link":     "",
		}
	}
}

// NewDocuPass creates a DocuPass client.
//
// Parameters:
//   - apiKey: Your API key (required)
//   - companyName: Shown to users on the verification page (required)
//   - region: "US", "EU" or a custom endpoint URL (required)
//   - opts: Optional HTTP settings
//
// Example:
//
//	dp, err := idanalyzer.NewDocuPass(apiKey, "My Company", "EU")
//	if err != nil {
//	    return err
//	}
//	dp.SetCustomID(userID)
//	session, err := dp.CreateMobile(ctx)
func NewDocuPass(apiKey, companyName, region string, opts ...Option) (*DocuPass, error) {
	if companyName == "" {
		return nil, invalidArgument("please provide your company name")
	}
	c, err := newClient(apiKey, region, "", opts)
	if err != nil {
		return nil, err
	}
	return &DocuPass{
		client:     c,
		paramTable: newParamTable(docuPassDefaults(companyName)),
	}, nil
}

// ResetConfig restores every setting to its default. The API key, region,
// error mode and company name are kept.
func (d *DocuPass) ResetConfig() {
	d.reset()
}

// SetMaxAttempt sets how many verification attempts a user gets, 1 to 10.
func (d *DocuPass) SetMaxAttempt(attempts int) error {
	if attempts < 1 || attempts > 10 {
		return invalidArgument("invalid max attempt, please specify integer between 1 to 10")
	}
	d.set(Params{"maxattempt": attempts})
	return nil
}

// SetCustomID sets a string returned in the callback and appended to the
// redirection URLs. Use it to identify your user.
func (d *DocuPass) SetCustomID(customID string) {
	d.set(Params{"customid": customID})
}

// SetWelcomeMessage shows a custom message when verification starts.
func (d *DocuPass) SetWelcomeMessage(message string) {
	d.set(Params{"welcomemessage": message})
}

// SetLogo replaces the footer logo with the image at logoURL.
func (d *DocuPass) SetLogo(logoURL string) {
	d.set(Params{"logo": logoURL})
}

// HideBrandingLogo hides all branding logos.
func (d *DocuPass) HideBrandingLogo(hidden bool) {
	d.set(Params{"nobranding": hidden})
}

// SetCustomHTMLURL replaces the page content with your own HTML and CSS.
func (d *DocuPass) SetCustomHTMLURL(htmlURL string) {
	d.set(Params{"customhtmlurl": htmlURL})
}

// SetLanguage overrides the automatically detected page language.
func (d *DocuPass) SetLanguage(language string) {
	d.set(Params{"language": language})
}

// SetCallbackURL sets the webhook receiving verification results. Empty
// disables the callback.
func (d *DocuPass) SetCallbackURL(callbackURL string) error {
	if err := checkURL("callback URL", callbackURL); err != nil {
		return err
	}
	d.set(Params{"callbackurl": callbackURL})
	return nil
}

// SetRedirectionURL sends the browser to successURL or failURL once
// verification ends. The reference code and custom ID are appended as query
// parameters. Either may be empty.
func (d *DocuPass) SetRedirectionURL(successURL, failURL string) error {
	if err := checkURL("success URL", successURL); err != nil {
		return err
	}
	if err := checkURL("fail URL", failURL); err != nil {
		return err
	}
	d.set(Params{
		"successredir": successURL,
		"failredir":    failURL,
	})
	return nil
}

// EnableAuthentication rejects documents scoring below minimumScore, in
// (0, 1], on authenticity. Disabling resets the minimum score to 0 and
// leaves the module unchanged.
func (d *DocuPass) EnableAuthentication(enabled bool, module AuthModule, minimumScore float64) error {
	if !enabled {
		d.set(Params{"authenticate_minscore": 0})
		return nil
	}
	if err := checkScore("minimum score", minimumScore); err != nil {
		return err
	}
	if err := checkAuthModule(module); err != nil {
		return err
	}
	d.set(Params{
		"authenticate_module":   string(module),
		"authenticate_minscore": minimumScore,
	})
	return nil
}

// EnableFaceVerification asks users for a selfie photo or video, matched
// against the document with the given threshold in (0, 1].
func (d *DocuPass) EnableFaceVerification(enabled bool, kind BiometricType, threshold float64) error {
	if !enabled {
		d.set(Params{"biometric": 0})
		return nil
	}
	if kind != BiometricPhoto && kind != BiometricVideo {
		return invalidArgument("invalid verification type, 1 for photo verification, 2 for video verification")
	}
	if err := checkScore("threshold value", threshold); err != nil {
		return err
	}
	d.set(Params{
		"biometric":           int(kind),
		"biometric_threshold": threshold,
	})
	return nil
}

// SetReusable lets several users verify through the same URL. Each gets a
// new reference code.
func (d *DocuPass) SetReusable(reusable bool) {
	d.set(Params{"reusable": reusable})
}

// SetCallbackImage controls whether uploaded document and face images are
// included in the callback, and how they are encoded.
func (d *DocuPass) SetCallbackImage(documentImage, faceImage bool, returnType CallbackImageType) error {
	if returnType != CallbackImageBase64 && returnType != CallbackImageURL {
		return invalidArgument("invalid callback image type, 0 for base64, 1 for URL")
	}
	d.set(Params{
		"return_documentimage": documentImage,
		"return_faceimage":     faceImage,
		"return_type":          int(returnType),
	})
	return nil
}

// SetQRCodeFormat styles the QR code shown for mobile sessions. Colors are
// hex codes such as "000000" or "#FFF". size ranges 1 to 50 and margin 0 to
// 50.
func (d *DocuPass) SetQRCodeFormat(foreground, background string, size, margin int) error {
	if err := checkHexColor("foreground", foreground); err != nil {
		return err
	}
	if err := checkHexColor("background", background); err != nil {
		return err
	}
	if size < 1 || size > 50 {
		return invalidArgument("invalid image size (1-50)")
	}
	if margin < 0 || margin > 50 {
		return invalidArgument("invalid margin (0-50)")
	}
	d.set(Params{
		"qr_color":   foreground,
		"qr_bgcolor": background,
		"qr_size":    size,
		"qr_margin":  margin,
	})
	return nil
}

// EnableDualsideCheck verifies that front and back of a document agree.
func (d *DocuPass) EnableDualsideCheck(enabled bool) {
	d.set(Params{"dualsidecheck": enabled})
}

// EnableAMLCheck screens the user against AML databases.
func (d *DocuPass) EnableAMLCheck(enabled bool) {
	d.set(Params{"aml_check": enabled})
}

// SetAMLDatabase limits AML screening to comma separated database codes.
func (d *DocuPass) SetAMLDatabase(databases string) {
	d.set(Params{"aml_database": databases})
}

// EnableAMLStrictMatch only reports AML entities whose nationality and
// birthday also match.
func (d *DocuPass) EnableAMLStrictMatch(enabled bool) {
	d.set(Params{"aml_strict_match": enabled})
}

// EnablePhoneVerification asks the user for a phone number to verify.
func (d *DocuPass) EnablePhoneVerification(enabled bool) {
	d.set(Params{"phoneverification": enabled})
}

// SMSVerificationLink texts the verification link to mobileNumber. Each SMS
// costs one quota.
func (d *DocuPass) SMSVerificationLink(mobileNumber string) {
	d.set(Params{"sms_verification_link": mobileNumber})
}

// SMSContractLink texts the contract signing link to mobileNumber. Each SMS
// costs one quota.
func (d *DocuPass) SMSContractLink(mobileNumber string) {
	d.set(Params{"sms_contract_link": mobileNumber})
}

// VerifyPhone verifies the given phone number. The user cannot change it.
func (d *DocuPass) VerifyPhone(phoneNumber string) {
	d.set(Params{"verify_phone": phoneNumber})
}

// VerifyExpiry checks the document expiry date.
func (d *DocuPass) VerifyExpiry(enabled bool) {
	d.set(Params{"verify_expiry": enabled})
}

// VerifyDocumentNumber checks the document or personal number. Empty clears.
func (d *DocuPass) VerifyDocumentNumber(documentNumber string) {
	d.set(Params{"verify_documentno": documentNumber})
}

// VerifyName checks the holder's full name. Empty clears.
func (d *DocuPass) VerifyName(fullName string) {
	d.set(Params{"verify_name": fullName})
}

// VerifyDOB checks the date of birth, formatted YYYY/MM/DD. Empty clears.
func (d *DocuPass) VerifyDOB(dob string) error {
	if err := checkDOB(dob); err != nil {
		return err
	}
	d.set(Params{"verify_dob": dob})
	return nil
}

// VerifyAge checks the holder's age is within a range such as "18-99".
func (d *DocuPass) VerifyAge(ageRange string) error {
	if err := checkAgeRange(ageRange); err != nil {
		return err
	}
	d.set(Params{"verify_age": ageRange})
	return nil
}

// VerifyAddress checks the address. Empty clears.
func (d *DocuPass) VerifyAddress(address string) {
	d.set(Params{"verify_address": address})
}

// VerifyPostcode checks the postcode. Empty clears.
func (d *DocuPass) VerifyPostcode(postcode string) {
	d.set(Params{"verify_postcode": postcode})
}

// RestrictCountry accepts only documents from the given comma separated
// countries.
func (d *DocuPass) RestrictCountry(countryCodes string) {
	d.set(Params{"documentcountry": countryCodes})
}

// RestrictState accepts only documents from the given comma separated
// states.
func (d *DocuPass) RestrictState(states string) {
	d.set(Params{"documentregion": states})
}

// RestrictType accepts only the given document types, e.g. "DIP".
func (d *DocuPass) RestrictType(documentType string) {
	d.set(Params{"documenttype": documentType})
}

// EnableVault stores uploaded documents in the vault.
func (d *DocuPass) EnableVault(enabled bool) {
	d.set(Params{"vault_save": enabled})
}

// GenerateContract produces a legal document from the verified user's data.
// It cancels a previous SignContract.
func (d *DocuPass) GenerateContract(templateID string, format ContractFormat, prefill map[string]interface{}) error {
	kv, err := contractParams(templateID, format, prefill)
	if err != nil {
		return err
	}
	kv["contract_sign"] = ""
	kv["contract_generate"] = templateID
	d.set(kv)
	return nil
}

// SignContract has the user review and sign an autofilled document after
// verification succeeds. It cancels a previous GenerateContract.
func (d *DocuPass) SignContract(templateID string, format ContractFormat, prefill map[string]interface{}) error {
	kv, err := contractParams(templateID, format, prefill)
	if err != nil {
		return err
	}
	kv["contract_generate"] = ""
	kv["contract_sign"] = templateID
	d.set(kv)
	return nil
}

// CreateIframe creates a session for embedding in a web page as an iframe.
func (d *DocuPass) CreateIframe(ctx context.Context) (Response, error) {
	return d.create(ctx, ModuleIframe)
}

// CreateMobile creates a session to open on a phone or inside a mobile app.
func (d *DocuPass) CreateMobile(ctx context.Context) (Response, error) {
	return d.create(ctx, ModuleMobile)
}

// CreateRedirection creates a session to open in any browser.
func (d *DocuPass) CreateRedirection(ctx context.Context) (Response, error) {
	return d.create(ctx, ModuleRedirection)
}

// CreateLiveMobile creates a DocuPass Live Mobile session.
func (d *DocuPass) CreateLiveMobile(ctx context.Context) (Response, error) {
	return d.create(ctx, ModuleLiveMobile)
}

// Create creates a session of the given module. The Create* methods are
// shorthands for it.
func (d *DocuPass) Create(ctx context.Context, module DocuPassModule) (Response, error) {
	if module < ModuleIframe || module > ModuleLiveMobile {
		return nil, invalidArgument("invalid DocuPass module %d", int(module))
	}
	return d.create(ctx, module)
}

func (d *DocuPass) create(ctx context.Context, module DocuPassModule) (Response, error) {
	form, err := d.form()
	if err != nil {
		return nil, err
	}
	form.Set("type", strconv.Itoa(int(module)))
	return d.post(ctx, "docupass/create", form)
}

// CreateSignature creates a session where the user reviews and signs a
// document without identity verification.
//
// The contract arguments apply to this request only and do not change the
// stored settings. Values set with SetParameter still take precedence.
func (d *DocuPass) CreateSignature(ctx context.Context, templateID string, format ContractFormat, prefill map[string]interface{}) (Response, error) {
	kv, err := contractParams(templateID, format, prefill)
	if err != nil {
		return nil, err
	}
	kv["template_id"] = templateID

	form, err := d.formWith(kv)
	if err != nil {
		return nil, err
	}
	return d.post(ctx, "docupass/sign", form)
}

// Validate checks a callback's reference and hash against the server to
// detect spoofed callbacks. It reports the server's "success" field.
//
// The error mode set with ThrowAPIError does not apply: an API error simply
// yields false.
func (d *DocuPass) Validate(ctx context.Context, reference, hash string) (bool, error) {
	if reference == "" || hash == "" {
		return false, invalidArgument("reference and hash required")
	}
	form := url.Values{}
	form.Set("reference", reference)
	form.Set("hash", hash)

	silent := d.client
	silent.throwAPIError = false
	resp, err := silent.post(ctx, "docupass/validate", form)
	if err != nil {
		return false, err
	}
	return resp.Bool("success"), nil
}
