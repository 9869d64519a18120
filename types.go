package idanalyzer

// AuthModule selects the document authentication engine.
type AuthModule string

const (
	// AuthModuleV1 is authentication module version 1.
	AuthModuleV1 AuthModule = "1"
	// AuthModuleV2 is authentication module version 2.
	AuthModuleV2 AuthModule = "2"
	// AuthModuleQuick is the fast, less thorough module.
	AuthModuleQuick AuthModule = "quick"
)

func (m AuthModule) valid() bool {
	return m == AuthModuleV1 || m == AuthModuleV2 || m == AuthModuleQuick
}

// OutputFormat is the format of cropped document and face images.
type OutputFormat string

const (
	OutputURL    OutputFormat = "url"
	OutputBase64 OutputFormat = "base64"
)

// ContractFormat is the file format of a generated contract.
type ContractFormat string

const (
	ContractPDF  ContractFormat = "PDF"
	ContractDOCX ContractFormat = "DOCX"
	ContractHTML ContractFormat = "HTML"
)

func (f ContractFormat) valid() bool {
	return f == ContractPDF || f == ContractDOCX || f == ContractHTML
}

// DocuPassModule is the kind of DocuPass verification session.
type DocuPassModule int

const (
	// ModuleIframe is a session meant to be embedded in an iframe.
	ModuleIframe DocuPassModule = 0
	// ModuleMobile is a session opened on a phone or inside a mobile app.
	ModuleMobile DocuPassModule = 1
	// ModuleRedirection is a session opened in any browser, redirecting back
	// afterwards.
	ModuleRedirection DocuPassModule = 2
	// ModuleLiveMobile is a DocuPass Live Mobile session.
	ModuleLiveMobile DocuPassModule = 3
)

// String implements fmt.Stringer.
func (m DocuPassModule) String() string {
	switch m {
	case ModuleIframe:
		return "iframe"
	case ModuleMobile:
		return "mobile"
	case ModuleRedirection:
		return "redirection"
	case ModuleLiveMobile:
		return "live-mobile"
	default:
		return "unknown"
	}
}

// BiometricType is the DocuPass face verification method.
type BiometricType int

const (
	BiometricPhoto BiometricType = 1
	BiometricVideo BiometricType = 2
)

// CallbackImageType is the encoding of images in DocuPass callbacks.
type CallbackImageType int

const (
	CallbackImageBase64 CallbackImageType = 0
	CallbackImageURL    CallbackImageType = 1
)

// VaultImageType tells whether a vault image shows a document or a person.
type VaultImageType int

const (
	VaultImageDocument VaultImageType = 0
	VaultImagePerson   VaultImageType = 1
)

// EntityType restricts AML results to people or legal entities.
type EntityType string

const (
	EntityAny         EntityType = ""
	EntityPerson      EntityType = "person"
	EntityLegalEntity EntityType = "legalentity"
)

// DefaultAMLDatabases lists every AML source database.
const DefaultAMLDatabases = "au_dfat,ca_dfatd,ch_seco,eu_fsf,fr_tresor_gels_avoir,gb_hmt,ua_sfms,un_sc,us_ofac,eu_cor,eu_meps,global_politicians,interpol_red"
