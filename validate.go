package idanalyzer

import (
	"regexp"

	"github.com/tsingmao/idanalyzer/internal/media"
)

var (
	dobPattern      = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2})$`)
	agePattern      = regexp.MustCompile(`^(\d+-\d+)$`)
	hexColorPattern = regexp.MustCompile(`^#?(?:[0-9a-fA-F]{3}){1,2}$`)
	amlDOBPattern   = regexp.MustCompile(`^\d{4}(-\d{2}){0,2}$`)
)

// checkDOB accepts "" (clear) or YYYY/MM/DD.
func checkDOB(dob string) error {
	if dob != "" && !dobPattern.MatchString(dob) {
		return invalidArgument("invalid birthday format (YYYY/MM/DD)")
	}
	return nil
}

// checkAgeRange accepts "" (clear) or minAge-maxAge.
func checkAgeRange(ageRange string) error {
	if ageRange != "" && !agePattern.MatchString(ageRange) {
		return invalidArgument("invalid age range format (minAge-maxAge)")
	}
	return nil
}

func checkHexColor(name, color string) error {
	if !hexColorPattern.MatchString(color) {
		return invalidArgument("invalid %s color HEX code", name)
	}
	return nil
}

// checkScore accepts values in (0, 1].
func checkScore(name string, v float64) error {
	if v <= 0 || v > 1 {
		return invalidArgument("invalid %s, float between 0 to 1 accepted", name)
	}
	return nil
}

func checkURL(name, u string) error {
	if u != "" && !media.IsURL(u) {
		return invalidArgument("invalid URL format for %s", name)
	}
	return nil
}

func checkAuthModule(m AuthModule) error {
	if !m.valid() {
		return invalidArgument("invalid authentication module, 1, 2 or 'quick' accepted")
	}
	return nil
}

// contractParams validates a contract request and returns the shared keys.
// A nil prefill is sent as an empty object.
func contractParams(templateID string, format ContractFormat, prefill map[string]interface{}) (Params, error) {
	if templateID == "" {
		return nil, invalidArgument("invalid template ID")
	}
	if !format.valid() {
		return nil, invalidArgument("invalid contract format %q, PDF, DOCX or HTML accepted", format)
	}
	if prefill == nil {
		prefill = map[string]interface{}{}
	}
	return Params{
		"contract_format":       string(format),
		"contract_prefill_data": prefill,
	}, nil
}
