package idanalyzer

import (
	"errors"
	"strings"
)

const (
	// EndpointUS is the API base for the US region.
	EndpointUS = "https://api.idanalyzer.com/"

	// EndpointEU is the API base for the EU region.
	EndpointEU = "https://api-eu.idanalyzer.com/"

	// RegionUS selects EndpointUS.
	RegionUS = "US"

	// RegionEU selects EndpointEU.
	RegionEU = "EU"
)

var errNoRegion = errors.New("please set an API region (US, EU)")

// ResolveEndpoint maps a region code to an API base URL.
//
// "US" and "EU" are matched case-insensitively. Any other non-empty value is
// returned verbatim so callers can target staging hosts or test servers.
//
// Example:
//
//	base, _ := idanalyzer.ResolveEndpoint("eu")
//	// base == "https://api-eu.idanalyzer.com/"
func ResolveEndpoint(region string) (string, error) {
	return resolveEndpoint(region, "")
}

// resolveEndpoint appends suffix to the regional hosts only. Custom
// endpoints are never rewritten.
func resolveEndpoint(region, suffix string) (string, error) {
	if region == "" {
		return "", invalidArgument("%v", errNoRegion)
	}
	switch strings.ToUpper(region) {
	case RegionUS:
		return EndpointUS + suffix, nil
	case RegionEU:
		return EndpointEU + suffix, nil
	default:
		return region, nil
	}
}

// joinEndpoint appends an API path to a base URL, inserting a single slash
// when the base does not end with one.
func joinEndpoint(base, path string) string {
	if path == "" {
		return base
	}
	if strings.HasSuffix(base, "/") {
		return base + path
	}
	return base + "/" + path
}
