// Package idanalyzer is a client for the ID Analyzer identity verification
// API.
//
// The package exposes four clients, one per API family:
//
//   - [CoreAPI]: scan and authenticate a passport, driver license or ID card,
//     optionally with face or video biometric verification.
//   - [DocuPass]: create hosted verification and signature sessions, and
//     validate callbacks received from them.
//   - [Vault]: list, read, update and delete stored verification entries and
//     search them by face.
//   - [AMLAPI]: screen names and document numbers against sanctions and PEP
//     lists.
//
// Each client owns a parameter table pre-filled with defaults. Setter methods
// validate their arguments before touching the table, so a failed call leaves
// the previous configuration intact. Action methods build a fresh request from
// the table, send a single form-encoded POST and return the decoded JSON.
//
// # Regions
//
// Clients are created with a region code. "US" and "EU" (any case) select the
// provider's regional hosts. Any other non-empty string is used verbatim as
// the endpoint, which lets tests point a client at an httptest server:
//
//	srv := httptest.NewServer(handler)
//	core, err := idanalyzer.NewCoreAPI("key", srv.URL)
//
// # Error Handling
//
// Three kinds of failure are reported:
//
//   - Argument validation failures wrap [ErrInvalidArgument] and are returned
//     before any network traffic.
//   - Non-2xx responses are returned as [*HTTPError]; network failures are
//     returned wrapped. Both happen regardless of mode.
//   - Errors reported by the API inside a successful response. By default the
//     decoded [Response] is returned as-is and [Response.Err] exposes the
//     error. After ThrowAPIError(true) the call returns an [*APIError]
//     instead.
//
// Use errors.Is and errors.As to tell them apart:
//
//	resp, err := core.Scan(ctx, idanalyzer.ScanRequest{DocumentPrimary: "id.jpg"})
//	var apiErr *idanalyzer.APIError
//	switch {
//	case errors.Is(err, idanalyzer.ErrInvalidArgument):
//	    // fix the input
//	case errors.As(err, &apiErr):
//	    fmt.Println(apiErr.Code, apiErr.Message)
//	}
//
// # Thread Safety
//
// Clients are not safe for concurrent mutation. Setters and actions on a
// single instance must be serialized by the caller. Separate instances share
// nothing.
package idanalyzer
