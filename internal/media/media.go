// Package media classifies image, document and video arguments before they
// are placed into a request payload.
//
// An argument may be a remote URL, a path to a local file, or an already
// base64 encoded payload. Resolve tries those interpretations in that order
// and returns a Source describing which request field the value belongs in.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
)

// InlineThreshold is the length above which an argument that is neither a
// URL nor an existing file is accepted as inline encoded content.
const InlineThreshold = 100

var (
	urlPattern      = regexp.MustCompile(`(http(s)?://)(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_+.~#?&/=]*)`)
	passcodePattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// ErrUnresolvable is returned when an argument is not a URL, not an existing
// file and too short to be inline content.
var ErrUnresolvable = errors.New("file not found or malformed URL")

// Kind tells which interpretation Resolve picked.
type Kind int

const (
	// KindURL means the value is a remote URL sent as-is.
	KindURL Kind = iota
	// KindFile means the value is the base64 encoding of a local file.
	KindFile
	// KindInline means the caller passed encoded content directly.
	KindInline
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindFile:
		return "file"
	case KindInline:
		return "inline"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is a resolved argument.
type Source struct {
	Kind  Kind
	Value string
}

// Field picks the request field name for the source: urlField for URLs,
// dataField for file and inline content.
func (s Source) Field(urlField, dataField string) string {
	if s.Kind == KindURL {
		return urlField
	}
	return dataField
}

// IsURL reports whether s contains something that looks like an http(s) URL
// with a plausible top-level domain.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// IsPasscode reports whether s is exactly four ASCII digits.
func IsPasscode(s string) bool {
	return passcodePattern.MatchString(s)
}

// Resolve classifies input.
//
// The checks run in a fixed order:
//  1. URL pattern match
//  2. existing regular file, read and base64 encoded
//  3. length above InlineThreshold, passed through untouched
//
// Anything else yields ErrUnresolvable. A file that exists but cannot be read
// returns the read error wrapped.
func Resolve(input string) (Source, error) {
	if IsURL(input) {
		return Source{Kind: KindURL, Value: input}, nil
	}

	if info, err := os.Stat(input); err == nil && info.Mode().IsRegular() {
		data, err := os.ReadFile(input)
		if err != nil {
			return Source{}, fmt.Errorf("failed to read %s: %w", input, err)
		}
		return Source{Kind: KindFile, Value: base64.StdEncoding.EncodeToString(data)}, nil
	}

	if len(input) > InlineThreshold {
		return Source{Kind: KindInline, Value: input}, nil
	}

	return Source{}, ErrUnresolvable
}
