package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateRecordCount rejects record counts no layout can place.
// Zero is valid: every layout produces an empty target set for it.
func ValidateRecordCount(n int) error {
	if n < 0 {
		return New(ErrCodeDegenerateInput, "record count cannot be negative: %d", n)
	}
	return nil
}

// ValidateLayoutName performs a syntactic check on a layout name taken from
// user input. Whether the name is a known layout is decided by the layout
// package; this only rejects names that cannot possibly be one.
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeUnknownLayout, "layout name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeUnknownLayout, "layout name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeUnknownLayout, "layout name contains invalid characters: %q", name)
		}
	}
	return nil
}

// ValidateURL validates a record source URL.
// It requires an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "malformed URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL has no host")
	}

	return nil
}
