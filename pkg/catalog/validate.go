package catalog

import (
	"strings"

	"github.com/gnames/gnlib"
)

// Clean repairs broken UTF-8 and trims surrounding white space.
func Clean(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

// RequireText cleans a value and returns ValidationError if nothing
// is left after cleaning.
func RequireText(field, val string) (string, error) {
	res := Clean(val)
	if res == "" {
		return "", ValidationError(field, "cannot be empty")
	}
	return res, nil
}

// Normalize cleans all free-text fields of a herb.
func (h HerbAttrs) Normalize() HerbAttrs {
	h.Name = Clean(h.Name)
	h.Appearance = Clean(h.Appearance)
	h.Information = Clean(h.Information)
	h.Reason = Clean(h.Reason)
	if h.ReferenceID != nil && *h.ReferenceID <= 0 {
		h.ReferenceID = nil
	}
	return h
}

// Validate checks that required fields of a herb are present.
// The herb is expected to be normalized.
func (h HerbAttrs) Validate() error {
	if h.Name == "" {
		return ValidationError("herb name", "cannot be empty")
	}
	return nil
}
