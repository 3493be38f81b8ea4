package ioimport

import (
	"fmt"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  "Cannot read catalog file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

func ParseError(path string, err error) error {
	msg := `Catalog file <em>%s</em> is not valid YAML

<em>How to fix:</em>
  1. Check indentation and quoting of the file
  2. Compare it with the example in the README`

	return &gn.Error{
		Code: errcode.ImportParseError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot parse %s: %w", path, err),
	}
}

// RecordError wraps a catalog error for a record that could not be
// imported. The catalog error stays reachable with errors.As.
func RecordError(record string, err error) error {
	return &gn.Error{
		Code: errcode.ImportRecordError,
		Msg:  "Cannot import <em>%s</em>",
		Vars: []any{record},
		Err:  fmt.Errorf("cannot import %s: %w", record, err),
	}
}

// UnknownReferenceError is returned when a record points to a reference
// key not declared in the file.
func UnknownReferenceError(record, key string) error {
	return &gn.Error{
		Code: errcode.ImportRecordError,
		Msg:  "Record <em>%s</em> refers to unknown reference <em>%s</em>",
		Vars: []any{record, key},
		Err:  fmt.Errorf("%s: unknown reference key %q", record, key),
	}
}
