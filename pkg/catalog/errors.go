package catalog

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

// Code returns the error code of the first *gn.Error found in the
// chain of err, or errcode.UnknownError.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}

// Is reports whether err carries the given code.
func Is(err error, code gn.ErrorCode) bool {
	return err != nil && Code(err) == code
}

func caller() *runtime.Func {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc)
}

// ValidationError is returned for input that is rejected before any
// write happens.
func ValidationError(field, reason string) error {
	msg := "Invalid <em>%s</em>: %s"
	vars := []any{field, reason}
	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid %s: %s",
			caller().Name(), field, reason),
	}
}

// NotFoundError is returned when a referenced row does not exist.
func NotFoundError(table string, id any) error {
	msg := "Cannot find <em>%v</em> in %s"
	vars := []any{id, table}
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s %v not found",
			caller().Name(), table, id),
	}
}

// DuplicateAliasError is returned when an alias is already taken.
func DuplicateAliasError(alias string, herbID int64) error {
	msg := "Alias <em>%s</em> already belongs to herb %d"
	vars := []any{alias, herbID}
	return &gn.Error{
		Code: errcode.DuplicateAliasError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: duplicate alias %q",
			caller().Name(), alias),
	}
}

// ReferentialIntegrityError is returned when a delete would leave
// rows pointing to a missing parent.
func ReferentialIntegrityError(table string, id int64, err error) error {
	msg := "Cannot delete <em>%d</em> from %s, dependent rows exist"
	vars := []any{id, table}
	return &gn.Error{
		Code: errcode.ReferentialIntegrityError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: delete %s %d: %w",
			caller().Name(), table, id, err),
	}
}

// CorruptDataError is returned when stored data contradicts the model,
// for example an unknown discriminator or a missing concrete row.
func CorruptDataError(id int64, reason string) error {
	msg := "Item <em>%d</em> is corrupt: %s"
	vars := []any{id, reason}
	return &gn.Error{
		Code: errcode.CorruptDataError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: corrupt item %d: %s",
			caller().Name(), id, reason),
	}
}

// StorageExhaustedError is returned when the identity allocator
// reached its ceiling for a table.
func StorageExhaustedError(table string, maxID int64) error {
	msg := "No identities left for <em>%s</em> (max %d)"
	vars := []any{table, maxID}
	return &gn.Error{
		Code: errcode.StorageExhaustedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: identities of %s exhausted at %d",
			caller().Name(), table, maxID),
	}
}

// StorageError wraps a failure of the storage backend.
func StorageError(op string, err error) error {
	msg := "Storage failure during <em>%s</em>"
	vars := []any{op}
	return &gn.Error{
		Code: errcode.StorageError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s: %w",
			caller().Name(), op, err),
	}
}
