package iofs

import (
	"fmt"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create directory %s: %w", dir, err),
	}
}

func CopyFileError(file string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot copy config file to <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("cannot copy file %s: %w", file, err),
	}
}

func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}
