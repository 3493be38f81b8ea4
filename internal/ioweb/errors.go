package ioweb

import (
	"fmt"

	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ServerError is returned when the HTTP server cannot start or stops
// abnormally.
func ServerError(addr string, err error) error {
	msg := `Cannot run HTTP server on <em>%s</em>

<em>How to fix:</em>
  1. Check that the port is not used by another program
  2. Set another port with <em>--port</em> or BOSDB_SERVER_PORT`

	return &gn.Error{
		Code: errcode.WebServerError,
		Msg:  msg,
		Vars: []any{addr},
		Err:  fmt.Errorf("http server on %s: %w", addr, err),
	}
}
