/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a read-only JSON API",
		Long: `Serve starts the HTTP API:

  GET /categories
  GET /items/{categoryId}
  GET /vocabulary/{categoryId}
  GET /recipes/{categoryId}
  GET /references
  GET /ping

The server stops on SIGINT or SIGTERM.

Examples:
  bosdb serve
  bosdb serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			portFlag(cmd)
			return runServe()
		},
	}

	serveCmd.Flags().IntP("port", "p", 0, "port of the HTTP API")
	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	ok, err := requireSchema(ctx, op)
	if !ok || err != nil {
		return err
	}

	cat := iocatalog.New(op, cfg, nil)
	if err = ioweb.Run(ctx, cat, cfg.Server.Port); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
