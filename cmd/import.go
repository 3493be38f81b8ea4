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

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/internal/ioimport"
	"github.com/gnames/bosdb/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import catalog records from a YAML file",
		Long: `Import reads categories, herbs with their satellites, recipes,
vocabulary and references from a YAML file and adds them to the
catalog. Categories that already exist are reused.

Canonical forms of herb names and aliases are computed with the
botanical code of GNparser.

Examples:
  bosdb import herbs.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	}
	return importCmd
}

func runImport(path string) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	ok, err := requireSchema(ctx, op)
	if !ok || err != nil {
		return err
	}

	pool := parserpool.NewPool(cfg.JobsNumber)
	defer pool.Close()

	cat := iocatalog.New(op, cfg, pool)
	if _, err = ioimport.New(cat, os.Stderr).Import(ctx, path); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
