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

	"github.com/dustin/go-humanize"
	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reparse names and compact the catalog",
		Long: `Optimize recomputes canonical forms of all herb names and aliases
with the current version of GNparser and stores only the ones that
changed. Then it runs VACUUM to reclaim unused space (VACUUM ANALYZE
on PostgreSQL).

Run it after upgrading bosdb or after a large import.

Examples:
  bosdb optimize
  bosdb optimize --driver postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize()
		},
	}
	return optimizeCmd
}

func runOptimize() error {
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

	gn.Info("Reparsing herb names and aliases...")
	stats, err := cat.Reparse(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info(
		"Checked <em>%s</em> names, updated <em>%s</em>.",
		humanize.Comma(int64(stats.Herbs+stats.Aliases)),
		humanize.Comma(int64(stats.Updated)),
	)

	gn.Info("Vacuuming the catalog...")
	if err = cat.Vacuum(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Optimization is complete.")
	return nil
}
