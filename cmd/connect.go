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

	"github.com/gnames/bosdb/internal/iodb"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/gn"
)

// connect opens the store described by the loaded config.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.New()
	if err := op.Connect(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return nil, err
	}

	if cfg.Database.Driver == "postgres" {
		gn.Info("Connected to database <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	} else {
		gn.Info("Connected to database <em>%s</em>", cfg.SQLitePath())
	}
	return op, nil
}

// requireSchema warns and returns false if the catalog has no tables.
func requireSchema(ctx context.Context, op db.Operator) (bool, error) {
	ok, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return false, err
	}
	if !ok {
		gn.Warn("Catalog is empty. Run <em>bosdb create</em> first.")
	}
	return ok, nil
}
