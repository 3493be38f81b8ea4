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
	"fmt"
	"io"
	"strconv"

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show WHAT [CATEGORY_ID]",
		Short: "Print catalog data as JSON",
		Long: `Show prints the same JSON the HTTP API returns.

WHAT is one of: categories, items, vocabulary, recipes, references.
items, vocabulary and recipes need a category id.

Examples:
  bosdb show categories
  bosdb show items 1
  bosdb show references`,
		ValidArgs: []string{
			"categories", "items", "vocabulary", "recipes", "references",
		},
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), args)
		},
	}
	return showCmd
}

func runShow(out io.Writer, args []string) error {
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

	res, err := show(ctx, iocatalog.New(op, cfg, nil), args)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(bs))
	return err
}

func show(ctx context.Context, q bosdb.Query, args []string) (any, error) {
	what := args[0]
	switch what {
	case "categories":
		return q.GetCategories(ctx)
	case "references":
		return q.GetAllReferenceInfo(ctx)
	}

	if len(args) < 2 {
		return nil, catalog.ValidationError(what, "category id is required")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, catalog.ValidationError("category id", "must be an integer")
	}

	var res any
	switch what {
	case "items":
		res, err = q.GetItemsByCategory(ctx, id)
	case "vocabulary":
		res, err = q.GetVocabularyByCategory(ctx, id)
	case "recipes":
		res, err = q.GetRecipesByCategory(ctx, id)
	default:
		return nil, catalog.ValidationError("what",
			fmt.Sprintf("unknown value %q", what))
	}
	if catalog.Is(err, errcode.NotFoundError) {
		gn.Warn("Category <em>%d</em> does not exist", id)
		return []any{}, nil
	}
	return res, err
}
