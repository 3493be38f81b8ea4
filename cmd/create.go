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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/bosdb/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var reset, force bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create catalog schema",
		Long: `Create the catalog schema.

This command:
  1. Opens the SQLite file or connects to PostgreSQL
  2. Creates missing tables using GORM AutoMigrate
  3. Sets "C" collation on name columns (PostgreSQL only)
  4. Creates the default "Herbs" category

Running create on an existing catalog changes nothing. With --reset
all tables are dropped and created again after a confirmation,
--force skips the confirmation.

Examples:
  bosdb create
  bosdb create --reset
  bosdb create --reset --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, reset, force)
		},
	}

	createCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"drop all tables and data before creating the schema")
	createCmd.Flags().BoolVarP(&force, "force", "f", false,
		"drop tables without confirmation (with --reset)")
	return createCmd
}

func runCreate(cmd *cobra.Command, reset, force bool) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	sm := ioschema.NewManager(op, cfg)

	if !reset {
		gn.Info("Creating schema using GORM AutoMigrate...")
		if err = sm.Create(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Catalog schema is ready.")
		return nil
	}

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables && !force {
		gn.Warn("Reset drops ALL catalog tables and data.")
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	gn.Info("Recreating catalog schema...")
	if err = sm.Reset(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Catalog schema is ready.")
	return nil
}

// confirm asks for yes/no. Anything but "yes" or "y" is a no.
func confirm(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "\nDo you want to continue? (yes/no): ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
