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
	"github.com/gnames/bosdb/pkg/config"
	"github.com/spf13/cobra"
)

type flagFunc func(cmd *cobra.Command)

// persistentFlags turn flags of the root command into config options.
var persistentFlags = []flagFunc{
	driverFlag,
	dbPathFlag,
	maxIDFlag,
	logLevelFlag,
}

func driverFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("driver") {
		return
	}
	s, _ := cmd.Flags().GetString("driver")
	opts = append(opts, config.OptDatabaseDriver(s))
}

func dbPathFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("db-path") {
		return
	}
	s, _ := cmd.Flags().GetString("db-path")
	opts = append(opts, config.OptDatabasePath(s))
}

func maxIDFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("max-id") {
		return
	}
	i, _ := cmd.Flags().GetInt64("max-id")
	opts = append(opts, config.OptDatabaseMaxID(i))
}

func logLevelFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("log-level") {
		return
	}
	s, _ := cmd.Flags().GetString("log-level")
	opts = append(opts, config.OptLogLevel(s))
}

func portFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("port") {
		return
	}
	i, _ := cmd.Flags().GetInt("port")
	cfg.Update([]config.Option{config.OptServerPort(i)})
}
