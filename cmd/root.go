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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/bosdb/internal/iofs"
	"github.com/gnames/bosdb/internal/iologger"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", bosdb.Version, bosdb.Build),
		Use:     "bosdb",
		Short:   "bosdb keeps a catalog of herbs, recipes and vocabulary",
		Long: `bosdb keeps a catalog of herbs with their aliases, chemical
components, effects and bibliographic references, together with
recipes and vocabulary terms grouped by categories.

The catalog is stored in a single SQLite file or in a PostgreSQL
database, and is served as a read-only JSON API.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BOSDB_*)
  3. Config file (~/.config/bosdb/config.yaml)
  4. Built-in defaults

Environment variables:
  BOSDB_DATABASE_DRIVER      sqlite or postgres
  BOSDB_DATABASE_PATH        SQLite file
  BOSDB_DATABASE_HOST        PostgreSQL host
  BOSDB_DATABASE_MAX_ID      largest id handed out per table
  BOSDB_SERVER_PORT          port of the HTTP API
  BOSDB_LOG_LEVEL            debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "bosdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for bosdb")

	pf := rootCmd.PersistentFlags()
	pf.String("home", "", "home directory for config, data and logs")
	_ = pf.MarkHidden("home")
	pf.String("driver", "", "storage backend: sqlite or postgres")
	pf.String("db-path", "", "SQLite database file")
	pf.Int64("max-id", 0, "largest id handed out for any table")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getOptimizeCmd(),
		getServeCmd(),
		getShowCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, _ = cmd.Flags().GetString("home")
	if homeDir == "" {
		if homeDir, err = os.UserHomeDir(); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Logging with defaults until the user's settings are known.
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	for _, fn := range persistentFlags {
		fn(cmd)
	}
	opts = append(opts, config.OptHomeDir(homeDir))
	cfg.Update(opts)

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}
	return &res, nil
}

// initEnvVars binds the allowed environment variables. They match the
// fields of config.ToOptions.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("BOSDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		"database.driver",
		"database.path",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.database",
		"database.ssl_mode",
		"database.max_id",
		"server.port",
		"log.level",
		"log.format",
		"log.destination",
		"jobs_number",
	}
	for _, k := range keys {
		env := strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
		_ = v.BindEnv(k, "BOSDB_"+env)
	}

	v.AutomaticEnv()
}
