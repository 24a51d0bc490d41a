/*
Copyright © 2026 The kioskpack authors

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
// Package cmd provides the kioskpack command line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iologger"
	app "github.com/kioskware/kioskpack/pkg"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with every subcommand attached.
func getRootCmd() *cobra.Command {
	var contentRoot string

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "kioskpack",
		Short:   "Kioskpack imports signed content packs into a kiosk",
		Long: `Kioskpack manages content of an offline alumni kiosk.

A content pack is a zip archive with a manifest, CSV tables, images and
flipbooks. Kioskpack verifies the pack, builds a staged SQLite database
and syncs assets. The staged database goes live only after an explicit
activation, and the previous database can be restored with rollback.

Typical workflow:
  kioskpack import-pack alumni-2024-05.zip
  kioskpack check-integrity --staged
  kioskpack activate-staged

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (KIOSKPACK_*), also read from ./.env
  3. Config file (~/.config/kioskpack/config.yaml)
  4. Built-in defaults

Environment Variables:
  KIOSKPACK_CONTENT_ROOT              content root directory
  KIOSKPACK_IMPORT_VERIFY             require manifest signature
  KIOSKPACK_IMPORT_PUBLIC_KEY         Ed25519 public key file
  KIOSKPACK_DERIVATIVES_THUMB_SIZE    thumbnail side in pixels
  KIOSKPACK_DERIVATIVES_SCREEN_SIZE   screen rendition box in pixels
  KIOSKPACK_DERIVATIVES_JPEG_QUALITY  JPEG quality of renditions
  KIOSKPACK_LOG_LEVEL                 log level (debug/info/warn/error)
  KIOSKPACK_LOG_FORMAT                log format (json/text/tint)
  KIOSKPACK_LOG_DESTINATION           file, stderr or stdout
  KIOSKPACK_JOBS_NUMBER               derivative workers`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := bootstrap(cmd, contentRoot)
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			versionFlag(cmd)
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "kioskpack version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for kioskpack")

	rootCmd.PersistentFlags().StringVarP(
		&contentRoot, "content-root", "c", "",
		"directory with kiosk databases and assets",
	)

	rootCmd.AddCommand(
		getImportCmd(),
		getActivateCmd(),
		getRollbackCmd(),
		getDeriveCmd(),
		getCheckCmd(),
		getReindexCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, contentRoot string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		return err
	}

	if err = godotenv.Load(); err == nil {
		slog.Info("Environment loaded from .env")
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	if cmd.Flags().Changed("content-root") {
		cfg.Update([]config.Option{config.OptContentRoot(contentRoot)})
	}
	root, err := filepath.Abs(cfg.ContentRoot)
	if err != nil {
		return err
	}

	// Set HomeDir and absolute content root after config is loaded
	cfg.Update([]config.Option{
		config.OptHomeDir(homeDir),
		config.OptContentRoot(root),
	})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"content_root", cfg.ContentRoot,
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

// Execute runs the root command. It is called by main.main().
// SIGINT and SIGTERM cancel the command context, so a running command
// stops at its next cancellation point and releases its lock.
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := getRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
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

func initEnvVars(v *viper.Viper) {
	// Env variables are bound one by one so the allowed set is explicit.
	// They match the fields of config.ToOptions().
	v.SetEnvPrefix("KIOSKPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("content_root", "KIOSKPACK_CONTENT_ROOT")

	// Import configuration
	v.BindEnv("import.verify", "KIOSKPACK_IMPORT_VERIFY")
	v.BindEnv("import.public_key", "KIOSKPACK_IMPORT_PUBLIC_KEY")

	// Derivatives configuration
	v.BindEnv("derivatives.thumb_size", "KIOSKPACK_DERIVATIVES_THUMB_SIZE")
	v.BindEnv("derivatives.screen_size", "KIOSKPACK_DERIVATIVES_SCREEN_SIZE")
	v.BindEnv("derivatives.jpeg_quality", "KIOSKPACK_DERIVATIVES_JPEG_QUALITY")

	// Log configuration
	v.BindEnv("log.level", "KIOSKPACK_LOG_LEVEL")
	v.BindEnv("log.format", "KIOSKPACK_LOG_FORMAT")
	v.BindEnv("log.destination", "KIOSKPACK_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "KIOSKPACK_JOBS_NUMBER")

	v.AutomaticEnv()
}
