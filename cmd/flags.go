package cmd

import (
	"fmt"
	"os"

	app "github.com/kioskware/kioskpack/pkg"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// dbFlags holds database path overrides shared by several commands.
type dbFlags struct {
	staged string
	active string
}

func (f *dbFlags) addStaged(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.staged, "staged-db", "",
		"path of the staged database (default {content-root}/db/app.db.staging)")
}

func (f *dbFlags) addActive(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.active, "active-db", "",
		"path of the active database (default {content-root}/db/app.db)")
}

// options converts overrides given on the command line to config
// options. Relative paths are kept relative to the working directory.
func (f *dbFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("staged-db") {
		res = append(res, config.OptStagedDB(f.staged))
	}
	if cmd.Flags().Changed("active-db") {
		res = append(res, config.OptActiveDB(f.active))
	}
	return res
}
