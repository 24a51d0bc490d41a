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
package cmd

import (
	"github.com/kioskware/kioskpack/internal/ioactivate"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/spf13/cobra"
)

// getActivateCmd returns the activate-staged command.
func getActivateCmd() *cobra.Command {
	var db dbFlags

	activateCmd := &cobra.Command{
		Use:   "activate-staged",
		Short: "Make the staged database live",
		Long: `Promote the staged database to the active one.

The current active database is kept as {active-db}.previous, replacing
an older backup. The active path always points at a complete database
file while the switch happens.

Examples:
  kioskpack activate-staged
  kioskpack activate-staged --active-db /srv/kiosk/app.db`,
		Aliases: []string{"activate"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(db.options(cmd))
			err := ioactivate.New(cfg).Activate(cmd.Context())
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	db.addStaged(activateCmd)
	db.addActive(activateCmd)
	return activateCmd
}

// getRollbackCmd returns the rollback command.
func getRollbackCmd() *cobra.Command {
	var db dbFlags

	rollbackCmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore the previous active database",
		Long: `Restore the backup created by the last activation.

The database being replaced is preserved as {active-db}.failed-{ms}
for investigation. There is only one level of backup: a second
rollback fails until the next activation.

Examples:
  kioskpack rollback`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(db.options(cmd))
			err := ioactivate.New(cfg).Rollback(cmd.Context())
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	db.addActive(rollbackCmd)
	return rollbackCmd
}
