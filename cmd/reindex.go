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
	"github.com/kioskware/kioskpack/internal/iocheck"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/spf13/cobra"
)

// getReindexCmd returns the reindex-fts command.
func getReindexCmd() *cobra.Command {
	var db dbFlags

	reindexCmd := &cobra.Command{
		Use:   "reindex-fts",
		Short: "Rebuild the name search index of the active database",
		Long: `Rebuild the full-text index over person names from the person table.

Use it after the person table of the active database was edited
outside of import-pack.

Examples:
  kioskpack reindex-fts`,
		Aliases: []string{"reindex"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(db.options(cmd))
			err := iocheck.NewIndexer(cfg).Reindex(cmd.Context())
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	db.addActive(reindexCmd)
	return reindexCmd
}
