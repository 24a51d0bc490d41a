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
	"context"
	"fmt"
	"strings"

	"github.com/kioskware/kioskpack/internal/iocheck"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/spf13/cobra"
)

// getCheckCmd returns the check-integrity command.
func getCheckCmd() *cobra.Command {
	var (
		db     dbFlags
		staged bool
		target string
		level  string
		format string
	)

	checkCmd := &cobra.Command{
		Use:   "check-integrity",
		Short: "Report consistency problems of a database",
		Long: `Run consistency checks against the active or the staged database.

Basic checks:
  - people without display names
  - person-cohort links to missing rows
  - photos without sha256 or without a file on disk
  - flipbook manifests that do not exist

Strict checks add duplicate person slugs and duplicate photo hashes.

The report is printed to STDOUT. Findings do not make the command
fail, only a missing database does.

Examples:
  kioskpack check-integrity
  kioskpack check-integrity --staged --level strict
  kioskpack check-integrity --target active --format yaml`,
		Aliases: []string{"check"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := db.options(cmd)
			if staged {
				target = iocheck.TargetStaged
			}
			opts = append(opts,
				config.OptCheckTarget(target),
				config.OptCheckLevel(level),
				config.OptCheckFormat(format),
			)

			err := runCheck(cmd.Context(), opts)
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	db.addStaged(checkCmd)
	db.addActive(checkCmd)
	checkCmd.Flags().BoolVarP(&staged, "staged", "s", false,
		"check the staged database (same as --target staged)")
	checkCmd.Flags().StringVarP(&target, "target", "t", iocheck.TargetActive,
		"database to check: active or staged")
	checkCmd.Flags().StringVarP(&level, "level", "l", "basic",
		"check level: basic or strict")
	checkCmd.Flags().StringVarP(&format, "format", "F", "json",
		"report format: json or yaml")

	return checkCmd
}

func runCheck(ctx context.Context, opts []config.Option) error {
	cfg.Update(opts)
	report, err := iocheck.New(cfg).Check(ctx)
	if err != nil {
		return err
	}

	if report.OK() {
		iologger.Success("Integrity checks passed")
	} else {
		iologger.Warn("Integrity issues found: %s",
			strings.Join(report.Issues, ", "))
	}

	out, err := iocheck.Encode(report, cfg.Check.Format)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
