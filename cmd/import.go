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

	"github.com/kioskware/kioskpack/internal/ioimport"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import-pack command.
func getImportCmd() *cobra.Command {
	var (
		db              dbFlags
		verify          bool
		publicKey       string
		skipDerivatives bool
		force           bool
	)

	importCmd := &cobra.Command{
		Use:   "import-pack <pack.zip>",
		Short: "Import a content pack into the staged database",
		Long: `Import a content pack archive.

This command:
  1. Extracts the archive into a temporary directory
  2. Validates manifest.json and checks its SHA-256 checksum
     (and the Ed25519 signature with --verify)
  3. Reads and normalises all CSV tables
  4. Rebuilds the staged database in a single transaction
  5. Copies images (verifying their hashes) and flipbooks
  6. Generates thumbnails and screen renditions
  7. Writes an import log to {content-root}/logs

The active database is not touched. Run 'kioskpack activate-staged'
to make the imported content live.

Examples:
  kioskpack import-pack alumni-2024-05.zip
  kioskpack import-pack pack.zip --verify --public-key /etc/kiosk/pack.pub
  kioskpack import-pack pack.zip --skip-derivatives`,
		Aliases: []string{"import"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := db.options(cmd)
			if cmd.Flags().Changed("verify") {
				opts = append(opts, config.OptImportVerify(verify))
			}
			if cmd.Flags().Changed("public-key") {
				opts = append(opts, config.OptImportPublicKey(publicKey))
			}
			opts = append(opts,
				config.OptImportSkipDerivatives(skipDerivatives),
				config.OptDerivativesForce(force),
			)

			err := runImport(cmd.Context(), args[0], opts)
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	db.addStaged(importCmd)
	importCmd.Flags().BoolVar(&verify, "verify", false,
		"require a valid Ed25519 signature of the manifest")
	importCmd.Flags().StringVarP(&publicKey, "public-key", "k", "",
		"Ed25519 public key file (raw, base64 or PEM)")
	importCmd.Flags().BoolVar(&skipDerivatives, "skip-derivatives", false,
		"do not generate thumbnails and screen renditions")
	importCmd.Flags().BoolVarP(&force, "force", "f", false,
		"regenerate existing derivatives")

	return importCmd
}

func runImport(ctx context.Context, packPath string, opts []config.Option) error {
	cfg.Update(opts)
	_, err := ioimport.New(cfg).Import(ctx, packPath)
	return err
}
