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

	"github.com/dustin/go-humanize"
	"github.com/kioskware/kioskpack/internal/ioderive"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/spf13/cobra"
)

// getDeriveCmd returns the gen-derivatives command.
func getDeriveCmd() *cobra.Command {
	var force bool

	deriveCmd := &cobra.Command{
		Use:   "gen-derivatives",
		Short: "Generate thumbnails and screen renditions of images",
		Long: `Generate derivatives of every image in {content-root}/assets/img.

Thumbnails are centre-cropped squares, screen renditions fit into a
square box without upscaling. Sizes come from the 'derivatives'
section of the configuration. Existing files are kept unless --force
is given. Images that cannot be decoded are copied unchanged.

Examples:
  kioskpack gen-derivatives
  kioskpack gen-derivatives --force`,
		Aliases: []string{"derive"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDerive(cmd.Context(), force)
			if err != nil {
				iologger.Error(err)
			}
			return err
		},
	}

	deriveCmd.Flags().BoolVarP(&force, "force", "f", false,
		"regenerate existing derivatives")
	return deriveCmd
}

func runDerive(ctx context.Context, force bool) error {
	cfg.Update([]config.Option{config.OptDerivativesForce(force)})
	stats, err := ioderive.New(cfg).Generate(ctx)
	if err != nil {
		return err
	}
	iologger.Success(
		"Derivatives: <em>%s</em> generated, %s copied, %s up to date",
		humanize.Comma(int64(stats.Generated)),
		humanize.Comma(int64(stats.Copied)),
		humanize.Comma(int64(stats.Skipped)),
	)
	return nil
}
