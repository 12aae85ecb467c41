package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/pkg/content"
)

// sitemapCommand creates the sitemap command.
func (c *CLI) sitemapCommand() *cobra.Command {
	var (
		output string
		robots bool
	)

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml (or robots.txt) for static hosting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site := content.NewSite(c.cfg.Site.BaseURL)

			var buf bytes.Buffer
			if robots {
				buf.WriteString(site.Robots())
			} else if err := content.WriteSitemap(&buf, site.Sitemap(time.Now())); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&robots, "robots", false, "print robots.txt instead")

	return cmd
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
