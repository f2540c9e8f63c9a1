// Command render writes the chart pages to files without running the server.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/vizpages/internal/adapters/render"
	app "github.com/okian/vizpages/internal/app"
	"github.com/okian/vizpages/internal/config"
	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/pkg/logger"
)

const outputFilePermission = 0o644

// errUnavailable marks a run where at least one page could not be built.
var errUnavailable = errors.New("one or more pages are unavailable")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:           "render",
		Short:         "Render the visualization pages to HTML or SVG files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Base directory for relative dataset paths (overrides VIZPAGES_DATA_DIR)")

	start := func(ctx context.Context) (*app.Service, error) {
		return startService(ctx, dataDir)
	}
	rootCmd.AddCommand(
		newListCmd(start),
		newPageCmd(start),
		newAllCmd(start),
	)
	return rootCmd
}

type starter func(ctx context.Context) (*app.Service, error)

func startService(ctx context.Context, dataDir string) (*app.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := logger.InitWith(os.Stderr, logger.Format(cfg.LogFormat)); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	svc := app.New(app.ConfigOptions(cfg, logger.Named("render"))...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func newListCmd(start starter) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pages and whether their datasets load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()
			return writeList(cmd.OutOrStdout(), svc.Pages())
		},
	}
}

func writeList(w io.Writer, pages []app.PageStatus) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tMARKS\tTITLE")
	unavailable := false
	for _, p := range pages {
		status := "ready"
		if !p.Ready {
			status = "unavailable"
			unavailable = true
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, status, p.Marks, p.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if unavailable {
		return errUnavailable
	}
	return nil
}

func newPageCmd(start starter) *cobra.Command {
	var out string
	var svgOnly bool

	cmd := &cobra.Command{
		Use:   "page NAME",
		Short: "Render one page",
		Long: `Render one page as a standalone HTML document, or with --svg as the bare
chart. Without --out the result goes to stdout.

Example: render page heat-map --out heat-map.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			c, err := svc.Chart(args[0])
			if err != nil {
				return err
			}
			body, err := renderChart(c, svgOnly)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return os.WriteFile(out, body, outputFilePermission)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&svgOnly, "svg", false, "Write the bare SVG instead of the HTML page")
	return cmd
}

func newAllCmd(start starter) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Render every page as NAME.html and NAME.svg into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			var failed error
			for _, p := range svc.Pages() {
				c, err := svc.Chart(p.Name)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "skip %s: %v\n", p.Name, err)
					failed = errUnavailable
					continue
				}
				for _, svgOnly := range []bool{false, true} {
					body, err := renderChart(c, svgOnly)
					if err != nil {
						return err
					}
					path := filepath.Join(dir, fileName(p.Name, svgOnly))
					if err := os.WriteFile(path, body, outputFilePermission); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			}
			return failed
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "site", "Output directory")
	return cmd
}

func renderChart(c *chart.Chart, svgOnly bool) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if svgOnly {
		err = render.SVG(&buf, c)
	} else {
		err = render.Page(&buf, c)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileName(page string, svgOnly bool) string {
	if svgOnly {
		return page + ".svg"
	}
	return page + ".html"
}
