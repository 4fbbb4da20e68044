package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/c360studio/sitecheck/config"
	"github.com/c360studio/sitecheck/document"
	"github.com/c360studio/sitecheck/imagemeta"
)

// imageRow is one line of the images listing.
type imageRow struct {
	imagemeta.ImageRecord
	Bytes  int64  `json:"bytes,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func imagesCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "images [site-root]",
		Short: "List the images referenced by the site's pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel, cmd.ErrOrStderr())
			cfg, err := loadConfig(cmd, siteRoot(args), *opts, logger)
			if err != nil {
				return err
			}

			site := document.Load(cfg.Site.Root, cfg.Site.Pages, logger)
			if site.Primary() == nil {
				return fmt.Errorf("could not find %s index.html", cfg.PrimaryPage().Name)
			}
			records := imagemeta.NewResolver(cfg.Site.Root, cfg.Images.Exempt, logger).Resolve(site)
			rows := imageRows(cfg, records)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			return writeImageTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func imageRows(cfg *config.Config, records []imagemeta.ImageRecord) []imageRow {
	rows := make([]imageRow, 0, len(records))
	for _, rec := range records {
		row := imageRow{ImageRecord: rec, Status: imageStatus(cfg, rec)}
		if rec.Err != nil {
			row.Error = rec.Err.Error()
		}
		if rec.Path != "" {
			if info, err := os.Stat(filepath.Join(cfg.Site.Root, filepath.FromSlash(rec.Path))); err == nil {
				row.Bytes = info.Size()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// imageStatus summarizes how the geometry checks treat rec.
func imageStatus(cfg *config.Config, rec imagemeta.ImageRecord) string {
	switch {
	case rec.Hotlink:
		return "hotlink"
	case rec.Err != nil:
		return "unreadable"
	case !rec.CheckDimensions:
		return "exempt"
	case rec.Intrinsic.Width > cfg.Images.MaxWidth:
		return "too wide"
	case rec.Declared.Width != rec.Intrinsic.Width || rec.Declared.Height != rec.Intrinsic.Height:
		return "mismatch"
	default:
		return "ok"
	}
}

func writeImageTable(w io.Writer, rows []imageRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tSRC\tINTRINSIC\tDECLARED\tSIZE\tSTATUS")
	for _, row := range rows {
		intrinsic, size := "-", "-"
		if row.Resolved() {
			intrinsic = row.Intrinsic.String()
		}
		if row.Bytes > 0 {
			size = humanize.Bytes(uint64(row.Bytes))
		}
		declared := "-"
		if row.Declared.HasWidth || row.Declared.HasHeight {
			declared = fmt.Sprintf("%dx%d", row.Declared.Width, row.Declared.Height)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", row.Page, row.Src, intrinsic, declared, size, row.Status)
	}
	return tw.Flush()
}
