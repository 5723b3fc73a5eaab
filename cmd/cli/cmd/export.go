package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mat-analysis/internal/export"
	"github.com/mat-analysis/internal/service"
)

var (
	exportOutput   string
	exportFormat   string
	exportCompress string
	exportSheet    string
	exportUpload   string
)

var exportCmd = &cobra.Command{
	Use:   "export NAME...",
	Short: "Write variables aligned to the time axis as a table",
	Long: `Write the time axis and every requested variable of the same length as a
table. Variables whose length differs from the time axis are skipped and
reported. Use -o - to write to standard output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOutput == "" && exportUpload == "" {
			return fmt.Errorf("either --output or --upload is required")
		}
		opts, err := exportOptions()
		if err != nil {
			return err
		}

		s, err := loadInput(cmd, exportUpload != "")
		if err != nil {
			return err
		}

		var table *export.Table
		if exportOutput != "" {
			if table, err = exportToFile(cmd, s, args, opts); err != nil {
				return err
			}
		}
		if exportUpload != "" {
			var url string
			table, url, err = s.ExportToStorage(cmd.Context(), exportUpload, args, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "uploaded to %s\n", url)
		}

		for _, name := range table.Omitted {
			GetLogger().Warn("skipped %q: not aligned with the time axis", name)
		}
		GetLogger().Info("exported %d columns, %d rows", len(table.Names), table.Rows())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addInputFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Table format: csv, json or xlsx (default from config)")
	exportCmd.Flags().StringVar(&exportCompress, "compress", "", "Compression: none, gzip or zstd (default from config)")
	exportCmd.Flags().StringVar(&exportSheet, "sheet", "", "Worksheet name for xlsx")
	exportCmd.Flags().StringVar(&exportUpload, "upload", "", "Also upload the table to storage under this key")
}

func exportOptions() (export.Options, error) {
	format := exportFormat
	if format == "" {
		format = cfg.Export.Format
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return export.Options{}, err
	}

	compress := exportCompress
	if compress == "" {
		compress = cfg.Export.Compression
	}
	sheet := exportSheet
	if sheet == "" {
		sheet = cfg.Export.SheetName
	}
	return export.Options{Format: f, Compression: compress, SheetName: sheet}, nil
}

func exportToFile(cmd *cobra.Command, s *service.Service, names []string, opts export.Options) (*export.Table, error) {
	if exportOutput == "-" {
		return s.Export(cmd.Context(), names, cmd.OutOrStdout(), opts)
	}

	path := export.FileName(exportOutput, opts)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	table, err := s.Export(cmd.Context(), names, f, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return table, nil
}
