package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/entwurf/entwurf-cli/internal/cli"
)

var (
	exportFormat string
	exportFile   string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <document-id>",
		Short: "Download a rendered document",
		Long: `Downloads the backend's rendered export of a document.

The backend renders the export; this command only downloads it. Transient
server errors are retried a few times before giving up.

Examples:
  entwurf export 42 --format pdf --file antrag.pdf
  entwurf export 42 --format docx --file antrag.docx`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Export format (pdf, docx)")
	cmd.Flags().StringVarP(&exportFile, "file", "o", "", "Output file (default document-<id>.<format>)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cc, err := cli.NewCommandContext(cfgFile)
	if err != nil {
		return err
	}

	path := exportFile
	if path == "" {
		path = fmt.Sprintf("document-%d.%s", id, exportFormat)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := cc.Client.Export(context.Background(), id, exportFormat, out); err != nil {
		os.Remove(path)
		return fmt.Errorf("export failed: %w", err)
	}

	cli.PrintSuccess("Exported document %d to %s", id, path)
	return nil
}
