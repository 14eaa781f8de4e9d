package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/entwurf/entwurf-cli/internal/cli"
)

var documentsFormat string

// NewDocumentsCommand creates the documents command with subcommands
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Work with grant drafts on the backend",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your documents",
		Long: `Lists the documents of the signed-in account, newest first.

Examples:
  entwurf documents list
  entwurf documents list --format json`,
		RunE: runDocumentsList,
	}
	listCmd.Flags().StringVarP(&documentsFormat, "format", "f", "text", "Output format (text, json, yaml)")

	cmd.AddCommand(listCmd)
	return cmd
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cc, err := cli.NewCommandContext(cfgFile)
	if err != nil {
		return err
	}

	docs, err := cc.Client.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentsFormat != "text" {
		return cli.OutputResults(os.Stdout, documentsFormat, docs)
	}

	if len(docs) == 0 {
		cli.PrintInfo("No documents yet. Create one in the web application.")
		return nil
	}

	table := cli.NewTableFormatter(os.Stdout)
	table.Header("ID", "TITLE", "SECTIONS", "CONFIRMED", "UPDATED")
	for _, d := range docs {
		confirmed := "no"
		if d.HeadingsConfirmed {
			confirmed = "yes"
		}
		updated := ""
		if !d.UpdatedAt.IsZero() {
			updated = d.UpdatedAt.Format("2006-01-02 15:04")
		}
		table.Row(
			strconv.Itoa(d.ID),
			cli.TruncateString(d.Title, 40),
			strconv.Itoa(len(d.Sections)),
			confirmed,
			updated,
		)
	}
	table.Flush()
	return nil
}
