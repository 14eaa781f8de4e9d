package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/entwurf/entwurf-cli/internal/cli"
)

var companiesFormat string

// NewCompaniesCommand creates the companies command with subcommands
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Work with company profiles on the backend",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your companies and their preprocessing status",
		Long: `Lists the companies of the signed-in account.

The STATUS column shows the preprocessing state; content generation is
only available for companies whose status is "done".

Examples:
  entwurf companies list
  entwurf companies list --format yaml`,
		RunE: runCompaniesList,
	}
	listCmd.Flags().StringVarP(&companiesFormat, "format", "f", "text", "Output format (text, json, yaml)")

	cmd.AddCommand(listCmd)
	return cmd
}

func runCompaniesList(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cc, err := cli.NewCommandContext(cfgFile)
	if err != nil {
		return err
	}

	companies, err := cc.Client.ListCompanies(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	if companiesFormat != "text" {
		return cli.OutputResults(os.Stdout, companiesFormat, companies)
	}

	if len(companies) == 0 {
		cli.PrintInfo("No companies yet. Create one in the web application.")
		return nil
	}

	table := cli.NewTableFormatter(os.Stdout)
	table.Header("ID", "NAME", "STATUS")
	for _, c := range companies {
		table.Row(
			strconv.Itoa(c.ID),
			cli.TruncateString(c.Name, 40),
			string(c.ProcessingStatus.Normalize()),
		)
	}
	table.Flush()
	return nil
}
