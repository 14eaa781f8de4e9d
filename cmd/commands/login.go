package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entwurf/entwurf-cli/internal/cli"
	"github.com/entwurf/entwurf-cli/internal/config"
)

var (
	loginServer string
	loginToken  string
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store backend URL and session token",
		Long: `Stores the backend URL and your session token in ~/.entwurf/config.yaml.

The token is issued by the web application (account settings). All other
commands read it from the config file; the ENTWURF_TOKEN environment
variable overrides it.

Examples:
  entwurf login --server https://api.example.com --token eyJhbGci...
  entwurf login --token eyJhbGci...`,
		RunE: runLogin,
	}

	cmd.Flags().StringVar(&loginServer, "server", "", "Backend base URL")
	cmd.Flags().StringVar(&loginToken, "token", "", "Session token")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if loginServer != "" {
		cfg.ServerURL = loginServer
	}
	if loginToken != "" {
		cfg.Token = loginToken
	}
	if cfg.Token == "" {
		return fmt.Errorf("no token given; pass --token")
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cli.PrintSuccess("Credentials stored for %s", cfg.ServerURL)
	return nil
}
