package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/entwurf/entwurf-cli/cmd/commands"
	"github.com/entwurf/entwurf-cli/internal/cli"
	"github.com/entwurf/entwurf-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	cfgFile    string
	documentID int
	companyID  int
)

var rootCmd = &cobra.Command{
	Use:   "entwurf",
	Short: "Terminal editor for grant drafts",
	Long: `Entwurf is a terminal editor for grant drafts ("Vorhabensbeschreibungen").
It talks to the Entwurf backend: outline your document from the funding
scheme's template, confirm the headings, let the backend generate draft
content, then edit section by section. Changes are saved automatically.

Run 'entwurf login' once to store your session token.`,
	Run: func(cmd *cobra.Command, args []string) {
		cc, err := cli.NewCommandContext(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if documentID == 0 {
			documentID = cc.Config.DocumentID
		}
		if companyID == 0 {
			companyID = cc.Config.CompanyID
		}
		if documentID == 0 {
			fmt.Fprintf(os.Stderr, "Error: no document selected.\n")
			fmt.Fprintf(os.Stderr, "Pass --document <id>, or find one with 'entwurf documents list'.\n")
			os.Exit(1)
		}

		// The TUI owns the terminal; anything logged during the session
		// would corrupt it.
		if os.Getenv("ENTWURF_DEBUG") != "" {
			f, err := tea.LogToFile("entwurf-debug.log", "debug")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: Failed to open debug log: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
		} else {
			log.SetOutput(io.Discard)
		}

		app := tui.NewApp(cc.Client, documentID, companyID)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}

		// e.g. "session expired" after an auth failure
		if msg := app.QuitMessage(); msg != "" {
			fmt.Println(msg)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Entwurf",
	Long:  `Display the current version of the Entwurf CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Entwurf version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.entwurf/config.yaml)")
	rootCmd.Flags().IntVarP(&documentID, "document", "d", 0, "Document to edit")
	rootCmd.Flags().IntVarP(&companyID, "company", "c", 0, "Company whose data backs content generation")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewDocumentsCommand())
	rootCmd.AddCommand(commands.NewCompaniesCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
