package cli

import (
	"fmt"
	"os"

	"github.com/entwurf/entwurf-cli/internal/config"
	"github.com/entwurf/entwurf-cli/pkg/api"
)

var noColor = os.Getenv("NO_COLOR") != ""

// PrintSuccess prints a success message to stdout
func PrintSuccess(format string, args ...interface{}) {
	prefix := "✓"
	if noColor {
		prefix = "OK"
	}
	fmt.Printf(prefix+" "+format+"\n", args...)
}

// PrintInfo prints an informational message to stdout
func PrintInfo(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// CommandContext carries the loaded configuration and a ready API
// client for CLI subcommands.
type CommandContext struct {
	Config *config.Config
	Client *api.Client
}

// NewCommandContext loads the configuration and validates that the
// backend is reachable in principle (URL and token present).
func NewCommandContext(cfgFile string) (*CommandContext, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CommandContext{
		Config: cfg,
		Client: api.New(cfg.ServerURL, cfg.Token),
	}, nil
}
