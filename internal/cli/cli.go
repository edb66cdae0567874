// Package cli implements the lockgraph command-line interface.
//
// The interface is a single cobra command taking one positional argument,
// the path to a config file. Logs go to stderr through charmbracelet/log;
// the run summary goes to stdout.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lockgraph/pkg/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // run summary
	Err    io.Writer // spinner and error output
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the lockgraph command.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lockgraph <config>",
		Short: "Lockgraph renders npm lock file dependency graphs",
		Long: `Lockgraph reads package-lock.json from the configured package directory,
reconstructs the transitive dependency graph and renders it with Graphviz.

The config file holds three required settings, one "key,value" pair per line:

  graphviz_path   Graphviz executable (e.g. /usr/bin/dot), or "builtin"
  package_path    directory containing package.json and package-lock.json
  output_path     image to write; a .dot file is written next to it

TOML (.toml) and YAML (.yaml, .yml) config files use the same keys.`,
		Example: `  lockgraph config.csv
  lockgraph -v lockgraph.toml`,
		Version:       buildinfo.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	return root
}

// PrintError writes a user-facing description of err.
func (c *CLI) PrintError(err error) {
	printError(c.Err, "%s", userMessage(err))
}
