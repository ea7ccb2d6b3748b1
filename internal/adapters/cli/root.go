package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ogame-daemon",
		Short: "Persistent strategy-game simulation daemon",
		Long: `ogame-daemon runs the persistent simulation core: per-planet resource
production, build queues, fleet missions and the reactive AI population.

Examples:
  ogame-daemon run
  ogame-daemon run --config ./configs/config.yaml
  ogame-daemon migrate
  ogame-daemon demo`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/ogameclone)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewDemoCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
