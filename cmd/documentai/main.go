package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/documentai/cli/config"
	"github.com/documentai/cli/internal/logging"
	"github.com/documentai/cli/internal/tui"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "documentai",
	Short: "Chat with your documents from the terminal",
	Long: `DocumentAI terminal client.

Run without arguments to open the interactive chat. Upload documents to the
configured DocumentAI API, then ask questions about them. One-shot commands
(health, ask) expose the same API operations for scripting.`,
	Version:      version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		closer, err := logging.Setup(cfg.Log.File)
		if err != nil {
			return err
		}
		defer closer.Close()

		return tui.NewApp(cfg).Run()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd, askCmd, signoutCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
