package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/documentai/cli/config"
	"github.com/documentai/cli/internal/chat"
	"github.com/documentai/cli/internal/docai"
)

// resolveAPIURL picks the API base URL: the --api-url flag when given,
// otherwise the saved configuration.
func resolveAPIURL(cmd *cobra.Command) (string, error) {
	apiURL, _ := cmd.Flags().GetString("api-url")
	if apiURL == "" {
		cfg, err := config.Load()
		if err != nil {
			return "", err
		}
		apiURL = cfg.APIURL
	}
	if apiURL == "" {
		return "", fmt.Errorf("no API URL configured; sign in first or pass --api-url")
	}
	if err := config.ValidateURL(apiURL); err != nil {
		return "", err
	}
	return apiURL, nil
}

// --- health ---

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the DocumentAI API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL, err := resolveAPIURL(cmd)
		if err != nil {
			return err
		}

		client := docai.NewClient(apiURL)
		if err := client.Health(cmd.Context()); err != nil {
			printError("%s is not healthy: %v", apiURL, err)
			os.Exit(1)
		}

		printSuccess("Connected to API at %s", apiURL)
		return nil
	},
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Upload documents and ask one question",
	Long: `Upload one or more documents, then ask a single question against the
session they open. The answer is printed to stdout.

Examples:
  documentai ask --file report.pdf "What is the total?"
  documentai ask -f q1.csv -f q2.csv "How did revenue change?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(args[0])
		if question == "" {
			return fmt.Errorf("question must not be empty")
		}

		files, _ := cmd.Flags().GetStringArray("file")
		if len(files) == 0 {
			return fmt.Errorf("at least one --file is required")
		}

		apiURL, err := resolveAPIURL(cmd)
		if err != nil {
			return err
		}
		client := docai.NewClient(apiURL)

		// Files go up one at a time; the session from the last upload is the
		// one the question runs against.
		var sessionID string
		for _, path := range files {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}

			name := filepath.Base(path)
			printStep("Uploading %s...", name)
			sessionID, err = client.Upload(cmd.Context(), name, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("upload of %s failed: %w", name, err)
			}
		}

		printStep("Asking...")
		answer, err := client.Ask(cmd.Context(), sessionID, question)
		if err != nil {
			return err
		}
		if answer == "" {
			answer = chat.FallbackAnswer
		}

		fmt.Println(answer)
		return nil
	},
}

// --- signout ---

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the saved API URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.APIURL == "" {
			printWarning("Not signed in")
			return nil
		}

		cfg.APIURL = ""
		if err := cfg.Save(); err != nil {
			return err
		}

		printSuccess("Signed out")
		return nil
	},
}

func init() {
	healthCmd.Flags().String("api-url", "", "API base URL (defaults to the saved one)")
	askCmd.Flags().String("api-url", "", "API base URL (defaults to the saved one)")
	askCmd.Flags().StringArrayP("file", "f", nil, "document to upload (repeatable)")
}
