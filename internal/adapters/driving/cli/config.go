package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token <todoist|habitify>",
	Short: "Store an API credential in the config file",
	Long: `Prompts for the credential and stores it in the config file.
Input is hidden when run from a terminal. Environment variables
(TODOIST_API_TOKEN, HABITIFY_API_KEY) still take precedence at runtime.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetToken,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetTokenCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := wireConfig(); err != nil {
		return err
	}

	cfg := configStore.Config()
	cmd.Printf("Config file:    %s\n", configStore.Path())
	cmd.Printf("Todoist token:  %s\n", redact(cfg.Todoist.Token))
	cmd.Printf("Habitify key:   %s\n", redact(cfg.Habitify.APIKey))
	if cfg.Todoist.BaseURL != "" {
		cmd.Printf("Todoist URL:    %s\n", cfg.Todoist.BaseURL)
	}
	if cfg.Habitify.BaseURL != "" {
		cmd.Printf("Habitify URL:   %s\n", cfg.Habitify.BaseURL)
	}
	if cfg.DataDir != "" {
		cmd.Printf("Data dir:       %s\n", cfg.DataDir)
	}
	return nil
}

func runConfigSetToken(cmd *cobra.Command, args []string) error {
	service := strings.ToLower(args[0])
	if service != "todoist" && service != "habitify" {
		return fmt.Errorf("unknown service %q (want todoist or habitify)", args[0])
	}

	if err := wireConfig(); err != nil {
		return err
	}

	secret, err := readSecret(cmd, fmt.Sprintf("Enter %s credential: ", service))
	if err != nil {
		return err
	}
	if secret == "" {
		return fmt.Errorf("empty credential")
	}

	if service == "todoist" {
		err = configStore.SetTodoistToken(secret)
	} else {
		err = configStore.SetHabitifyKey(secret)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Stored %s credential in %s\n", service, configStore.Path())
	return nil
}

// readSecret reads a credential from stdin, hiding input when attached to
// a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read credential: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	// Piped input (tests, scripts).
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func redact(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
