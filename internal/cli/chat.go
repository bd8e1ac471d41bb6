package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"assessment-chat-service/internal/client"
)

// NewChatCmd starts an interactive chat session against a running server.
func NewChatCmd() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assessment bot from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, endpoint)
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/api/chat", "chat endpoint URL")
	return cmd
}

func runChat(cmd *cobra.Command, endpoint string) error {
	c := client.New(endpoint)

	// Empty first turn fetches the welcome message.
	messages, err := c.Send(cmd.Context(), "")
	if err != nil {
		return fmt.Errorf("reach server: %w", err)
	}
	printMessages(cmd, messages)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return nil
		}

		messages, err := c.Send(cmd.Context(), line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		printMessages(cmd, messages)
	}
}

func printMessages(cmd *cobra.Command, messages []client.Message) {
	for _, m := range messages {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", m.Content)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
