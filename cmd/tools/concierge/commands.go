package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/campaign-concierge/backend/internal/model/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
)

var contextPath string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation; context is kept until you exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		return runChat(agent.NewResponder(catalog), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond [message]",
	Short: "Answer a single message and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		agentCtx := chat.NewContext()
		if contextPath != "" {
			data, err := os.ReadFile(contextPath)
			if err != nil {
				return fmt.Errorf("failed to read context file: %w", err)
			}
			if err := json.Unmarshal(data, &agentCtx); err != nil {
				return fmt.Errorf("failed to parse context file: %w", err)
			}
		}

		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return fmt.Errorf("message must not be empty")
		}

		result := agent.NewResponder(catalog).Respond(message, nil, agentCtx)
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective matcher tables as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(catalog)
	},
}

func init() {
	respondCmd.Flags().StringVar(&contextPath, "context", "", "JSON file holding the context to continue from")
}

func runChat(responder *agent.Responder, in io.Reader, out io.Writer) error {
	history := make([]chat.Message, 0, 16)
	agentCtx := chat.NewContext()

	fmt.Fprintln(out, "Type a message and press enter. Ctrl-D to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		result := responder.Respond(text, history, agentCtx)
		agentCtx = result.Context

		now := time.Now().UnixMilli()
		history = append(history,
			chat.Message{ID: uuid.NewString(), Sender: chat.SenderUser, Text: text, Timestamp: now},
			chat.Message{ID: uuid.NewString(), Sender: chat.SenderAgent, Text: result.Reply, Timestamp: now, Tags: result.Tags},
		)

		fmt.Fprintf(out, "\n%s\n\n[%s] tags=%s\n", result.Reply, result.Intent, strings.Join(result.Tags, ","))
	}
}
