package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/campaign-concierge/backend/internal/logging"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
)

var rulesPath string

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Talk to the campaign concierge from a terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded .env")
		}
		if rulesPath == "" {
			rulesPath = os.Getenv("RULES_FILE")
		}
	},
	SilenceUsage: true,
}

func main() {
	logging.Preinit()

	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML file extending the built-in matcher tables (defaults to $RULES_FILE)")
	rootCmd.AddCommand(chatCmd, respondCmd, rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog() (rules.Catalog, error) {
	catalog := rules.Seed()
	if rulesPath == "" {
		return catalog, nil
	}
	return rules.LoadFile(rulesPath, catalog)
}
