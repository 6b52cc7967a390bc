package main

import (
	"fmt"
	"os"

	"github.com/aretw0/scribe/internal/cli"
	"github.com/aretw0/scribe/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe is a session-aware article assistant",
	Long: `Scribe answers questions about an article, suggests topics, summarizes it,
and walks users through writing a new article one step at a time.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("env", ".env", "Path to a .env file (ignored when missing)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (overrides SESSION_STORE)")
	rootCmd.PersistentFlags().String("llm", "", "Generation backend: gemini, ollama or memory (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("docs", "", "Document store: memory, loam or mongo (overrides DOCUMENT_STORE)")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Session.Store = v
	}
	if v, _ := cmd.Flags().GetString("llm"); v != "" {
		cfg.LLM.Provider = v
	}
	if v, _ := cmd.Flags().GetString("docs"); v != "" {
		cfg.Documents.Store = v
	}
	return cfg, nil
}

// buildApp loads the configuration and wires the assistant.
func buildApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger := cli.NewLogger(cfg.LogLevel, debug)
	return cli.Build(cmd.Context(), cfg, logger)
}
