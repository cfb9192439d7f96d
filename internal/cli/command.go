package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingosheet/internal"
)

// APIKeyEnv is the environment variable holding the completion API key
const APIKeyEnv = "INFINI_API_KEY"

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingosheet [text]",
		Short: "LLM translation server and spreadsheet translator",
		Long: `lingosheet translates chat messages and spreadsheets through an
OpenAI-compatible completion API (Gemini and Ollama are supported too).

Without arguments it serves the HTTP API. Given text, it translates that
text once and prints the result.

Examples:
  lingosheet                               # Serve the HTTP API (default)
  lingosheet "Good morning" -l de          # Translate one text
  lingosheet --batch phrases.xlsx -l fr    # Translate a spreadsheet
  lingosheet --batch lines.txt -o out.xlsx # Translate a text file, one entry per line
  lingosheet --chat -l ja                  # Interactive chat session`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingosheet.yaml)")

	// Mode flags
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Target language code (e.g. de, fr, zh)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate the first column of an .xlsx file, or a .txt file with one entry per line")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output spreadsheet for --batch (default: translated_<input>.xlsx)")
	cmd.Flags().BoolVar(&flags.Chat, "chat", false, "Start an interactive chat session on stdin")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List models available at the configured endpoint")
	cmd.Flags().BoolVar(&flags.ListJobs, "jobs", false, "List recent batch jobs from the history database")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the history database into a dated archive directory")

	// Server flags
	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "HTTP listen address")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Completion provider: openai, gemini or ollama")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "API base URL (default depends on provider)")

	// Batch flags
	cmd.Flags().IntVar(&flags.MaxRows, "max-rows", flags.MaxRows, "Maximum rows translated per batch; the rest are dropped and reported")
	cmd.Flags().IntVar(&flags.MaxChars, "max-chars", flags.MaxChars, "Maximum characters per cell")
	cmd.Flags().StringVar(&flags.Overflow, "overflow", flags.Overflow, "Overlong cells: truncate (translate the first max-chars characters) or reject")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Rows translated in parallel (1 is sequential)")

	// Storage flags
	cmd.Flags().StringVar(&flags.HistoryDB, "history-db", flags.HistoryDB, "Job history database (empty disables history)")
	cmd.Flags().StringVar(&flags.PromptsFile, "prompts", "", "YAML file overriding the batch and chat prompts")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("llm.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("llm.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("batch.max_rows", cmd.Flags().Lookup("max-rows"))
	viper.BindPFlag("batch.max_chars", cmd.Flags().Lookup("max-chars"))
	viper.BindPFlag("batch.overflow", cmd.Flags().Lookup("overflow"))
	viper.BindPFlag("batch.concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("history.db", cmd.Flags().Lookup("history-db"))
	viper.BindPFlag("prompts.file", cmd.Flags().Lookup("prompts"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingosheet" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingosheet")
	}

	// Environment variables, e.g. LINGOSHEET_LLM_API_KEY for llm.api_key
	viper.SetEnvPrefix("LINGOSHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the completion API key from environment or config
func GetAPIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	return viper.GetString("llm.api_key")
}
