package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lingosheet/internal/archive"
	"codeberg.org/snonux/lingosheet/internal/cli"
	"codeberg.org/snonux/lingosheet/internal/history"
	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/models"
	"codeberg.org/snonux/lingosheet/internal/processor"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --archive flag
	if flags.Archive {
		path := cli.HistoryPath()
		if path == "" {
			return fmt.Errorf("job history is disabled, nothing to archive")
		}
		archived, err := archive.ArchiveHistory(path)
		if err != nil {
			return fmt.Errorf("failed to archive history: %w", err)
		}
		fmt.Printf("History archived to: %s\n", archived)
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		config := cli.LLMConfig()
		if config.Provider != llm.ProviderOpenAI {
			return fmt.Errorf("--list-models needs an OpenAI-compatible provider, got %s", config.Provider)
		}
		lister := models.NewLister(config.APIKey, config.BaseURL)
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	switch {
	case flags.ListJobs:
		return proc.ListJobs(ctx, history.DefaultListLimit)
	case flags.BatchFile != "":
		_, err := proc.ProcessBatch(ctx)
		return err
	case flags.Chat:
		_, err := proc.RunChat(ctx, os.Stdin)
		return err
	case len(args) > 0:
		return proc.ProcessSingleText(ctx, args[0])
	default:
		// No input provided - serve the HTTP API by default
		return proc.RunServer(ctx)
	}
}
