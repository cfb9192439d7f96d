package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/lingosheet/internal"
	"codeberg.org/snonux/lingosheet/internal/batch"
	"codeberg.org/snonux/lingosheet/internal/chat"
	"codeberg.org/snonux/lingosheet/internal/cli"
	"codeberg.org/snonux/lingosheet/internal/history"
	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/server"
	"codeberg.org/snonux/lingosheet/internal/sheet"
	"codeberg.org/snonux/lingosheet/internal/translation"
)

// Processor runs the CLI modes
type Processor struct {
	flags      *cli.Flags
	translator *translation.Translator
	out        io.Writer
}

// NewProcessor creates a processor with the provider described by the
// current configuration
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	provider, err := llm.NewProvider(cli.LLMConfig())
	if err != nil {
		return nil, err
	}
	return NewProcessorWithProvider(flags, provider, os.Stdout)
}

// NewProcessorWithProvider creates a processor around an existing provider
// that writes its user-facing output to out
func NewProcessorWithProvider(flags *cli.Flags, provider llm.Provider, out io.Writer) (*Processor, error) {
	prompts, err := translation.LoadPrompts(cli.PromptsPath())
	if err != nil {
		return nil, err
	}
	return &Processor{
		flags:      flags,
		translator: translation.NewTranslator(provider, prompts, cli.RowTimeout()),
		out:        out,
	}, nil
}

// ProcessSingleText translates one text and prints the result
func (p *Processor) ProcessSingleText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to translate")
	}
	if err := p.translator.Ready(); err != nil {
		return err
	}

	translated, err := p.translator.TranslateText(ctx, text, p.flags.Language)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	fmt.Fprintln(p.out, translated)
	return nil
}

// ProcessBatch translates the batch file named by the flags and writes the
// result spreadsheet. Spreadsheets (.xlsx) contribute their first column;
// any other file is read as text with one entry per line.
func (p *Processor) ProcessBatch(ctx context.Context) (*batch.Report, error) {
	if err := p.translator.Ready(); err != nil {
		return nil, err
	}

	config, err := cli.BatchConfig()
	if err != nil {
		return nil, err
	}

	rows, err := readBatchInput(p.flags.BatchFile)
	if err != nil {
		return nil, err
	}

	outputPath := p.flags.OutputFile
	if outputPath == "" {
		outputPath = DefaultOutputPath(p.flags.BatchFile)
	}

	pipeline := batch.NewPipeline(p.translator, config)
	pipeline.OnProgress(func(done, total int) {
		fmt.Fprintf(p.out, "\rProcessing %d/%d", done, total)
	})

	start := time.Now()
	report := pipeline.Run(ctx, rows, p.flags.Language)
	fmt.Fprintln(p.out)

	output, err := sheet.Write(report.Pairs())
	if err != nil {
		return report, err
	}
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		return report, fmt.Errorf("failed to write output file: %w", err)
	}

	p.recordJob(ctx, history.Job{
		ID:        internal.GenerateJobID(p.flags.BatchFile),
		FileName:  filepath.Base(p.flags.BatchFile),
		Language:  p.flags.Language,
		Provider:  p.translator.ProviderName(),
		InputRows: report.InputRows,
		Processed: report.Processed(),
		Dropped:   report.Dropped,
		Failed:    report.Count(batch.StatusFailed),
		Duration:  time.Since(start),
	})

	p.printSummary(report, outputPath)
	return report, nil
}

func (p *Processor) printSummary(report *batch.Report, outputPath string) {
	fmt.Fprintf(p.out, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(p.out, "Total rows: %d\n", report.InputRows)
	fmt.Fprintf(p.out, "Translated: %d\n", report.Count(batch.StatusTranslated))
	fmt.Fprintf(p.out, "Empty: %d\n", report.Count(batch.StatusEmpty))
	if failed := report.Count(batch.StatusFailed); failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", failed)
		for _, result := range report.Results {
			if result.Status == batch.StatusFailed {
				fmt.Fprintf(p.out, "  row %d: %s\n", result.Index+1, result.Reason)
			}
		}
	}
	if report.Truncated() {
		fmt.Fprintf(p.out, "Dropped: %d (only the first %d rows are translated)\n", report.Dropped, report.Processed())
	}
	fmt.Fprintf(p.out, "Output: %s\n", outputPath)
	fmt.Fprintf(p.out, "=================================\n")
}

// RunChat runs an interactive session reading one message per line from in
// until EOF or /quit. Failed replies print chat.ErrorReply and the session
// continues.
func (p *Processor) RunChat(ctx context.Context, in io.Reader) (*chat.Log, error) {
	session := chat.NewLog()

	if err := p.translator.Ready(); err != nil {
		return session, err
	}

	fmt.Fprintf(p.out, "Chatting in %s via %s. Type /quit to leave.\n",
		translation.LanguageName(p.flags.Language), p.translator.ProviderName())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(p.out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		messages, err := chat.Exchange(ctx, p.translator, line, p.flags.Language)
		if err != nil {
			log.Printf("chat error: %v", err)
			session.Append(chat.Message{Role: chat.RoleUser, Content: line})
			fmt.Fprintln(p.out, chat.ErrorReply)
			continue
		}

		session.Append(messages...)
		fmt.Fprintln(p.out, messages[1].Content)

		if ctx.Err() != nil {
			break
		}
	}
	fmt.Fprintln(p.out)

	if err := scanner.Err(); err != nil {
		return session, fmt.Errorf("failed to read input: %w", err)
	}
	return session, nil
}

// RunServer serves the HTTP API until ctx is cancelled
func (p *Processor) RunServer(ctx context.Context) error {
	batchConfig, err := cli.BatchConfig()
	if err != nil {
		return err
	}

	var jobs server.JobStore
	store, err := p.openHistory()
	if err != nil {
		log.Printf("Warning: job history disabled: %v", err)
	} else if store != nil {
		defer store.Close()
		jobs = store
	}

	srv := server.New(cli.ServerConfig(p.flags.Language), p.translator, batchConfig, jobs)
	return srv.ListenAndServe(ctx)
}

// ListJobs prints the most recent batch jobs
func (p *Processor) ListJobs(ctx context.Context, limit int) error {
	store, err := p.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("job history is disabled (set history.db or --history-db)")
	}
	defer store.Close()

	jobs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(p.out, "No batch jobs recorded yet")
		return nil
	}

	for _, job := range jobs {
		fmt.Fprintf(p.out, "%s  %-24s %-5s %3d/%-3d rows  %d failed  %d dropped  %s\n",
			job.CreatedAt.Local().Format("2006-01-02 15:04"), job.FileName, job.Language,
			job.Processed, job.InputRows, job.Failed, job.Dropped, job.Duration.Round(time.Millisecond))
	}
	return nil
}

func (p *Processor) openHistory() (*history.Store, error) {
	path := cli.HistoryPath()
	if path == "" {
		return nil, nil
	}
	return history.Open(path)
}

func (p *Processor) recordJob(ctx context.Context, job history.Job) {
	store, err := p.openHistory()
	if err != nil {
		log.Printf("Warning: failed to open job history: %v", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	if err := store.Record(ctx, job); err != nil {
		log.Printf("Warning: failed to record job %s: %v", job.ID, err)
	}
}

// DefaultOutputPath returns translated_<name>.xlsx next to the input file
func DefaultOutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), "translated_"+stem+".xlsx")
}

func readBatchInput(path string) ([]sheet.Row, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return batch.ReadTextFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	rows, err := sheet.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
