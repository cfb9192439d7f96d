package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/lingosheet/internal/sheet"
)

// Translator translates one text into a target language
type Translator interface {
	TranslateText(ctx context.Context, text, targetLanguage string) (string, error)
}

// ProgressFunc is called after each row finishes
type ProgressFunc func(done, total int)

// Pipeline translates the first cell of each row
type Pipeline struct {
	translator Translator
	config     *Config
	onProgress ProgressFunc
}

// NewPipeline creates a pipeline. A nil config selects DefaultConfig.
func NewPipeline(translator Translator, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{
		translator: translator,
		config:     config,
	}
}

// OnProgress sets the progress callback
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.onProgress = fn
}

// Config returns the limits the pipeline runs with
func (p *Pipeline) Config() *Config {
	return p.config
}

// Run translates rows into language. Rows beyond MaxRows are dropped and
// counted in the report. Failures are recorded per row and never stop the
// remaining rows.
func (p *Pipeline) Run(ctx context.Context, rows []sheet.Row, language string) *Report {
	report := &Report{InputRows: len(rows)}
	if len(rows) > p.config.MaxRows {
		report.Dropped = len(rows) - p.config.MaxRows
		rows = rows[:p.config.MaxRows]
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.effectiveBatchTimeout())
	defer cancel()

	results := make([]RowResult, len(rows))
	concurrency := p.config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	finish := func(i int, result RowResult) {
		results[i] = result
		mu.Lock()
		done++
		current := done
		mu.Unlock()
		if p.onProgress != nil {
			p.onProgress(current, len(rows))
		}
	}

	for i, row := range rows {
		result, needsCall := p.prepare(i, row)
		if !needsCall {
			finish(i, result)
			continue
		}

		if i > 0 && p.config.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.config.Delay):
			}
		}

		if ctx.Err() != nil {
			finish(i, failed(result, abortReason(ctx.Err())))
			continue
		}
		select {
		case <-ctx.Done():
			finish(i, failed(result, abortReason(ctx.Err())))
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, result RowResult) {
			defer func() {
				<-sem
				wg.Done()
			}()
			finish(i, p.translate(ctx, result, language))
		}(i, result)
	}

	wg.Wait()
	report.Results = results
	return report
}

// prepare classifies a row and applies the overflow policy. It reports
// whether the row still needs a translator call.
func (p *Pipeline) prepare(index int, row sheet.Row) (RowResult, bool) {
	result := RowResult{Index: index, Status: StatusEmpty}

	cell, ok := row.First()
	if !ok || !cell.IsText() || strings.TrimSpace(cell.Value) == "" {
		return result, false
	}

	result.Original = cell.Value
	result.Sent = cell.Value

	runes := []rune(cell.Value)
	if len(runes) > p.config.MaxChars {
		if p.config.Overflow == OverflowReject {
			return failed(result, fmt.Sprintf("cell exceeds %d characters", p.config.MaxChars)), false
		}
		result.Sent = string(runes[:p.config.MaxChars])
	}
	return result, true
}

func (p *Pipeline) translate(ctx context.Context, result RowResult, language string) RowResult {
	if ctx.Err() != nil {
		return failed(result, abortReason(ctx.Err()))
	}

	rowCtx, cancel := context.WithTimeout(ctx, p.config.effectiveRowTimeout())
	defer cancel()

	translation, err := p.translator.TranslateText(rowCtx, result.Sent, language)
	if err != nil {
		return failed(result, err.Error())
	}

	result.Translation = translation
	result.Status = StatusTranslated
	return result
}

func failed(result RowResult, reason string) RowResult {
	result.Status = StatusFailed
	result.Reason = reason
	return result
}

func abortReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "batch timeout exceeded"
	}
	return "batch cancelled"
}
