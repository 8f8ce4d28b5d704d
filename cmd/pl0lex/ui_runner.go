package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"pl0lex/internal/driver"
	"pl0lex/internal/source"
	"pl0lex/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runDirWithUI токенизирует файлы, пока Bubble Tea рисует прогресс в out.
func runDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.TokenizeFiles(ctx, dir, files, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// UI мог завершиться раньше: дочитываем события, чтобы не блокировать драйвер
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
