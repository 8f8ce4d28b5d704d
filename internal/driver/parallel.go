package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pl0lex/internal/diag"
	"pl0lex/internal/observ"
	"pl0lex/internal/source"
	"pl0lex/internal/trace"
)

// SourceExt is the extension of PL/0 source files picked up in directory mode.
const SourceExt = ".pl0"

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path string // путь к файлу
	*TokenizeResult
	LoadErr error // файл не загрузился; в TokenizeResult только заглушка File и Bag с IO4001
}

// Failed reports whether the file failed to load or had lexical errors.
func (r TokenizeDirResult) Failed() bool {
	return r.LoadErr != nil || r.TokenizeResult.Failed()
}

// ListSourceFiles возвращает отсортированный список всех *.pl0 файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.pl0 файлы в директории параллельно.
// Результаты идут в порядке путей независимо от порядка завершения.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return TokenizeFiles(ctx, dir, files, opts)
}

// TokenizeFiles tokenizes an explicit file list in parallel.
func TokenizeFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRun, "tokenize-dir", trace.ParentFrom(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span.ID())

	for _, path := range files {
		emitProgress(opts.Progress, ProgressEvent{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet заполняется до запуска горутин: дальше он только читается
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	loadSpan := trace.Begin(tracer, trace.ScopePhase, "load", span.ID())
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			fileIDs[path] = fileSet.AddFailed(path)
			continue
		}
		fileIDs[path] = fileID
	}
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[path]}, "failed to load file: "+loadErr.Error()))
				trace.Error(tracer, "load", loadErr.Error(), span.ID())
				results[i] = TokenizeDirResult{
					Path:           path,
					TokenizeResult: &TokenizeResult{FileSet: fileSet, File: fileSet.Get(fileIDs[path]), Bag: bag, Err: loadErr},
					LoadErr:        loadErr,
				}
				emitProgress(opts.Progress, ProgressEvent{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			timer := observ.NewTimer()
			res := tokenizeFile(gctx, fileSet, fileSet.Get(fileIDs[path]), path, opts, timer, span.ID())
			res.Timing = timer.Report()
			results[i] = TokenizeDirResult{Path: path, TokenizeResult: res}

			status := StatusDone
			if res.Failed() {
				status = StatusError
			}
			emitProgress(opts.Progress, ProgressEvent{File: path, Stage: StageLex, Status: status, Cached: res.Cached})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags собирает диагностики всех файлов (включая IO4001 для
// незагруженных) в один отсортированный Bag с общим лимитом.
func MergeBags(results []TokenizeDirResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.TokenizeResult == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			merged.Add(d)
		}
	}
	merged.Sort()
	return merged
}
