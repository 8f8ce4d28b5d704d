package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"pl0lex/internal/diag"
	"pl0lex/internal/lexer"
	"pl0lex/internal/observ"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
	"pl0lex/internal/trace"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// Options configures tokenization of one file or a directory.
type Options struct {
	Lexer          lexer.Options // Reporter, File и Filename заполняет драйвер
	MaxDiagnostics int
	Cache          *DiskCache   // nil - без кэша
	Stdin          io.Reader    // для StdinPath; nil - os.Stdin
	Progress       ProgressSink // nil - без событий
	Jobs           int          // только для каталога; <= 0 - GOMAXPROCS
}

// TokenizeResult holds everything produced for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Err     error // первая ошибка (halt) или все лексические ошибки (recover); nil при успехе
	Cached  bool
	Timing  observ.Report
}

// Failed reports whether tokenization produced any error.
func (r *TokenizeResult) Failed() bool {
	return r != nil && r.Err != nil
}

// Tokenize loads path (or stdin for "-") and scans it to EOF.
// The returned error is non-nil only when the input could not be loaded;
// lexical and read errors end up in TokenizeResult.Err and Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRun, "tokenize", trace.ParentFrom(ctx))
	defer span.End("")

	timer := observ.NewTimer()
	fs := source.NewFileSet()

	loadIdx := timer.Begin("load")
	loadSpan := trace.Begin(tracer, trace.ScopePhase, "load", span.ID())
	fileID, err := loadInput(fs, path, opts.Stdin)
	loadSpan.End(path)
	timer.End(loadIdx, path)
	if err != nil {
		trace.Error(tracer, "load", err.Error(), span.ID())
		return nil, err
	}

	res := tokenizeFile(ctx, fs, fs.Get(fileID), path, opts, timer, span.ID())
	res.Timing = timer.Report()
	span.Attr("tokens", strconv.Itoa(len(res.Tokens)))
	return res, nil
}

func loadInput(fs *source.FileSet, path string, stdin io.Reader) (source.FileID, error) {
	if path != StdinPath {
		return fs.Load(path)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return fs.LoadReader("<stdin>", stdin, source.FileVirtual)
}

// tokenizeFile сканирует уже загруженный файл: кэш, лексер, диагностики, трассировка.
// progressKey - имя файла в событиях прогресса.
func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, progressKey string, opts Options, timer *observ.Timer, parent uint64) *TokenizeResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, parent)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	lexOpts := opts.Lexer
	lexOpts.Reporter = reporter
	lexOpts.File = file.ID
	lexOpts.Filename = file.Path

	res := &TokenizeResult{FileSet: fs, File: file, Bag: bag}
	key := cacheKey(Digest(file.Hash), lexOpts)

	if opts.Cache != nil {
		emitProgress(opts.Progress, ProgressEvent{File: progressKey, Stage: StageCache, Status: StatusWorking})
		idx := timer.Begin("cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		timer.End(idx, hitNote(hit))
		switch {
		case err != nil:
			// битый кэш не мешает токенизации
			reporter.Report(diag.IOCacheError, diag.SevWarning, source.Span{File: file.ID}, err.Error(), nil)
		case hit && payload.ContentHash == Digest(file.Hash):
			tokens, errs := fromDiskPayload(&payload, file.ID, file.Path)
			for _, e := range errs {
				reporter.Report(e.Code, diag.SevError, e.Span, e.Msg, nil)
				trace.Error(tracer, "lex-error", e.Error(), span.ID(), trace.Attr{Key: "code", Value: e.Code.ID()})
			}
			res.Tokens = tokens
			res.Err = joinLexErrors(errs)
			res.Cached = true
			span.Attr("cached", "true").End(fmt.Sprintf("%d tokens", len(tokens)))
			return res
		}
	}

	emitProgress(opts.Progress, ProgressEvent{File: progressKey, Stage: StageLex, Status: StatusWorking})
	idx := timer.Begin("lex")
	lx := lexer.NewFromFile(file, lexOpts)
	var lexErrs []*lexer.Error
	for {
		tok, err := lx.Next()
		if err != nil {
			trace.Error(tracer, "lex-error", err.Error(), span.ID())
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				// ошибка чтения: результат неполный, в кэш не пишем
				res.Err = errors.Join(append(errorsOf(lexErrs), err)...)
				timer.End(idx, "read error")
				span.End("read error")
				return res
			}
			lexErrs = append(lexErrs, lexErr)
		}
		if tracer.Level() >= trace.LevelDebug {
			trace.Point(tracer, trace.ScopeToken, tok.Kind.Sym(), tok.Text, span.ID())
		}
		if tok.Kind == token.Invalid || err == nil || lexOpts.Mode == lexer.ModeRecover {
			res.Tokens = append(res.Tokens, tok)
		}
		if tok.Kind == token.EOF || lx.Done() {
			break
		}
	}
	timer.End(idx, fmt.Sprintf("%d tokens", len(res.Tokens)))
	res.Err = joinLexErrors(lexErrs)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toDiskPayload(Digest(file.Hash), lexOpts.Mode, res.Tokens, lexErrs)); err != nil {
			reporter.Report(diag.IOCacheError, diag.SevWarning, source.Span{File: file.ID}, err.Error(), nil)
		}
	}

	span.Attr("tokens", strconv.Itoa(len(res.Tokens))).End("")
	return res
}

func hitNote(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func errorsOf(errs []*lexer.Error) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// joinLexErrors returns nil, the single error, or all errors joined.
func joinLexErrors(errs []*lexer.Error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return errors.Join(errorsOf(errs)...)
}
