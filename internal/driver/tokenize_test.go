package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"pl0lex/internal/diag"
	"pl0lex/internal/driver"
	"pl0lex/internal/lexer"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.pl0", "var x;\nbegin x := 1 end.\n")
	res, err := driver.Tokenize(context.Background(), path, driver.Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Failed() || res.Bag.Len() != 0 {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if n := len(res.Tokens); n != 10 || res.Tokens[n-1].Kind != token.EOF {
		t.Errorf("got %d tokens, last %v", n, res.Tokens[n-1].Kind)
	}
	if len(res.Timing.Phases) < 2 {
		t.Errorf("timings = %+v", res.Timing)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := driver.Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.pl0"), driver.Options{MaxDiagnostics: 10})
	if !errors.Is(err, source.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestTokenizeDirectoryArgumentIsUnreadable(t *testing.T) {
	_, err := driver.Tokenize(context.Background(), t.TempDir(), driver.Options{MaxDiagnostics: 10})
	if !errors.Is(err, source.ErrFileUnreadable) {
		t.Fatalf("err = %v, want ErrFileUnreadable", err)
	}
}

func TestTokenizeStdin(t *testing.T) {
	res, err := driver.Tokenize(context.Background(), driver.StdinPath, driver.Options{
		MaxDiagnostics: 10,
		Stdin:          strings.NewReader("write 7."),
	})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.File.Path != "<stdin>" || len(res.Tokens) != 4 {
		t.Errorf("path=%q tokens=%d", res.File.Path, len(res.Tokens))
	}
}

func TestTokenizeHaltReportsFirstError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.pl0", "var x;\nx := @ $")
	res, err := driver.Tokenize(context.Background(), path, driver.Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Err, lexer.ErrIllegalCharacter) {
		t.Fatalf("Err = %v", res.Err)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.LexIllegalChar {
		t.Errorf("bag = %+v", res.Bag.Items())
	}
	// токены до ошибки, без EOF
	if len(res.Tokens) != 5 || res.Tokens[len(res.Tokens)-1].Kind != token.Becomes {
		t.Errorf("tokens = %+v", res.Tokens)
	}
}

func TestTokenizeRecoverCollectsAll(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.pl0", "x := @ $ 99999")
	opts := driver.Options{MaxDiagnostics: 10, Lexer: lexer.Options{Mode: lexer.ModeRecover}}
	res, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 3 {
		t.Fatalf("bag has %d diagnostics, want 3", res.Bag.Len())
	}
	for _, sentinel := range []error{lexer.ErrIllegalCharacter, lexer.ErrNumericOverflow} {
		if !errors.Is(res.Err, sentinel) {
			t.Errorf("Err misses %v", sentinel)
		}
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("recover mode must reach EOF, last = %v", last.Kind)
	}
}

func TestTokenizeCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "c.pl0", "const n = 5; x := ?")
	opts := driver.Options{MaxDiagnostics: 10, Cache: cache, Lexer: lexer.Options{Mode: lexer.ModeRecover}}

	first, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run must miss")
	}

	second, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run must hit")
	}
	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token counts differ: %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		if first.Tokens[i] != second.Tokens[i] {
			t.Errorf("token %d: %+v vs %+v", i, first.Tokens[i], second.Tokens[i])
		}
	}
	if !errors.Is(second.Err, lexer.ErrIllegalCharacter) || second.Bag.Len() != first.Bag.Len() {
		t.Errorf("cached errors lost: %v, bag %d", second.Err, second.Bag.Len())
	}

	// другой режим - другой ключ
	opts.Lexer.Mode = lexer.ModeHalt
	third, err := driver.Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("changing options must miss the cache")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	var key driver.Digest
	key[0] = 1
	if err := cache.Put(key, &driver.DiskPayload{Schema: 1}); err != nil {
		t.Fatal(err)
	}
	var out driver.DiskPayload
	if hit, err := cache.Get(key, &out); !hit || err != nil {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Error("entry survived DropAll")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := driver.NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key driver.Digest
	if err := cache.Put(key, &driver.DiskPayload{Schema: 999}); err != nil {
		t.Fatal(err)
	}
	var out driver.DiskPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Errorf("Get = %v, %v; want miss", hit, err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.ProgressEvent
}

func (s *recordingSink) OnEvent(ev driver.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pl0", "var b.")
	writeFile(t, dir, "a.pl0", "var a.")
	writeFile(t, dir, "sub/c.pl0", "x := #")
	writeFile(t, dir, "notes.txt", "ignored @@@")

	sink := &recordingSink{}
	_, results, err := driver.TokenizeDir(context.Background(), dir, driver.Options{MaxDiagnostics: 10, Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantNames := []string{"a.pl0", "b.pl0", filepath.Join("sub", "c.pl0")}
	for i, r := range results {
		if !strings.HasSuffix(r.Path, wantNames[i]) {
			t.Errorf("result %d = %s, want %s", i, r.Path, wantNames[i])
		}
	}
	if results[0].Failed() || results[1].Failed() {
		t.Error("a.pl0 and b.pl0 must succeed")
	}
	if !errors.Is(results[2].Err, lexer.ErrUnterminatedComment) {
		t.Errorf("c.pl0 err = %v", results[2].Err)
	}

	merged := driver.MergeBags(results, 10)
	if merged.Len() != 1 {
		t.Errorf("merged bag has %d diagnostics, want 1", merged.Len())
	}

	done := 0
	for _, ev := range sink.events {
		if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
			done++
		}
	}
	if done != 3 {
		t.Errorf("got %d terminal progress events, want 3", done)
	}
}

func TestTokenizeDirCacheProgress(t *testing.T) {
	dir := t.TempDir()
	cache, err := driver.NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "a.pl0", "var a.")

	tests := []struct {
		name       string
		wantStages []driver.Stage
		wantCached bool
	}{
		{"miss", []driver.Stage{driver.StageCache, driver.StageLex}, false},
		{"hit", []driver.Stage{driver.StageCache}, true},
	}
	for _, tt := range tests {
		sink := &recordingSink{}
		_, results, err := driver.TokenizeDir(context.Background(), dir, driver.Options{MaxDiagnostics: 10, Cache: cache, Progress: sink})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if results[0].Cached != tt.wantCached {
			t.Errorf("%s: cached = %v", tt.name, results[0].Cached)
		}
		var stages []driver.Stage
		for _, ev := range sink.events {
			if ev.File != path {
				t.Errorf("%s: event for %q, want %q", tt.name, ev.File, path)
			}
			if ev.Status == driver.StatusWorking {
				stages = append(stages, ev.Stage)
			}
		}
		if !slices.Equal(stages, tt.wantStages) {
			t.Errorf("%s: working stages = %v, want %v", tt.name, stages, tt.wantStages)
		}
	}
}

func TestTokenizeDirLoadFailureInMergedBag(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pl0", "var a.")
	broken := filepath.Join(dir, "broken.pl0")
	if err := os.Symlink(filepath.Join(dir, "missing"), broken); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	fs, results, err := driver.TokenizeDir(context.Background(), dir, driver.Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[1].LoadErr == nil || !results[1].Failed() {
		t.Fatalf("unexpected results: %+v", results)
	}

	merged := driver.MergeBags(results, 10)
	if merged.Len() != 1 {
		t.Fatalf("merged bag has %d diagnostics, want 1", merged.Len())
	}
	d := merged.Items()[0]
	if d.Code != diag.IOLoadFileError {
		t.Errorf("code = %v, want IO4001", d.Code)
	}
	f := fs.Get(d.Primary.File)
	if f == nil || f.Path != filepath.ToSlash(broken) || f.Flags&source.FileLoadFailed == 0 {
		t.Errorf("diagnostic points at %+v, want placeholder for %s", f, broken)
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := driver.TokenizeDir(context.Background(), t.TempDir(), driver.Options{MaxDiagnostics: 10})
	if err != nil || len(results) != 0 || fs == nil {
		t.Errorf("got %v, %d results, fs=%v", err, len(results), fs)
	}
}

func TestTokenizeDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pl0", "var a.")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.TokenizeDir(ctx, dir, driver.Options{MaxDiagnostics: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
