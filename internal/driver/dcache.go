package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"pl0lex/internal/diag"
	"pl0lex/internal/lexer"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты токенизации по ключу (содержимое + опции лексера).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedToken - токен без FileID: при чтении span привязывается к текущему файлу.
type CachedToken struct {
	Kind  uint8
	Text  string
	Value int64
	Msg   string
	Line  uint32
	Col   uint32
	Start uint32
	End   uint32
}

// CachedError - лексическая ошибка, достаточная для восстановления *lexer.Error.
type CachedError struct {
	Code  uint16
	Line  uint32
	Col   uint32
	Start uint32
	End   uint32
	Text  string
	Msg   string
}

// DiskPayload is the on-disk representation of one tokenized file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	ContentHash Digest
	Mode        uint8
	Tokens      []CachedToken
	Errors      []CachedError
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens (creating if needed) a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// A payload written with another schema version counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", f.Name(), err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем, чтобы параллельный процесс не увидел полуудалённый каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// toDiskPayload converts a lexing result for caching.
func toDiskPayload(content Digest, mode lexer.Mode, tokens []token.Token, errs []*lexer.Error) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		ContentHash: content,
		Mode:        uint8(mode),
		Tokens:      make([]CachedToken, len(tokens)),
		Errors:      make([]CachedError, len(errs)),
	}
	for i, tok := range tokens {
		payload.Tokens[i] = CachedToken{
			Kind:  uint8(tok.Kind),
			Text:  tok.Text,
			Value: tok.Value,
			Msg:   tok.Msg,
			Line:  tok.Pos.Line,
			Col:   tok.Pos.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
	}
	for i, e := range errs {
		payload.Errors[i] = CachedError{
			Code:  uint16(e.Code),
			Line:  e.Pos.Line,
			Col:   e.Pos.Col,
			Start: e.Span.Start,
			End:   e.Span.End,
			Text:  e.Text,
			Msg:   e.Msg,
		}
	}
	return payload
}

// fromDiskPayload восстанавливает токены и ошибки, привязывая span'ы к file.
func fromDiskPayload(payload *DiskPayload, file source.FileID, filename string) ([]token.Token, []*lexer.Error) {
	tokens := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		tokens[i] = token.Token{
			Kind:  token.Kind(ct.Kind),
			Text:  ct.Text,
			Value: ct.Value,
			Msg:   ct.Msg,
			Pos:   source.LineCol{Line: ct.Line, Col: ct.Col},
			Span:  source.Span{File: file, Start: ct.Start, End: ct.End},
		}
	}
	errs := make([]*lexer.Error, len(payload.Errors))
	for i, ce := range payload.Errors {
		errs[i] = &lexer.Error{
			Code: diag.Code(ce.Code),
			File: filename,
			Pos:  source.LineCol{Line: ce.Line, Col: ce.Col},
			Span: source.Span{File: file, Start: ce.Start, End: ce.End},
			Text: ce.Text,
			Msg:  ce.Msg,
		}
	}
	return tokens, errs
}
