package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

// Lexer превращает поток байтов в токены PL/0. Один экземпляр - один источник;
// не безопасен для конкурентного использования.
type Lexer struct {
	cursor *Cursor
	lexeme *Lexeme
	opts   Options

	done   bool  // EOF уже выдан
	halted error // первая ошибка в режиме halt или ошибка чтения
}

// New creates a lexer over r.
func New(r io.Reader, opts Options) *Lexer {
	opts = opts.WithDefaults()
	return &Lexer{
		cursor: NewCursor(r),
		lexeme: NewLexeme(opts.MaxIdentLength),
		opts:   opts,
	}
}

// NewFromFile creates a lexer over an already loaded source file.
func NewFromFile(f *source.File, opts Options) *Lexer {
	opts.File = f.ID
	if opts.Filename == "" {
		opts.Filename = f.Path
	}
	return New(bytes.NewReader(f.Content), opts)
}

// Next возвращает следующий значимый токен.
//
// После EOF всегда возвращает EOF. При лексической ошибке возвращается *Error:
// в ModeHalt лексер останавливается и дальше возвращает ту же ошибку, в
// ModeRecover возвращается токен Invalid вместе с ошибкой, а сканирование
// продолжается со следующей границы trivia.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.halted != nil {
		return lx.eofToken(), lx.halted
	}
	if lx.done {
		return lx.eofToken(), nil
	}

	if lexErr := lx.skipTrivia(); lexErr != nil {
		return lx.fail(lexErr)
	}

	lx.cursor.MarkStart()
	lx.lexeme.Reset()

	ch, ok := lx.cursor.Peek()
	if !ok {
		if err := lx.cursor.Err(); err != nil {
			return lx.failIO(err)
		}
		lx.done = true
		return lx.eofToken(), nil
	}

	var (
		tok    token.Token
		lexErr *Error
	)
	switch {
	case isLetter(ch):
		tok, lexErr = lx.scanIdentOrKeyword()
	case isDigit(ch):
		tok, lexErr = lx.scanNumber()
	case isPunct(ch):
		tok, lexErr = lx.scanOperatorOrPunct()
	default:
		lx.cursor.Advance()
		lexErr = lx.illegalChar(ch)
	}

	if err := lx.cursor.Err(); err != nil {
		return lx.failIO(err)
	}
	if lexErr != nil {
		return lx.fail(lexErr)
	}
	return tok, nil
}

// All scans to EOF. In ModeHalt it stops at the first error and returns the
// tokens produced before it. In ModeRecover it returns every token (Invalid
// ones included) and all lexical errors joined.
func (lx *Lexer) All() ([]token.Token, error) {
	var (
		tokens []token.Token
		errs   []error
	)
	for {
		tok, err := lx.Next()
		if err != nil {
			var lexErr *Error
			if lx.opts.Mode != ModeRecover || !errors.As(err, &lexErr) {
				return tokens, errors.Join(append(errs, err)...)
			}
			errs = append(errs, err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, errors.Join(errs...)
		}
	}
}

// Done reports whether the lexer has produced EOF or halted on an error.
func (lx *Lexer) Done() bool {
	return lx.done || lx.halted != nil
}

// Filename returns the name used in diagnostics.
func (lx *Lexer) Filename() string {
	return lx.opts.Filename
}

// Pos returns the position of the next unread byte.
func (lx *Lexer) Pos() source.LineCol {
	return lx.cursor.Pos()
}

// Options returns the effective options, defaults applied.
func (lx *Lexer) Options() Options {
	return lx.opts
}

func (lx *Lexer) emit(kind token.Kind, text string) token.Token {
	return token.Token{
		Kind: kind,
		Text: text,
		Pos:  lx.cursor.Start(),
		Span: lx.spanFromStart(),
	}
}

func (lx *Lexer) spanFromStart() source.Span {
	return source.Span{File: lx.opts.File, Start: lx.cursor.StartOffset(), End: lx.cursor.Offset()}
}

func (lx *Lexer) eofToken() token.Token {
	return token.Token{
		Kind: token.EOF,
		Pos:  lx.cursor.Pos(),
		Span: source.PointAt(lx.opts.File, lx.cursor.Offset()),
	}
}

func (lx *Lexer) fail(e *Error) (token.Token, error) {
	lx.report(e)
	if lx.opts.Mode != ModeRecover {
		lx.halted = e
		lx.lexeme.Reset()
		return lx.eofToken(), e
	}

	lx.resync()
	tok := token.Token{
		Kind: token.Invalid,
		Text: e.Text,
		Msg:  e.Msg,
		Pos:  lx.cursor.Start(),
		Span: lx.spanFromStart(),
	}
	lx.lexeme.Reset()
	return tok, e
}

func (lx *Lexer) failIO(err error) (token.Token, error) {
	wrapped := fmt.Errorf("%s: read error: %w", lx.opts.Filename, err)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.IOReadError, diag.SevError,
			source.PointAt(lx.opts.File, lx.cursor.Offset()), wrapped.Error(), nil)
	}
	lx.halted = wrapped
	return lx.eofToken(), wrapped
}

// resync пропускает байты до ближайшей границы trivia (пробел, '#' или EOF).
func (lx *Lexer) resync() {
	for {
		b, ok := lx.cursor.Peek()
		if !ok || isSpace(b) || b == '#' {
			return
		}
		lx.cursor.Advance()
	}
}
