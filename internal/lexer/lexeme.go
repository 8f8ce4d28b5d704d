package lexer

import "errors"

// ErrLengthExceeded is returned by Lexeme.Push when the lexeme is full.
var ErrLengthExceeded = errors.New("lexeme length exceeded")

// Lexeme накапливает байты текущего токена. Ёмкость фиксирована: это правило
// языка (идентификатор длиннее max запрещён), а не оптимизация.
type Lexeme struct {
	buf []byte
	max int
}

// NewLexeme returns an empty accumulator bounded by max bytes.
func NewLexeme(max int) *Lexeme {
	return &Lexeme{buf: make([]byte, 0, max), max: max}
}

// Push appends c, or fails with ErrLengthExceeded when the lexeme already
// holds max bytes. On failure the buffer is left unchanged.
func (l *Lexeme) Push(c byte) error {
	if len(l.buf) >= l.max {
		return ErrLengthExceeded
	}
	l.buf = append(l.buf, c)
	return nil
}

// Reset empties the accumulator, keeping its capacity.
func (l *Lexeme) Reset() {
	l.buf = l.buf[:0]
}

func (l *Lexeme) String() string { return string(l.buf) }
func (l *Lexeme) Len() int       { return len(l.buf) }
func (l *Lexeme) Max() int       { return l.max }
