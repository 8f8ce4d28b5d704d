package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"

	"pl0lex/internal/source"
)

// ErrDoublePutback is the panic value raised when Putback is called twice
// without an intervening Advance.
var ErrDoublePutback = errors.New("lexer: putback without preceding advance")

type putbackState uint8

const (
	putbackNone putbackState = iota // нечего возвращать
	putbackByte                     // последний Advance вернул байт
	putbackEOF                      // последний Advance упёрся в EOF
)

// Cursor - позиция в потоке байтов: однобайтовый lookahead, возврат одного
// байта и учёт строки/колонки.
type Cursor struct {
	src  *bufio.Reader
	back int16 // возвращённый байт или -1

	off int            // смещение следующего байта
	pos source.LineCol // позиция следующего байта

	startOff int
	start    source.LineCol

	last    byte
	lastPos source.LineCol
	state   putbackState

	err error // ошибка чтения, отличная от io.EOF
}

// NewCursor creates a cursor reading from r. Position starts at 1:1.
func NewCursor(r io.Reader) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	c := &Cursor{
		src:  br,
		back: -1,
		pos:  source.LineCol{Line: 1, Col: 1},
	}
	c.start = c.pos
	return c
}

// Peek возвращает следующий байт, не потребляя его.
// ok == false означает конец ввода (или ошибку чтения, см. Err).
func (c *Cursor) Peek() (b byte, ok bool) {
	if c.back >= 0 {
		return byte(c.back), true
	}
	if c.err != nil {
		return 0, false
	}
	buf, err := c.src.Peek(1)
	if len(buf) == 0 {
		c.setErr(err)
		return 0, false
	}
	return buf[0], true
}

// Advance потребляет следующий байт и сдвигает позицию.
// После '\n' строка увеличивается, а колонка следующего байта равна 1.
func (c *Cursor) Advance() (b byte, ok bool) {
	switch {
	case c.back >= 0:
		b = byte(c.back)
		c.back = -1
	case c.err != nil:
		c.state = putbackEOF
		return 0, false
	default:
		var err error
		b, err = c.src.ReadByte()
		if err != nil {
			c.setErr(err)
			c.state = putbackEOF
			return 0, false
		}
	}

	c.last = b
	c.lastPos = c.pos
	c.state = putbackByte
	c.off++
	if b == '\n' {
		c.pos.Line++
		c.pos.Col = 1
	} else {
		c.pos.Col++
	}
	return b, true
}

// Putback возвращает последний потреблённый байт во вход, восстанавливая
// строку и колонку. Глубина возврата - ровно один байт: повторный вызов без
// Advance между ними паникует с ErrDoublePutback. Putback после Advance,
// вернувшего EOF, ничего не делает.
func (c *Cursor) Putback() {
	switch c.state {
	case putbackNone:
		panic(ErrDoublePutback)
	case putbackEOF:
		c.state = putbackNone
		return
	}
	c.back = int16(c.last)
	c.pos = c.lastPos
	c.off--
	c.state = putbackNone
}

// Pos returns the position of the next unread byte.
func (c *Cursor) Pos() source.LineCol {
	return c.pos
}

// MarkStart remembers the current position as the start of a token.
func (c *Cursor) MarkStart() {
	c.start = c.pos
	c.startOff = c.off
}

// Start returns the position recorded by the last MarkStart.
func (c *Cursor) Start() source.LineCol {
	return c.start
}

// Offset returns the byte offset of the next unread byte.
func (c *Cursor) Offset() uint32 {
	return toOffset(c.off)
}

// StartOffset returns the byte offset recorded by the last MarkStart.
func (c *Cursor) StartOffset() uint32 {
	return toOffset(c.startOff)
}

// Err returns the first read error other than io.EOF.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) setErr(err error) {
	if err != nil && !errors.Is(err, io.EOF) && c.err == nil {
		c.err = err
	}
}

func toOffset(off int) uint32 {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return v
}
