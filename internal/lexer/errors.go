package lexer

import (
	"errors"
	"fmt"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

// Sentinels matched by errors.Is against a *Error.
var (
	ErrIllegalCharacter    = errors.New("illegal character")
	ErrIdentifierTooLong   = errors.New("identifier too long")
	ErrNumberTooLong       = errors.New("number too long")
	ErrNumericOverflow     = errors.New("numeric overflow")
	ErrExpectedBecomes     = errors.New("expected ':='")
	ErrUnterminatedComment = errors.New("unterminated comment")
)

var codeSentinels = map[diag.Code]error{
	diag.LexIllegalChar:         ErrIllegalCharacter,
	diag.LexIdentTooLong:        ErrIdentifierTooLong,
	diag.LexNumberTooLong:       ErrNumberTooLong,
	diag.LexNumberOverflow:      ErrNumericOverflow,
	diag.LexExpectedBecomes:     ErrExpectedBecomes,
	diag.LexUnterminatedComment: ErrUnterminatedComment,
}

// Error is a lexical error with its precise location.
type Error struct {
	Code diag.Code
	File string
	Pos  source.LineCol // где обнаружена ошибка
	Span source.Span
	Text string // фрагмент лексемы, на котором споткнулись
	Msg  string
}

// Error formats the error as "file:line:col: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line, e.Pos.Col, e.Msg)
}

// Unwrap exposes the sentinel for the error's code.
func (e *Error) Unwrap() error {
	return codeSentinels[e.Code]
}

func (lx *Lexer) newError(code diag.Code, pos source.LineCol, startOff uint32, text, msg string) *Error {
	end := lx.cursor.Offset()
	if end <= startOff {
		end = startOff + 1
	}
	return &Error{
		Code: code,
		File: lx.opts.Filename,
		Pos:  pos,
		Span: source.Span{File: lx.opts.File, Start: startOff, End: end},
		Text: text,
		Msg:  msg,
	}
}

func describeByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("'\\x%02x'", b)
}
