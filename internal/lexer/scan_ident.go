package lexer

import (
	"fmt"

	"pl0lex/internal/diag"
	"pl0lex/internal/token"
)

// scanIdentOrKeyword сканирует [A-Za-z][A-Za-z0-9]* по правилу максимального
// захвата и только потом проверяет через token.Lookup.
// Ключевые слова регистрозависимые. Token.Text - ровно исходная лексема.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, *Error) {
	for {
		b, ok := lx.cursor.Peek()
		if !ok || !isIdentContinue(b) {
			break
		}
		if err := lx.take(diag.LexIdentTooLong); err != nil {
			return token.Token{}, err
		}
	}

	text := lx.lexeme.String()
	return lx.emit(token.Lookup(text), text), nil
}

// take потребляет байт в лексему. При переполнении байт всё равно потреблён,
// а ошибка указывает на его позицию.
func (lx *Lexer) take(tooLong diag.Code) *Error {
	pos, off := lx.cursor.Pos(), lx.cursor.Offset()
	b, _ := lx.cursor.Advance()
	if lx.lexeme.Push(b) == nil {
		return nil
	}

	partial := lx.lexeme.String() + string(b)
	what := "identifier"
	if tooLong == diag.LexNumberTooLong {
		what = "number"
	}
	msg := fmt.Sprintf("Max %s length exceeded (%d): %q", what, lx.lexeme.Max(), partial)
	return lx.newError(tooLong, pos, off, partial, msg)
}
