package lexer

import (
	"fmt"

	"pl0lex/internal/diag"
	"pl0lex/internal/token"
)

// scanNumber сканирует [0-9]+ (без знака, только десятичные).
// Значение проверяется на каждом шаге: переполнение - ошибка сразу,
// без молчаливого переноса.
func (lx *Lexer) scanNumber() (token.Token, *Error) {
	var value int64
	limit := lx.opts.MaxNumber

	for {
		b, ok := lx.cursor.Peek()
		if !ok || !isDigit(b) {
			break
		}
		if err := lx.take(diag.LexNumberTooLong); err != nil {
			return token.Token{}, err
		}

		d := int64(b - '0')
		if d > limit || value > (limit-d)/10 {
			text := lx.lexeme.String()
			msg := fmt.Sprintf("Number %s is too large (maximum is %d)", text, limit)
			return token.Token{}, lx.newError(diag.LexNumberOverflow, lx.cursor.Start(), lx.cursor.StartOffset(), text, msg)
		}
		value = value*10 + d
	}

	tok := lx.emit(token.Number, lx.lexeme.String())
	tok.Value = value
	return tok, nil
}
