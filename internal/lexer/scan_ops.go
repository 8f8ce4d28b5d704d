package lexer

import (
	"fmt"

	"pl0lex/internal/diag"
	"pl0lex/internal/token"
)

var singleCharOps = map[byte]token.Kind{
	';': token.Semicolon,
	'.': token.Period,
	',': token.Comma,
	'=': token.Eq,
	'(': token.LParen,
	')': token.RParen,
	'+': token.Plus,
	'-': token.Minus,
	'/': token.Slash,
	'*': token.Star,
}

// scanOperatorOrPunct разбирает операторы с одним байтом lookahead:
// второй байт потребляется и возвращается через Putback, если не продолжает
// оператор.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, *Error) {
	ch, _ := lx.cursor.Advance()

	switch ch {
	case ':':
		next, ok := lx.cursor.Advance()
		if ok && next == '=' {
			return lx.emit(token.Becomes, ":="), nil
		}
		lx.cursor.Putback()
		found := "end of input"
		if ok {
			found = describeByte(next)
		}
		msg := fmt.Sprintf("Expecting '=' after a colon, not %s", found)
		return token.Token{}, lx.newError(diag.LexExpectedBecomes, lx.cursor.Start(), lx.cursor.StartOffset(), ":", msg)

	case '<':
		next, ok := lx.cursor.Advance()
		switch {
		case ok && next == '>':
			return lx.emit(token.NotEq, "<>"), nil
		case ok && next == '=':
			return lx.emit(token.LtEq, "<="), nil
		}
		lx.cursor.Putback()
		return lx.emit(token.Lt, "<"), nil

	case '>':
		next, ok := lx.cursor.Advance()
		if ok && next == '=' {
			return lx.emit(token.GtEq, ">="), nil
		}
		lx.cursor.Putback()
		return lx.emit(token.Gt, ">"), nil
	}

	if k, ok := singleCharOps[ch]; ok {
		return lx.emit(k, string(ch)), nil
	}
	// сюда попадаем только если isPunct и таблица разошлись
	return token.Token{}, lx.illegalChar(ch)
}

// illegalChar ожидает, что ch уже потреблён.
func (lx *Lexer) illegalChar(ch byte) *Error {
	msg := fmt.Sprintf("Illegal character %s (0%03o)", describeByte(ch), ch)
	return lx.newError(diag.LexIllegalChar, lx.cursor.Start(), lx.cursor.StartOffset(), string([]byte{ch}), msg)
}
