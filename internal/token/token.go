package token

import (
	"pl0lex/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Value int64  // только для Number
	Msg   string // только для Invalid: текст ошибки
	Pos   source.LineCol
	Span  source.Span
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunctOrOp() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// HasValue reports whether the token carries a numeric value.
func (t Token) HasValue() bool { return t.Kind == Number }
