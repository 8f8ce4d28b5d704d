package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (emitted in recover mode).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents an unsigned decimal literal.
	Number

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwProcedure represents the 'procedure' keyword.
	KwProcedure // procedure
	// KwCall represents the 'call' keyword.
	KwCall // call
	// KwBegin represents the 'begin' keyword.
	KwBegin // begin
	// KwEnd represents the 'end' keyword.
	KwEnd // end
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwThen represents the 'then' keyword.
	KwThen // then
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwRead represents the 'read' keyword.
	KwRead // read
	// KwWrite represents the 'write' keyword.
	KwWrite // write
	// KwSkip represents the 'skip' keyword.
	KwSkip // skip
	// KwOdd represents the 'odd' keyword.
	KwOdd // odd

	// Becomes represents the assignment operator.
	Becomes   // :=
	Semicolon // ;
	Period    // .
	Comma     // ,
	Eq        // =
	LParen    // (
	RParen    // )
	Lt        // <
	LtEq      // <=
	NotEq     // <>
	Gt        // >
	GtEq      // >=
	Plus      // +
	Minus     // -
	Slash     // /
	Star      // *

	kindCount
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	Number:      "Number",
	KwConst:     "KwConst",
	KwVar:       "KwVar",
	KwProcedure: "KwProcedure",
	KwCall:      "KwCall",
	KwBegin:     "KwBegin",
	KwEnd:       "KwEnd",
	KwIf:        "KwIf",
	KwThen:      "KwThen",
	KwElse:      "KwElse",
	KwWhile:     "KwWhile",
	KwDo:        "KwDo",
	KwRead:      "KwRead",
	KwWrite:     "KwWrite",
	KwSkip:      "KwSkip",
	KwOdd:       "KwOdd",
	Becomes:     "Becomes",
	Semicolon:   "Semicolon",
	Period:      "Period",
	Comma:       "Comma",
	Eq:          "Eq",
	LParen:      "LParen",
	RParen:      "RParen",
	Lt:          "Lt",
	LtEq:        "LtEq",
	NotEq:       "NotEq",
	Gt:          "Gt",
	GtEq:        "GtEq",
	Plus:        "Plus",
	Minus:       "Minus",
	Slash:       "Slash",
	Star:        "Star",
}

// имена в стиле классического PL/0 (identsym, becomessym, ...)
var symNames = [...]string{
	Invalid:     "errorsym",
	EOF:         "eofsym",
	Ident:       "identsym",
	Number:      "numbersym",
	KwConst:     "constsym",
	KwVar:       "varsym",
	KwProcedure: "procsym",
	KwCall:      "callsym",
	KwBegin:     "beginsym",
	KwEnd:       "endsym",
	KwIf:        "ifsym",
	KwThen:      "thensym",
	KwElse:      "elsesym",
	KwWhile:     "whilesym",
	KwDo:        "dosym",
	KwRead:      "readsym",
	KwWrite:     "writesym",
	KwSkip:      "skipsym",
	KwOdd:       "oddsym",
	Becomes:     "becomessym",
	Semicolon:   "semisym",
	Period:      "periodsym",
	Comma:       "commasym",
	Eq:          "eqsym",
	LParen:      "lparensym",
	RParen:      "rparensym",
	Lt:          "lessym",
	LtEq:        "leqsym",
	NotEq:       "neqsym",
	Gt:          "gtrsym",
	GtEq:        "geqsym",
	Plus:        "plussym",
	Minus:       "minussym",
	Slash:       "divsym",
	Star:        "multsym",
}

// String returns the Go-style name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Sym returns the classic PL/0 symbol name used by the table output.
func (k Kind) Sym() string {
	if k < kindCount {
		return symNames[k]
	}
	return "unknownsym"
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool { return k >= KwConst && k <= KwOdd }

// IsPunctOrOp reports whether k is a punctuation or operator symbol.
func (k Kind) IsPunctOrOp() bool { return k >= Becomes && k <= Star }

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
