package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                Code = 1000
	LexIllegalChar         Code = 1001
	LexIdentTooLong        Code = 1002
	LexNumberTooLong       Code = 1003
	LexNumberOverflow      Code = 1004
	LexExpectedBecomes     Code = 1005
	LexUnterminatedComment Code = 1006

	// Ввод/вывод
	IOLoadFileError Code = 4001
	IOReadError     Code = 4002
	IOCacheError    Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexIllegalChar:         "Illegal character",
	LexIdentTooLong:        "Identifier too long",
	LexNumberTooLong:       "Number too long",
	LexNumberOverflow:      "Numeric literal out of range",
	LexExpectedBecomes:     "Expected ':='",
	LexUnterminatedComment: "Unterminated comment",
	IOLoadFileError:        "Failed to load file",
	IOReadError:            "Failed to read input",
	IOCacheError:           "Token cache failure",
}

// ID returns the stable short identifier of the code (e.g. LEX1001).
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsLexical reports whether the code belongs to the lexical range.
func (c Code) IsLexical() bool {
	return c > LexInfo && c < 2000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
