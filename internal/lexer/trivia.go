package lexer

import (
	"pl0lex/internal/diag"
)

// skipTrivia пропускает пробельные символы и комментарии перед значимым токеном.
//   - пробелы, табы, '\r', '\f', '\v' и '\n' (позицию ведёт Cursor)
//   - '#' ... до '\n' включительно; EOF внутри комментария - ошибка
func (lx *Lexer) skipTrivia() *Error {
	for {
		b, ok := lx.cursor.Peek()
		if !ok {
			return nil
		}

		switch {
		case isSpace(b):
			lx.cursor.Advance()

		case b == '#':
			lx.cursor.MarkStart()
			if err := lx.skipComment(); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

// skipComment потребляет '#' и всё до конца строки, включая '\n'.
func (lx *Lexer) skipComment() *Error {
	lx.cursor.Advance() // '#'
	for {
		b, ok := lx.cursor.Advance()
		if !ok {
			if lx.cursor.Err() != nil {
				// ошибку чтения обработает Next
				return nil
			}
			return lx.newError(diag.LexUnterminatedComment, lx.cursor.Start(), lx.cursor.StartOffset(),
				"#", "Unterminated comment: end of input reached before end of line")
		}
		if b == '\n' {
			return nil
		}
	}
}
