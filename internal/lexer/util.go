package lexer

// ===== Классификаторы (только ASCII) =====

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentContinue(b byte) bool {
	return isLetter(b) || isDigit(b)
}

// isSpace повторяет isspace из C-локали.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isPunct сообщает, начинает ли байт оператор или знак пунктуации языка.
func isPunct(b byte) bool {
	switch b {
	case ':', ';', '.', ',', '=', '(', ')', '<', '>', '+', '-', '/', '*':
		return true
	}
	return false
}
