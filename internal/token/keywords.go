package token

var keywords = map[string]Kind{
	"const":     KwConst,
	"var":       KwVar,
	"procedure": KwProcedure,
	"call":      KwCall,
	"begin":     KwBegin,
	"end":       KwEnd,
	"if":        KwIf,
	"then":      KwThen,
	"else":      KwElse,
	"while":     KwWhile,
	"do":        KwDo,
	"read":      KwRead,
	"write":     KwWrite,
	"skip":      KwSkip,
	"odd":       KwOdd,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые - только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Lookup resolves a fully accumulated identifier-shaped lexeme to its kind.
func Lookup(ident string) Kind {
	if k, ok := LookupKeyword(ident); ok {
		return k
	}
	return Ident
}
