package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
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

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if k := Lookup(lexeme); k != want {
			t.Fatalf("Lookup(%q) = %v, want %v", lexeme, k, want)
		}
	}
	if len(keywords) != len(cases) {
		t.Fatalf("keyword table has %d entries, test covers %d", len(keywords), len(cases))
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"VAR", "Begin", "eNd", // регистр важен
		"variable", "iff", "procedures", "var1",
		"", "x",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
		if k := Lookup(s); k != Ident {
			t.Fatalf("Lookup(%q) = %v, want Ident", s, k)
		}
	}
}
