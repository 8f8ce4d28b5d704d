package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pl0lex/internal/lexer"
	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

func scan(t *testing.T, src string, mode lexer.Mode) []token.Token {
	t.Helper()
	tokens, _ := lexer.New(strings.NewReader(src), lexer.Options{Mode: mode}).All()
	return tokens
}

func TestFormatTokensTable(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokensTable(&buf, "prog.pl0", scan(t, "var x;\nx := 42.", lexer.ModeHalt)); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Tokens from file prog.pl0",
		"Number  Type        Line  Column  Text/Value",
		"1       varsym      1     1       var",
		"2       identsym    1     5       x",
		"3       semisym     1     6       ;",
		"4       identsym    2     1       x",
		"5       becomessym  2     3       :=",
		"6       numbersym   2     6       42",
		"7       periodsym   2     8       .",
		"8       eofsym      2     9       ",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("table mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTokensTableInvalid(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokensTable(&buf, "x", scan(t, "a ?", lexer.ModeRecover)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "errorsym") || !strings.Contains(buf.String(), "? (Illegal character '?' (0077))") {
		t.Errorf("invalid token not rendered:\n%s", buf.String())
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.pl0", []byte("x := 7"))
	tokens, _ := lexer.NewFromFile(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], `Number       "7" = 7 at 1:6-1:7`) {
		t.Errorf("line 3 = %q", lines[2])
	}
}

func TestFormatTokensJSONAndMsgpackAgree(t *testing.T) {
	tokens := scan(t, "const n = 10;", lexer.ModeHalt)

	var jbuf bytes.Buffer
	if err := FormatTokensJSON(&jbuf, "c.pl0", tokens); err != nil {
		t.Fatal(err)
	}
	var fromJSON TokensOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	var mbuf bytes.Buffer
	if err := FormatTokensMsgpack(&mbuf, "c.pl0", tokens); err != nil {
		t.Fatal(err)
	}
	fromMsgpack, err := DecodeTokensMsgpack(&mbuf)
	if err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}

	if fromJSON.Count != 6 || fromMsgpack.Count != fromJSON.Count {
		t.Fatalf("counts: json=%d msgpack=%d", fromJSON.Count, fromMsgpack.Count)
	}
	num := fromMsgpack.Tokens[3]
	if num.Sym != "numbersym" || num.Value == nil || *num.Value != 10 {
		t.Errorf("number token = %+v", num)
	}
	if fromJSON.Tokens[0].Value != nil {
		t.Errorf("keyword must not carry a value")
	}
}
