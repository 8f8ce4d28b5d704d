package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

// TokenOutput - сериализуемое представление токена (json и msgpack).
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Sym     string      `json:"sym"`
	Text    string      `json:"text,omitempty"`
	Value   *int64      `json:"value,omitempty"`
	Message string      `json:"message,omitempty"`
	Line    uint32      `json:"line"`
	Col     uint32      `json:"col"`
	Span    source.Span `json:"span"`
}

// TokensOutput is the root object of json/msgpack token dumps.
type TokensOutput struct {
	File   string        `json:"file"`
	Tokens []TokenOutput `json:"tokens"`
	Count  int           `json:"count"`
}

// BuildTokensOutput converts tokens up to and including EOF.
func BuildTokensOutput(file string, tokens []token.Token) TokensOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind:    tok.Kind.String(),
			Sym:     tok.Kind.Sym(),
			Text:    tok.Text,
			Message: tok.Msg,
			Line:    tok.Pos.Line,
			Col:     tok.Pos.Col,
			Span:    tok.Span,
		}
		if tok.HasValue() {
			v := tok.Value
			to.Value = &v
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return TokensOutput{File: file, Tokens: out, Count: len(out)}
}

var tableHeader = [...]string{"Number", "Type", "Line", "Column", "Text/Value"}

// FormatTokensTable печатает классическую таблицу PL/0:
//
//	Tokens from file prog.pl0
//	Number  Type        Line  Column  Text/Value
//	1       varsym      1     1       var
func FormatTokensTable(w io.Writer, file string, tokens []token.Token) error {
	rows := make([][len(tableHeader)]string, 0, len(tokens))
	for i, tok := range tokens {
		text := tok.Text
		switch {
		case tok.HasValue():
			text = strconv.FormatInt(tok.Value, 10)
		case tok.Kind == token.Invalid:
			text = fmt.Sprintf("%s (%s)", tok.Text, tok.Msg)
		}
		rows = append(rows, [len(tableHeader)]string{
			strconv.Itoa(i + 1),
			tok.Kind.Sym(),
			strconv.FormatUint(uint64(tok.Pos.Line), 10),
			strconv.FormatUint(uint64(tok.Pos.Col), 10),
			text,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	var widths [len(tableHeader)]int
	for c, h := range tableHeader {
		widths[c] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}

	if _, err := fmt.Fprintf(w, "Tokens from file %s\n", file); err != nil {
		return err
	}
	writeRow := func(cells [len(tableHeader)]string) error {
		line := ""
		for c, cell := range cells {
			if c == len(cells)-1 {
				line += cell
				break
			}
			line += runewidth.FillRight(cell, widths[c]+2)
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}
	if err := writeRow(tableHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := tok.Pos, tok.Pos
		if fs != nil && fs.Get(tok.Span.File) != nil {
			startPos, endPos = fs.Resolve(tok.Span)
		}

		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.HasValue() {
			fmt.Fprintf(w, " = %d", tok.Value)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Msg != "" {
			fmt.Fprintf(w, " (%s)", tok.Msg)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, file string, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(file, tokens))
}

// FormatTokensMsgpack пишет тот же документ, что и JSON, в msgpack.
// Ключи совпадают с json-тегами.
func FormatTokensMsgpack(w io.Writer, file string, tokens []token.Token) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(BuildTokensOutput(file, tokens))
}

// DecodeTokensMsgpack читает документ, записанный FormatTokensMsgpack.
func DecodeTokensMsgpack(r io.Reader) (TokensOutput, error) {
	var out TokensOutput
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&out); err != nil {
		return TokensOutput{}, err
	}
	return out, nil
}
