package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pl0lex/internal/source"
	"pl0lex/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream
// scanned from sf:
// 1) every span belongs to sf and lies within its content
// 2) token starts strictly increase, positions never go backwards
// 3) Pos matches the line/column of Span.Start
// 4) for valid tokens Text is exactly the source under Span
// 5) EOF, if present, is last, empty and sits at the end of content
func CheckTokenInvariants(sf *source.File, tokens []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prev *token.Token
	for i := range tokens {
		tok := &tokens[i]
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		text, ok := sp.Slice(sf.Content)
		if !ok {
			return fmt.Errorf("token %d: span %v outside content (len %d)", i, sp, lenContent)
		}
		if want := lineColAt(sf.Content, sp.Start); tok.Pos != want {
			return fmt.Errorf("token %d (%s): pos %d:%d, span start is at %d:%d",
				i, tok.Kind, tok.Pos.Line, tok.Pos.Col, want.Line, want.Col)
		}

		if prev != nil {
			if sp.Start <= prev.Span.Start {
				return fmt.Errorf("token %d: start %d does not follow %d", i, sp.Start, prev.Span.Start)
			}
			if sp.Start < prev.Span.End {
				return fmt.Errorf("token %d: span %v overlaps previous %v", i, sp, prev.Span)
			}
		}

		switch tok.Kind {
		case token.EOF:
			if i != len(tokens)-1 {
				return fmt.Errorf("token %d: EOF is not the last token", i)
			}
			if !sp.Empty() || sp.Start != lenContent {
				return fmt.Errorf("EOF span %v, want empty at %d", sp, lenContent)
			}
		case token.Invalid:
			if sp.Empty() {
				return fmt.Errorf("token %d: empty Invalid span", i)
			}
		default:
			if string(text) != tok.Text {
				return fmt.Errorf("token %d (%s): text %q, source %q", i, tok.Kind, tok.Text, text)
			}
			if sp.Empty() {
				return fmt.Errorf("token %d (%s): empty span", i, tok.Kind)
			}
		}
		prev = tok
	}
	return nil
}

func lineColAt(content []byte, off uint32) source.LineCol {
	pos := source.LineCol{Line: 1, Col: 1}
	for _, b := range content[:off] {
		if b == '\n' {
			pos.Line++
			pos.Col = 1
			continue
		}
		pos.Col++
	}
	return pos
}
