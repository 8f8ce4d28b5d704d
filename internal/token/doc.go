// Package token defines lexical token kinds for PL/0 sources.
// Invariants:
//   - Token.Text is the verbatim lexeme; it is empty only for EOF.
//   - Token.Pos is the 1-based position of the first byte of the lexeme.
//   - Token.Value is meaningful only for Number tokens.
//   - Keywords are case-sensitive; "VAR" is an identifier.
package token
