// Package diag holds the diagnostic model shared by the lexer, the driver and
// the CLI. It does no formatting and no IO: rendering lives in
// internal/diagfmt.
//
// A Diagnostic carries a Severity, a Code with a stable id (LEX1001,
// IO4001, ...), a short message, the primary source.Span and optional notes.
//
// Producers only see a Reporter. The lexer calls Report once per error; the
// driver plugs in a DedupReporter over a BagReporter, so a recovering lexer
// never records the same finding twice, and the Bag caps how many are kept.
package diag
