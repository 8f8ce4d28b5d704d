// Package fuzztests houses Go fuzz harnesses for the PL/0 lexer. Its goal is
// to smoke test robustness and guard against panics, stuck scanners or broken
// token invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер в обоих
// режимах, проверяя инварианты токенов из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/testkit.

package fuzztests
