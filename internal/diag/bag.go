package diag

import (
	"slices"
)

// Bag - ограниченное хранилище диагностик одного запуска (или одного файла).
// Всё, что не влезло в лимит, отбрасывается, а Dropped считает потери.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add returns false when the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Dropped reports how many diagnostics Add refused.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Items отдаёт внутренний срез без копии, менять его нельзя.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders by file, span and then severity, most severe first.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compare)
}
