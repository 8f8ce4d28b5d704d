package lexer

import (
	"errors"
	"strings"
	"testing"
)

func TestLexemeBounded(t *testing.T) {
	l := NewLexeme(3)
	for _, c := range []byte("abc") {
		if err := l.Push(c); err != nil {
			t.Fatalf("push %q: %v", c, err)
		}
	}
	if err := l.Push('d'); !errors.Is(err, ErrLengthExceeded) {
		t.Fatalf("push over max = %v, want ErrLengthExceeded", err)
	}
	if l.String() != "abc" || l.Len() != 3 {
		t.Errorf("buffer changed on failed push: %q (%d)", l.String(), l.Len())
	}
}

func TestLexemeReset(t *testing.T) {
	l := NewLexeme(4)
	_ = l.Push('x')
	_ = l.Push('y')
	l.Reset()
	if l.Len() != 0 || l.String() != "" {
		t.Errorf("after reset = %q", l.String())
	}
	if l.Max() != 4 {
		t.Errorf("max = %d, want 4", l.Max())
	}
}

func TestLexemeCapacityIsFixed(t *testing.T) {
	l := NewLexeme(8)
	for i := 0; i < 8; i++ {
		_ = l.Push('a')
	}
	_ = l.Push('b')
	if cap(l.buf) != 8 {
		t.Errorf("cap = %d, want 8", cap(l.buf))
	}
}

func TestWithDefaultsClampsIdentLength(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultMaxIdentLength},
		{-1, DefaultMaxIdentLength},
		{3, 3},
		{MaxIdentLimit, MaxIdentLimit},
		{MaxIdentLimit + 1, MaxIdentLimit},
		{100000000000, MaxIdentLimit},
	}
	for _, tt := range tests {
		if got := (Options{MaxIdentLength: tt.in}).WithDefaults().MaxIdentLength; got != tt.want {
			t.Errorf("WithDefaults(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	lx := New(strings.NewReader("abc"), Options{MaxIdentLength: 100000000000})
	if got := lx.lexeme.Max(); got != MaxIdentLimit {
		t.Errorf("lexeme max = %d, want %d", got, MaxIdentLimit)
	}
}
