package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseString_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  []string
		items []string
		sep   Separator
	}{
		{
			name:  "empty list",
			input: `Test::{}`,
			path:  []string{"Test"},
			items: nil,
			sep:   SepNone,
		},
		{
			name:  "single item",
			input: `Test::{A}`,
			path:  []string{"Test"},
			items: []string{"A"},
			sep:   SepNone,
		},
		{
			name:  "pipe separated",
			input: `Test::{A | B}`,
			path:  []string{"Test"},
			items: []string{"A", "B"},
			sep:   SepPipe,
		},
		{
			name:  "comma separated",
			input: `Test::{A, B, C}`,
			path:  []string{"Test"},
			items: []string{"A", "B", "C"},
			sep:   SepComma,
		},
		{
			name:  "deeper path",
			input: `ponydom::Flags::{Winged | Horned}`,
			path:  []string{"ponydom", "Flags"},
			items: []string{"Winged", "Horned"},
			sep:   SepPipe,
		},
		{
			name:  "whitespace and newlines",
			input: "  Mod :: Sub::Type::{\n\tA |\n\tB\n}  ",
			path:  []string{"Mod", "Sub", "Type"},
			items: []string{"A", "B"},
			sep:   SepPipe,
		},
		{
			name:  "comments",
			input: "Test::{ /* first */ A | // second\n B }",
			path:  []string{"Test"},
			items: []string{"A", "B"},
			sep:   SepPipe,
		},
		{
			name:  "no spaces",
			input: `a_b::C1::{x_1|_y}`,
			path:  []string{"a_b", "C1"},
			items: []string{"x_1", "_y"},
			sep:   SepPipe,
		},
		{
			name:  "unicode identifiers",
			input: `Ζώα::Σημαίες::{Φτερωτό, Κερασφόρο}`,
			path:  []string{"Ζώα", "Σημαίες"},
			items: []string{"Φτερωτό", "Κερασφόρο"},
			sep:   SepComma,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !slices.Equal(inv.Path, tt.path) {
				t.Errorf("path = %v, want %v", inv.Path, tt.path)
			}

			if got := inv.Names(); !slices.Equal(got, tt.items) {
				t.Errorf("items = %v, want %v", got, tt.items)
			}

			if inv.Separator() != tt.sep {
				t.Errorf("separator = %q, want %q", inv.Separator(), tt.sep)
			}

			if inv.Source != tt.input {
				t.Errorf("source = %q, want %q", inv.Source, tt.input)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   error
		line   int
		column int
	}{
		{"empty input", ``, ErrEmptyPath, 1, 1},
		{"empty path", `{A}`, ErrEmptyPath, 1, 1},
		{"empty path with space", `  {A | B}`, ErrEmptyPath, 1, 3},
		{"leading separator", `::Test::{A}`, ErrEmptyPath, 1, 1},
		{"missing path separator", `Test{A}`, ErrMalformedPath, 1, 5},
		{"single colon", `Test:{A}`, ErrMalformedPath, 1, 5},
		{"doubled path separator", `Test::::{A}`, ErrMalformedPath, 1, 7},
		{"path without list", `Test::`, ErrMalformedPath, 1, 7},
		{"numeric segment", `1Test::{A}`, ErrMalformedPath, 1, 1},
		{"trailing pipe", `Test::{A |}`, ErrMalformedList, 1, 11},
		{"trailing comma", `Test::{A, B,}`, ErrMalformedList, 1, 13},
		{"leading separator in list", `Test::{| A}`, ErrMalformedList, 1, 8},
		{"double separator", `Test::{A || B}`, ErrMalformedList, 1, 11},
		{"unmatched brace", `Test::{A | B`, ErrMalformedList, 1, 7},
		{"unmatched empty brace", `Test::{`, ErrMalformedList, 1, 7},
		{"unrecognized separator", `Test::{A & B}`, ErrMalformedList, 1, 10},
		{"numeric item", `Test::{A | 2}`, ErrMalformedList, 1, 12},
		{"underscore item", `Test::{_}`, ErrMalformedList, 1, 8},
		{"nested braces", `Test::{A | {B}}`, ErrMalformedList, 1, 12},
		{"qualified item", `Test::{A::B}`, ErrMalformedList, 1, 9},
		{"negation", `Test::{!A}`, ErrMalformedList, 1, 8},
		{"mixed separators", `Test::{A | B, C}`, ErrMalformedList, 1, 13},
		{"trailing input", `Test::{A} B`, ErrTrailingInput, 1, 11},
		{"second list", `Test::{A}{B}`, ErrTrailingInput, 1, 10},
		{"multiline position", "Test::{\n  A |\n}", ErrMalformedList, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseString(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("expected error, got %v", inv)
			}

			if inv != nil {
				t.Errorf("expected no partial result, got %v", inv)
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			var pe interface{ Position() (Position, bool) }
			if !errors.As(err, &pe) {
				t.Fatalf("error %v carries no position", err)
			}

			pos, ok := pe.Position()
			if !ok {
				t.Fatalf("error %v has no position", err)
			}

			if pos.Line != tt.line || pos.Column != tt.column {
				t.Errorf("position = %v, want %d:%d", pos, tt.line, tt.column)
			}
		})
	}
}

func TestParseString_EmptyPathForEveryList(t *testing.T) {
	for _, list := range []string{`{}`, `{A}`, `{A | B}`, `{A, B}`} {
		_, err := ParseString(context.Background(), list)
		if !errors.Is(err, ErrEmptyPath) {
			t.Errorf("ParseString(%q) error = %v, want ErrEmptyPath", list, err)
		}
	}
}

func TestParseString_MixedSeparators(t *testing.T) {
	const input = `Test::{A | B, C}`

	_, err := ParseString(context.Background(), input)
	if !errors.Is(err, ErrMalformedList) {
		t.Fatalf("strict error = %v, want ErrMalformedList", err)
	}

	if !strings.Contains(err.Error(), "mixed separators") {
		t.Errorf("error %q does not mention mixed separators", err)
	}

	inv, err := ParseString(context.Background(), input, WithMixedSeparators(true))
	if err != nil {
		t.Fatalf("permissive parse error: %v", err)
	}

	if !slices.Equal(inv.Names(), []string{"A", "B", "C"}) {
		t.Errorf("items = %v", inv.Names())
	}

	if !slices.Equal(inv.Seps, []Separator{SepPipe, SepComma}) {
		t.Errorf("seps = %v", inv.Seps)
	}
}

func TestParseString_ItemPositions(t *testing.T) {
	inv, err := ParseString(context.Background(), "A::{X |\n  Y}")
	if err != nil {
		t.Fatal(err)
	}

	want := []Position{
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 10, Line: 2, Column: 3},
	}

	for i, it := range inv.Items {
		if it.Pos != want[i] {
			t.Errorf("item %d position = %+v, want %+v", i, it.Pos, want[i])
		}
	}
}

func TestParseReader(t *testing.T) {
	inv, err := ParseReader(context.Background(), strings.NewReader("ponydom::Flags::{Winged}\n"))
	if err != nil {
		t.Fatal(err)
	}

	if got := inv.String(); got != "ponydom::Flags::{Winged}" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseString_CacheReturnsIndependentCopies(t *testing.T) {
	ClearCache()

	ctx := context.Background()

	first, err := ParseString(ctx, `Test::{A | B}`)
	if err != nil {
		t.Fatal(err)
	}

	first.Items[0].Name = "Mutated"
	first.Path[0] = "Other"

	second, err := ParseString(ctx, `Test::{A | B}`)
	if err != nil {
		t.Fatal(err)
	}

	if second.String() != "Test::{A | B}" {
		t.Errorf("cached result was mutated: %s", second)
	}

	uncached, err := ParseString(ctx, `Test::{A | B}`, WithCache(false))
	if err != nil {
		t.Fatal(err)
	}

	if uncached.String() != second.String() {
		t.Errorf("uncached %s != cached %s", uncached, second)
	}
}

func TestParseString_CacheKeyIncludesOptions(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	input := `Test::{A, B | C}`

	if _, err := ParseString(ctx, input, WithMixedSeparators(true)); err != nil {
		t.Fatalf("permissive parse error: %v", err)
	}

	if _, err := ParseString(ctx, input); !errors.Is(err, ErrMalformedList) {
		t.Errorf("strict parse after permissive = %v, want ErrMalformedList", err)
	}
}

func TestParseString_CacheIsBounded(t *testing.T) {
	ClearCache()

	limit := maxCacheEntries
	maxCacheEntries = 2

	t.Cleanup(func() {
		maxCacheEntries = limit
		ClearCache()
	})

	ctx := context.Background()

	for _, input := range []string{`T::{A}`, `T::{B}`, `T::{C}`, `T::{C}`} {
		if _, err := ParseString(ctx, input); err != nil {
			t.Fatalf("ParseString(%q) error: %v", input, err)
		}
	}

	n := 0

	globalCache.Range(func(_, _ any) bool {
		n++

		return true
	})

	if n == 0 || int64(n) > maxCacheEntries {
		t.Errorf("cache holds %d entries, want 1..%d", n, maxCacheEntries)
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"A":       true,
		"_a":      true,
		"a1":      true,
		"Κέρας":   true,
		"":        false,
		"_":       false,
		"1a":      false,
		"a b":     false,
		"a::b":    false,
		"Winged,": false,
	}

	for s, want := range tests {
		if got := IsIdentifier(s); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}
