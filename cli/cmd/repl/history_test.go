package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"a::{X}", modeEval},
		{"a::{X}", modeEval}, // repeat of last entry
		{"types", modeCtrl},
		{"b::{Y}", modeEval},
		{"a::{X}", modeEval}, // moves to end
		{"  ", modeEval},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"types", modeCtrl},
		{"b::{Y}", modeEval},
		{"a::{X}", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:types\nE:b::{Y}\nE:a::{X}\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistoryLoad(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    []HistoryEntry
	}{
		{"missing file", nil, nil},
		{"legacy lines", ptr("a::{X}\n\nC:quit\n"), []HistoryEntry{
			{"a::{X}", modeEval},
			{"quit", modeCtrl},
		}},
		{"prefixed", ptr("E:a::{X | Y}\nC:help\n"), []HistoryEntry{
			{"a::{X | Y}", modeEval},
			{"help", modeCtrl},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), baseHistory)

			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			h := NewHistory(path)
			if err := h.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}

			if got := h.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("Entries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistoryEntry(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("a::{X}", modeEval); err != nil {
		t.Fatal(err)
	}

	e, err := h.Entry(0)
	if err != nil || e.Line != "a::{X}" {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func ptr[T any](v T) *T { return &v }
