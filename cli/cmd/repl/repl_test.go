package repl

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/flagset/pkg"
)

func TestModelEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "pipe",
			input: "ponydom::Flags::{Winged | Horned}",
			want:  "0x3 (3) = ponydom::Flags::Winged | ponydom::Flags::Horned",
		},
		{
			name:  "empty list",
			input: "Test::{}",
			want:  "0x0 (0) = Test::empty()",
		},
		{
			name:    "unknown flag",
			input:   "Test::{Z}",
			wantErr: pkg.ErrUnresolvedElement,
		},
		{
			name:    "syntax",
			input:   "Test::{A |}",
			wantErr: pkg.ErrMalformedList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)

			got, err := m.evaluate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("evaluate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("evaluate(%q): %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelListTypes(t *testing.T) {
	m := newTestModel(t)

	all := m.listTypes()
	for _, path := range []string{"ponydom::Flags", "ponydom::Coat", "Test"} {
		if !strings.Contains(all, path) {
			t.Errorf("listTypes() missing %q:\n%s", path, all)
		}
	}

	filtered := m.listTypes("coat")
	if !strings.Contains(filtered, "ponydom::Coat") || strings.Contains(filtered, "Test") {
		t.Errorf("listTypes(coat) = %q", filtered)
	}
}

func TestModelSwitchMode(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("ponydom::")
	m = m.toggleMode()

	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after toggle: mode=%d input=%q", m.mode, m.input.Value())
	}

	m.input.SetValue("he")
	m = m.toggleMode()

	if m.mode != modeEval || m.input.Value() != "ponydom::" {
		t.Errorf("after toggle back: mode=%d input=%q", m.mode, m.input.Value())
	}

	m = m.toggleMode()
	if m.input.Value() != "he" {
		t.Errorf("control input = %q, want %q", m.input.Value(), "he")
	}
}

func TestModelHistoryStep(t *testing.T) {
	m := newTestModel(t)

	_ = m.history.Add("Test::{A}", modeEval)
	_ = m.history.Add("types", modeCtrl)
	m.historyIdx = m.history.Len()

	m = m.historyStep(-1)
	if m.mode != modeCtrl || m.input.Value() != "types" {
		t.Errorf("step 1: mode=%d input=%q", m.mode, m.input.Value())
	}

	m = m.historyStep(-1)
	if m.mode != modeEval || m.input.Value() != "Test::{A}" {
		t.Errorf("step 2: mode=%d input=%q", m.mode, m.input.Value())
	}

	m = m.historyStep(-1)
	if m.historyIdx != 0 {
		t.Errorf("historyIdx = %d, want 0", m.historyIdx)
	}

	m = m.historyStep(1)
	m = m.historyStep(1)

	if m.historyIdx != m.history.Len() || m.input.Value() != "" {
		t.Errorf("past end: idx=%d input=%q", m.historyIdx, m.input.Value())
	}
}
