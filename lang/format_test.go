package lang

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestInvocation_Format(t *testing.T) {
	tests := []struct {
		input    string
		native   string
		expanded string
		golang   string
	}{
		{
			input:    `Test::{}`,
			native:   `Test::{}`,
			expanded: `Test::empty()`,
			golang:   `Test(0)`,
		},
		{
			input:    `Test::{ A }`,
			native:   `Test::{A}`,
			expanded: `Test::A`,
			golang:   `Test.A`,
		},
		{
			input:    "ponydom :: Flags :: {Winged|Horned}",
			native:   `ponydom::Flags::{Winged | Horned}`,
			expanded: `ponydom::Flags::Winged | ponydom::Flags::Horned`,
			golang:   `ponydom.Flags.Winged | ponydom.Flags.Horned`,
		},
		{
			input:    `T::{A,B}`,
			native:   `T::{A, B}`,
			expanded: `T::A | T::B`,
			golang:   `T.A | T.B`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inv, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatal(err)
			}

			for style, want := range map[Style]string{
				StyleNative:   tt.native,
				StyleExpanded: tt.expanded,
				StyleGo:       tt.golang,
			} {
				var sb strings.Builder
				if err := inv.Format(&sb, style); err != nil {
					t.Fatalf("%s: %v", style, err)
				}

				if sb.String() != want {
					t.Errorf("%s = %q, want %q", style, sb.String(), want)
				}
			}
		})
	}
}

func TestInvocation_NativeRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, input := range []string{
		"a::{}",
		"a :: b :: { X | Y | Z }",
		"a::{X, /* c */ Y}",
	} {
		inv, err := ParseString(ctx, input)
		if err != nil {
			t.Fatal(err)
		}

		again, err := ParseString(ctx, inv.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", inv.String(), err)
		}

		if again.String() != inv.String() {
			t.Errorf("round trip %q -> %q", inv.String(), again.String())
		}
	}
}

func TestParseStyle(t *testing.T) {
	for _, name := range []string{"native", "Expanded", " go "} {
		if _, err := ParseStyle(name); err != nil {
			t.Errorf("ParseStyle(%q): %v", name, err)
		}
	}

	if _, err := ParseStyle("rust"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseStyle(rust) error = %v, want ErrInvalidFormat", err)
	}

	var sb strings.Builder
	if err := (&Invocation{}).Format(&sb, Style(99)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Format(99) error = %v, want ErrInvalidFormat", err)
	}
}

func TestInvocation_FormatJSON(t *testing.T) {
	inv, err := ParseString(context.Background(), `ponydom::Flags::{Winged | Horned}`)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := inv.FormatJSON(&sb, 2); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Type     string   `json:"type"`
		Elements []string `json:"elements"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", sb.String(), err)
	}

	if doc.Type != "ponydom::Flags" || len(doc.Elements) != 2 ||
		doc.Elements[1] != "ponydom::Flags::Horned" {
		t.Errorf("document = %+v", doc)
	}

	if !strings.Contains(sb.String(), "\n  \"type\"") {
		t.Errorf("output not indented: %q", sb.String())
	}

	compact, err := json.Marshal(inv)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"type":"ponydom::Flags","elements":["ponydom::Flags::Winged","ponydom::Flags::Horned"]}`
	if string(compact) != want {
		t.Errorf("MarshalJSON = %s, want %s", compact, want)
	}
}

func TestInvocation_FormatJSON_Empty(t *testing.T) {
	inv, err := ParseString(context.Background(), `Test::{}`)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatal(err)
	}

	if want := `{"type":"Test","elements":[]}`; string(data) != want {
		t.Errorf("MarshalJSON = %s, want %s", data, want)
	}
}

func TestInvocation_FormatYAML(t *testing.T) {
	ctx := context.Background()

	inv, err := ParseString(ctx, `Test::{A, B}`)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := inv.FormatYAML(ctx, &sb, 2); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Type     string   `yaml:"type"`
		Elements []string `yaml:"elements"`
	}
	if err := yaml.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("invalid YAML %q: %v", sb.String(), err)
	}

	if doc.Type != "Test" || !slices.Equal(doc.Elements, []string{"Test::A", "Test::B"}) {
		t.Errorf("document = %+v", doc)
	}
}
