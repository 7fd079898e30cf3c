package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestLoad(t *testing.T) {
	const src = `
log-level: debug
log_pretty: false
count: 5
ratio: 0.5
defs:
  - a.yaml
  - b.hcl
`

	r, err := load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"count", "5"},
		{"ratio", "0.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}

	defs, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "defs"}})
	if defs != "a.yaml,b.hcl" {
		t.Errorf("defs = %#v", defs)
	}
}

func TestLoadEmpty(t *testing.T) {
	r, err := load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got, _ := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "x"}}); got != nil {
		t.Errorf("Resolve() = %#v, want nil", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := load(strings.NewReader("- not\n- a mapping\n")); err == nil {
		t.Error("load() should reject a non-mapping document")
	}
}

func TestConfigEndToEnd(t *testing.T) {
	var cli struct {
		LogLevel string `default:"info"`
		Count    int
		Defs     []string
	}

	r, err := load(strings.NewReader("log_level: warn\ncount: 3\ndefs: [x.yaml]\n"))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--count=7"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cli.LogLevel != "warn" || cli.Count != 7 || !slices.Equal(cli.Defs, []string{"x.yaml"}) {
		t.Errorf("cli = %+v", cli)
	}
}
