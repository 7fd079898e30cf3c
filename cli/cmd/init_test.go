package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Defs    []string `short:"d"`
	Verbose bool
	Output  string
	Count   int
	Secret  string `hidden:""`
}

func initContext(t *testing.T, confPath string, args ...string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	return WithStreams(WithContext(context.Background(), ktx), nil, &out), &out
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

			if tt.exists {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx, out := initContext(t, confPath,
				"--verbose", "--output=test.txt", "--count=5", "-d", "a.yaml", "--secret=x")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run(): %v", err)
			}

			if got := out.String(); got != confPath+"\n" {
				t.Errorf("output = %q, want %q", got, confPath+"\n")
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var conf map[string]any
			if err := yaml.Unmarshal(data, &conf); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, data)
			}

			want := map[string]string{
				"verbose": "true",
				"output":  "test.txt",
				"count":   "5",
			}

			for key, val := range want {
				if got := fmt.Sprint(conf[key]); got != val {
					t.Errorf("%s = %s, want %s", key, got, val)
				}
			}

			if defs, ok := conf["defs"].([]any); !ok || len(defs) != 1 || defs[0] != "a.yaml" {
				t.Errorf("defs = %#v", conf["defs"])
			}

			for _, key := range []string{"help", "secret"} {
				if _, ok := conf[key]; ok {
					t.Errorf("config should not contain %q", key)
				}
			}
		})
	}
}

func TestInitRunNoContext(t *testing.T) {
	err := (&Init{}).Run(context.Background())
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run() error = %v, want %v", err, ErrWriteConfig)
	}
}
