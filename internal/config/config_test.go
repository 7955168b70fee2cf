package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/registration"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regform.yaml")
	data := `server:
  addr: ":9090"
  session_ttl: 5m
form:
  mode: onChange
  ui_schema: ./ui
theme:
  variant: dark
log:
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Defaults()
	want.Server.Addr = ":9090"
	want.Server.SessionTTL = 5 * time.Minute
	want.Form.Mode = "onChange"
	want.Form.UISchema = "./ui"
	want.Theme.Variant = "dark"
	want.Log.Format = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REGFORM_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("REGFORM_FORM_MODE", "onSubmit")

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" || cfg.Form.Mode != "onSubmit" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "mode", mutate: func(c *Config) { c.Form.Mode = "onHover" }, want: "onHover"},
		{name: "revalidate", mutate: func(c *Config) { c.Form.ReValidateMode = "all" }, want: "all"},
		{name: "level", mutate: func(c *Config) { c.Log.Level = "loud" }, want: "log.level"},
		{name: "format", mutate: func(c *Config) { c.Log.Format = "xml" }, want: "log.format"},
		{name: "addr", mutate: func(c *Config) { c.Server.Addr = " " }, want: "server.addr"},
		{name: "ttl", mutate: func(c *Config) { c.Server.SessionTTL = 0 }, want: KeyServerSessionTTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFormOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Form.Mode = "submit"

	ctrl := form.New(registration.Schema(), cfg.FormOptions()...)
	if ctrl.Mode() != form.OnSubmit {
		t.Fatalf("expected onSubmit mode, got %q", ctrl.Mode())
	}
}
