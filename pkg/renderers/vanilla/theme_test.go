package vanilla

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func TestDefaultManifestCarriesRendererTokens(t *testing.T) {
	manifest := DefaultManifest()
	for _, key := range []string{TokenForm, TokenLabel, TokenInput, TokenInputError, TokenError, TokenButton} {
		if manifest.Tokens[key] == "" {
			t.Fatalf("missing token %q", key)
		}
	}
	if _, ok := manifest.Variants["dark"]; !ok {
		t.Fatalf("expected dark variant")
	}
	if manifest.Assets.Files[AssetRuntime] == "" {
		t.Fatalf("expected runtime asset")
	}
}

func TestResolveClassesOverlaysTokens(t *testing.T) {
	got := resolveClasses(&theme.RendererConfig{Tokens: map[string]string{TokenInputError: "ring-red"}})
	if got.InputError != "ring-red" {
		t.Fatalf("override ignored: %q", got.InputError)
	}
	if got.Input != DefaultManifest().Tokens[TokenInput] {
		t.Fatalf("missing tokens should fall back to defaults")
	}
	if diff := cmp.Diff(resolveClasses(nil), resolveClasses(&theme.RendererConfig{})); diff != "" {
		t.Fatalf("nil and empty config should agree (-nil +empty):\n%s", diff)
	}
}

func TestCSSVarsStyleIsSorted(t *testing.T) {
	got := cssVarsStyle(&theme.RendererConfig{CSSVars: map[string]string{"--b": "2", "--a": "1"}})
	if got != "--a: 1; --b: 2" {
		t.Fatalf("unexpected style %q", got)
	}
}
