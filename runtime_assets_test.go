package regform

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "regform.js")
	if err != nil {
		t.Fatalf("expected runtime to be readable: %v", err)
	}
	for _, want := range []string{"data-regform-fields", `"blur"`, `"change"`, "X-CSRF-Token"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected runtime to reference %s", want)
		}
	}
}

func TestRuntimeSerialisesFieldRequests(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "regform.js")
	if err != nil {
		t.Fatalf("expected runtime to be readable: %v", err)
	}
	src := string(data)
	if !strings.Contains(src, "pending = pending") {
		t.Fatalf("expected field requests to be chained on a per-field promise")
	}
	if strings.Contains(src, "post(form, field, event, input.value)") {
		t.Fatalf("expected the value to be captured when the event fires")
	}
}

func TestRuntimeAssetsFSContainsThemeStylesheet(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "regform.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".border-red-900") {
		t.Fatalf("expected error border utility in stylesheet")
	}
}
