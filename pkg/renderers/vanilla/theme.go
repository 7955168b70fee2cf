package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeName is the name of the built-in manifest.
const ThemeName = "regform"

// Token keys the renderer reads from theme tokens. Values are class lists.
const (
	TokenForm       = "form"
	TokenTitle      = "title"
	TokenSubtitle   = "subtitle"
	TokenSuccess    = "success"
	TokenFormErrors = "form.errors"
	TokenField      = "field"
	TokenLabel      = "label"
	TokenInput      = "input"
	TokenInputError = "input.error"
	TokenError      = "error"
	TokenHelp       = "help"
	TokenButton     = "button"
)

// Asset keys resolved through RendererConfig.AssetURL.
const (
	AssetStylesheet = "stylesheet"
	AssetRuntime    = "runtime"
)

// DefaultManifest returns the built-in Tailwind manifest with a "dark"
// variant that restyles labels and inputs. Invalid inputs get a thicker red
// border and the message sits on its own line beneath the input.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenForm:       "flex flex-col justify-center items-center mt-4",
			TokenTitle:      "text-2xl font-semibold text-slate-700",
			TokenSubtitle:   "text-sm text-slate-500",
			TokenSuccess:    "rounded-2xl border border-green-700 p-2 text-green-700",
			TokenFormErrors: "rounded-2xl border border-red-900 p-2 text-red-900",
			TokenField:      "flex flex-col gap-2",
			TokenLabel:      "text-slate-600",
			TokenInput:      "rounded-2xl p-2 border",
			TokenInputError: "border-red-900 border-2",
			TokenError:      "text-red-900",
			TokenHelp:       "text-xs text-slate-500",
			TokenButton:     "mt-2 p-2 rounded-2xl cursor-pointer bg-slate-700 text-slate-200",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet: "regform.css",
				AssetRuntime:    "regform.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					TokenLabel: "text-slate-200",
					TokenInput: "rounded-2xl p-2 border border-slate-500 bg-slate-800 text-slate-100",
				},
			},
		},
	}
}

type classes struct {
	Form       string `json:"form"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Success    string `json:"success"`
	FormErrors string `json:"formErrors"`
	Field      string `json:"field"`
	Label      string `json:"label"`
	Input      string `json:"input"`
	InputError string `json:"inputError"`
	Error      string `json:"error"`
	Help       string `json:"help"`
	Button     string `json:"button"`
}

var baseTokens = DefaultManifest().Tokens

// resolveClasses overlays cfg tokens on the built-in tokens.
func resolveClasses(cfg *theme.RendererConfig) classes {
	token := func(key string) string {
		if cfg != nil {
			if value, ok := cfg.Tokens[key]; ok {
				return value
			}
		}
		return baseTokens[key]
	}
	return classes{
		Form:       token(TokenForm),
		Title:      token(TokenTitle),
		Subtitle:   token(TokenSubtitle),
		Success:    token(TokenSuccess),
		FormErrors: token(TokenFormErrors),
		Field:      token(TokenField),
		Label:      token(TokenLabel),
		Input:      token(TokenInput),
		InputError: token(TokenInputError),
		Error:      token(TokenError),
		Help:       token(TokenHelp),
		Button:     token(TokenButton),
	}
}

func assetURL(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}

func joinClasses(values ...string) string {
	var out []string
	for _, value := range values {
		out = append(out, strings.Fields(value)...)
	}
	return strings.Join(out, " ")
}
