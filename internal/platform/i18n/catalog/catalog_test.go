package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got := len(bundle.NamespaceMessages("en-US", CoreNamespace)); got == 0 {
		t.Fatal("expected en-US core namespace messages")
	}
}

func TestEmbeddedLocalesDefineEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.locales[BaseLocale].messages
	for _, name := range bundle.Locales() {
		for key := range base {
			if _, ok := bundle.locales[name].messages[key]; !ok {
				t.Errorf("locale %s is missing key %q", name, key)
			}
		}
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/sandbox.yaml"), `locale: "en-US"
namespace: "sandbox"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.good": "ok"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/sandbox.yaml"), `locale: "en-US"
namespace: "sandbox"
messages:
  "a.key": "b"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestLoadFromFSRejectsMismatchedPath(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "core.x": "x"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale/path mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "core.x": "x"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestParseFileHandlesEscapes(t *testing.T) {
	parsed, err := parseFile([]byte(`# comment
locale: "en-US"
namespace: "sandbox"
messages:
  "say.\"hi\"": "line one\nline two"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := parsed.Messages[`say."hi"`]; got != "line one\nline two" {
		t.Fatalf("value = %q", got)
	}
}

func TestParseFileRejectsMalformedEntries(t *testing.T) {
	for name, content := range map[string]string{
		"unquoted key":  "locale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  key: \"v\"\n",
		"missing colon": "locale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  \"key\" \"v\"\n",
		"no messages":   "locale: \"en-US\"\nnamespace: \"core\"\n",
		"stray line":    "locale: \"en-US\"\nstray\n",
	} {
		if _, err := parseFile([]byte(content)); err == nil {
			t.Errorf("%s: expected parse error", name)
		}
	}
}

func TestResolveFallsBackToBaseLocale(t *testing.T) {
	bundle := Default()
	tests := map[string]string{
		"pt-BR": "pt-BR",
		"en-US": "en-US",
		"fr-FR": BaseLocale,
		"":      BaseLocale,
	}
	for requested, want := range tests {
		if got := bundle.Resolve(requested); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", requested, got, want)
		}
	}
}

func TestPrinterUsesRegisteredMessages(t *testing.T) {
	p := Default().Printer("pt-BR")
	if got := p.Sprintf("core.player.red"); got != "Vermelho" {
		t.Fatalf("pt-BR red = %q", got)
	}
	if got := Default().Printer("en-US").Sprintf("sandbox.turn", 3, "Blue"); got != "Turn 3: Blue to move." {
		t.Fatalf("en-US turn = %q", got)
	}
}

func TestNamespaceMessagesFallsBack(t *testing.T) {
	messages := Default().NamespaceMessages("fr-FR", "errors")
	if len(messages) == 0 {
		t.Fatal("expected fallback errors namespace messages")
	}
	if _, ok := Default().Message("pt-BR", "missing.key"); ok {
		t.Fatal("expected missing key lookup to fail")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
