// Package catalog loads the embedded message catalogs and registers them with
// golang.org/x/text/message so commands can print localized text.
//
// Catalog files live at locales/<locale>/<namespace>.yaml and use a small
// YAML subset: a quoted locale, a quoted namespace and a flat messages map of
// quoted keys to quoted values.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the locale every key must exist in and the fallback for
// lookups in any other locale.
const BaseLocale = "en-US"

// CoreNamespace holds keys shared by every command. Only it may define keys
// with the "core." prefix.
const CoreNamespace = "core"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

type file struct {
	Locale    string
	Namespace string
	Messages  map[string]string
}

type locale struct {
	tag        language.Tag
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle holds every loaded locale.
type Bundle struct {
	locales map[string]*locale
	matcher language.Matcher
	tags    []language.Tag
}

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS parses every locales/*/*.yaml file in catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]*locale{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		parsed, err := parseFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, parsed); err != nil {
			return nil, err
		}
	}
	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale leads so the matcher falls back to it.
	b.tags = append(b.tags, base.tag)
	for _, name := range b.Locales() {
		if name != BaseLocale {
			b.tags = append(b.tags, b.locales[name].tag)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(p string, f file) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	if f.Locale != dirLocale {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, f.Locale, dirLocale)
	}
	if f.Namespace != fileNamespace {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, f.Namespace, fileNamespace)
	}

	loc, ok := b.locales[f.Locale]
	if !ok {
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return fmt.Errorf("catalog %s: parse locale tag: %w", p, err)
		}
		loc = &locale{tag: tag, namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[f.Locale] = loc
	}
	if _, exists := loc.namespaces[f.Namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, f.Namespace, f.Locale)
	}

	ns := make(map[string]string, len(f.Messages))
	for key, value := range f.Messages {
		if strings.HasPrefix(key, CoreNamespace+".") && f.Namespace != CoreNamespace {
			return fmt.Errorf("catalog %s: key %q must be defined in core namespace", p, key)
		}
		if _, exists := loc.messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, f.Locale)
		}
		loc.messages[key] = value
		ns[key] = value
	}
	loc.namespaces[f.Namespace] = ns
	return nil
}

// Register installs every message with x/text/message. Keys missing from a
// locale are registered with their base-locale text so printers never fall
// back to the raw key.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	base := b.locales[BaseLocale]
	for _, name := range b.Locales() {
		loc := b.locales[name]
		for key, fallback := range base.messages {
			value, ok := loc.messages[key]
			if !ok {
				value = fallback
			}
			if err := message.SetString(loc.tag, key, value); err != nil {
				return fmt.Errorf("register %s %s: %w", name, key, err)
			}
		}
	}
	return nil
}

// Locales returns the loaded locale names in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for name := range b.locales {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasLocale reports whether the locale was loaded verbatim.
func (b *Bundle) HasLocale(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(name)]
	return ok
}

// Resolve returns the loaded locale closest to the requested one.
func (b *Bundle) Resolve(requested string) string {
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	requested = strings.TrimSpace(requested)
	if b.HasLocale(requested) {
		return requested
	}
	_, index, confidence := b.matcher.Match(language.Make(requested))
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns an x/text printer for the locale closest to requested.
func (b *Bundle) Printer(requested string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.Resolve(requested)))
}

// Message returns one message, falling back to the base locale.
func (b *Bundle) Message(name string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if loc, ok := b.locales[strings.TrimSpace(name)]; ok {
		if value, exists := loc.messages[key]; exists {
			return value, true
		}
	}
	value, ok := b.locales[BaseLocale].messages[key]
	return value, ok
}

// NamespaceMessages returns a copy of one namespace, falling back to the base
// locale when the requested locale does not define it.
func (b *Bundle) NamespaceMessages(name string, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	loc, ok := b.locales[b.Resolve(name)]
	if !ok || len(loc.namespaces[namespace]) == 0 {
		loc = b.locales[BaseLocale]
	}
	out := make(map[string]string, len(loc.namespaces[namespace]))
	for key, value := range loc.namespaces[namespace] {
		out[key] = value
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}

func parseFile(data []byte) (file, error) {
	out := file{Messages: map[string]string{}}
	inMessages := false

	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var err error
		switch {
		case strings.HasPrefix(line, "locale:"):
			out.Locale, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
		case strings.HasPrefix(line, "namespace:"):
			out.Namespace, err = strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "namespace:")))
		case line == "messages:":
			inMessages = true
		case inMessages:
			var key, value string
			key, value, err = parseEntry(line)
			if err == nil {
				if strings.TrimSpace(key) == "" {
					err = fmt.Errorf("message key cannot be blank")
				} else {
					out.Messages[key] = value
				}
			}
		default:
			err = fmt.Errorf("unexpected line %q", line)
		}
		if err != nil {
			return file{}, fmt.Errorf("line %d: %w", n+1, err)
		}
	}

	switch {
	case out.Locale == "":
		return file{}, fmt.Errorf("missing locale")
	case out.Namespace == "":
		return file{}, fmt.Errorf("missing namespace")
	case len(out.Messages) == 0:
		return file{}, fmt.Errorf("missing messages")
	}
	return out, nil
}

// parseEntry splits `"key": "value"` honoring escapes inside the key.
func parseEntry(line string) (string, string, error) {
	if !strings.HasPrefix(line, `"`) {
		return "", "", fmt.Errorf("expected quoted key")
	}
	end := -1
	for i := 1; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '"' {
			end = i
			break
		}
	}
	if end == -1 {
		return "", "", fmt.Errorf("unterminated quoted key")
	}
	key, err := strconv.Unquote(line[:end+1])
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := strconv.Unquote(strings.TrimSpace(rest[1:]))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}
