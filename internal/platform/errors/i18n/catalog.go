// Package i18n renders domain errors as localized, user-facing messages.
package i18n

import (
	"bytes"
	stderrors "errors"
	"strings"
	"sync"
	"text/template"

	apperrors "github.com/louisbranch/redoubt/internal/platform/errors"
	i18ncatalog "github.com/louisbranch/redoubt/internal/platform/i18n/catalog"
)

const namespace = "errors"

// playerKeys are the metadata keys whose values name a player. They render
// through the core.player.* messages of the catalog locale.
var playerKeys = []string{"Player", "Current"}

// Catalog maps error codes to message templates for one locale.
type Catalog struct {
	locale   string
	messages map[apperrors.Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the error catalog for locale, falling back to the base
// locale when it is unknown.
func GetCatalog(locale string) *Catalog {
	resolved := i18ncatalog.Default().Resolve(locale)

	catalogsMu.RLock()
	cat, ok := catalogs[resolved]
	catalogsMu.RUnlock()
	if ok {
		return cat
	}

	messages := i18ncatalog.Default().NamespaceMessages(resolved, namespace)
	codes := make(map[apperrors.Code]string, len(messages))
	for key, value := range messages {
		codes[apperrors.Code(key)] = value
	}
	built := NewCatalog(resolved, codes)

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[resolved]; ok {
		return existing
	}
	catalogs[resolved] = built
	return built
}

// NewCatalog builds a catalog from a copy of messages.
func NewCatalog(locale string, messages map[apperrors.Code]string) *Catalog {
	cloned := make(map[apperrors.Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template for code with metadata. Unknown codes render as
// the code itself; templates that fail to parse or execute render raw.
func (c *Catalog) Format(code apperrors.Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	t, err := template.New("msg").Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// Localize renders err for locale. Errors without a domain code fall back to
// the UNKNOWN message.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	cat := GetCatalog(locale)
	var domainErr *apperrors.Error
	if stderrors.As(err, &domainErr) {
		return cat.render(domainErr)
	}
	return cat.Format(apperrors.CodeUnknown, nil)
}

// Status converts err to a gRPC status carrying the localized message.
// Errors without a domain code are reported as UNKNOWN.
func Status(err error, locale string) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.Error
	if !stderrors.As(err, &domainErr) {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	return domainErr.ToGRPCStatus(GetCatalog(locale).Locale(), Localize(domainErr, locale))
}

func (c *Catalog) render(err *apperrors.Error) string {
	return strings.TrimSpace(c.Format(err.Code, c.localizeMetadata(err.Metadata)))
}

// localizeMetadata swaps player names for their display names. Values that
// are not players, such as a rejected "green", stay as given.
func (c *Catalog) localizeMetadata(metadata map[string]string) map[string]string {
	if len(metadata) == 0 {
		return metadata
	}
	out := make(map[string]string, len(metadata))
	for key, value := range metadata {
		out[key] = value
	}
	for _, key := range playerKeys {
		value, ok := out[key]
		if !ok {
			continue
		}
		if name, found := i18ncatalog.Default().Message(c.locale, "core.player."+strings.ToLower(value)); found {
			out[key] = name
		}
	}
	return out
}
