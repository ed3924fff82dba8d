// Package i18n resolves translatable display text per player locale.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/text"
)

// BaseLocale is the locale every other catalog falls back to
const BaseLocale = "en-US"

//go:embed locales/*.json
var embeddedLocales embed.FS

type localeFile struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

// Catalog holds the messages of every loaded locale
type Catalog struct {
	messages map[string]map[string]string
	tags     []language.Tag // tags[0] is the base locale
	matcher  language.Matcher
	builder  *catalog.Builder
}

// LoadEmbedded loads the locales shipped with the binary
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads every locales/*.json file in fsys
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, qcerr.NotFound("no locale files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		messages: make(map[string]map[string]string),
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", path, err)
		}
		var file localeFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", path, err)
		}
		if err := c.add(path, file); err != nil {
			return nil, err
		}
	}

	if _, ok := c.messages[BaseLocale]; !ok {
		return nil, qcerr.NotFoundf("base locale %s is not defined", BaseLocale)
	}

	c.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range c.Locales() {
		if locale != BaseLocale {
			c.tags = append(c.tags, language.MustParse(locale))
		}
	}
	c.matcher = language.NewMatcher(c.tags)

	return c, nil
}

func (c *Catalog) add(path string, file localeFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return qcerr.InvalidArgumentf("locale file %s: locale is required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return qcerr.WrapWithCode(err, qcerr.CodeInvalidArgument, fmt.Sprintf("locale file %s: bad locale %q", path, locale))
	}
	if _, exists := c.messages[locale]; exists {
		return qcerr.AlreadyExistsf("locale %s defined twice", locale)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return qcerr.InvalidArgumentf("locale file %s: message key cannot be blank", path)
		}
		messages[key] = value
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("register %s/%s: %w", locale, key, err)
		}
	}
	c.messages[locale] = messages
	return nil
}

// Locales returns the loaded locale tags, sorted
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Match returns the loaded locale closest to the requested one. Minecraft
// style tags such as "fr_fr" are accepted.
func (c *Catalog) Match(locale string) string {
	requested := language.Make(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	_, index, _ := c.matcher.Match(requested)
	return c.tags[index].String()
}

// Message returns the message for key in the matched locale, falling back to
// the base locale
func (c *Catalog) Message(locale, key string) (string, bool) {
	if msg, ok := c.messages[c.Match(locale)][key]; ok {
		return msg, true
	}
	msg, ok := c.messages[BaseLocale][key]
	return msg, ok
}

// Resolve renders display text for a player locale. Unknown keys render as
// the key itself so missing translations stay visible.
func (c *Catalog) Resolve(locale string, t text.Text) string {
	if !t.IsTranslatable() {
		return t.Literal
	}
	if msg, ok := c.Message(locale, t.Key); ok {
		return msg
	}
	return t.Key
}

// Format renders a message with arguments using the locale's number formatting
func (c *Catalog) Format(locale, key string, args ...any) string {
	fallback, ok := c.Message(locale, key)
	if !ok {
		return key
	}
	tag := language.MustParse(c.Match(locale))
	printer := message.NewPrinter(tag, message.Catalog(c.builder))
	return printer.Sprintf(message.Key(key, fallback), args...)
}
