package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/julianstephens/punchcal/internal/constants"
)

//go:embed locales/*.json
var localeFS embed.FS

// Params fills {name} placeholders in a message.
type Params map[string]any

// Catalog languages, in matcher preference order
var supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("zh-TW"),
	language.Japanese,
	language.Vietnamese,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

// Translator resolves message keys for one language, falling back to en-US
// and then to the key itself.
type Translator struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

func New(lang string) (*Translator, error) {
	fallback, err := loadCatalog(constants.DefaultLang)
	if err != nil {
		return nil, err
	}

	lang = Match(lang)
	messages := fallback
	if lang != constants.DefaultLang {
		messages, err = loadCatalog(lang)
		if err != nil {
			// vi and id have no catalog of their own yet
			messages = fallback
		}
	}

	return &Translator{lang: lang, messages: messages, fallback: fallback}, nil
}

func loadCatalog(lang string) (map[string]string, error) {
	data, err := localeFS.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return nil, fmt.Errorf("no translations for %s: %w", lang, err)
	}
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse translations for %s: %w", lang, err)
	}
	return messages, nil
}

// Match maps any BCP 47 or POSIX locale ("zh_TW.UTF-8", "ja", "fr-FR") to a
// supported language, defaulting to en-US.
func Match(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return constants.DefaultLang
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return constants.DefaultLang
	}
	// Any Chinese variant uses the Traditional catalog
	if base, _ := tag.Base(); base.String() == "zh" {
		return "zh-TW"
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return constants.DefaultLang
	}
	return supported[idx].String()
}

func (t *Translator) Lang() string {
	return t.lang
}

// T translates key, substituting params.
func (t *Translator) T(key string, params ...Params) string {
	msg, ok := t.messages[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		msg = key
	}
	for _, p := range params {
		for name, v := range p {
			msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(v))
		}
	}
	return msg
}

// Has reports whether key exists in any loaded catalog.
func (t *Translator) Has(key string) bool {
	if _, ok := t.messages[key]; ok {
		return true
	}
	_, ok := t.fallback[key]
	return ok
}
