package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "got" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"not_an_object":        "value is not an object (got {got})",
		"invalid_type":         "expected {expected}, got {got}",
		"overflow":             "number {got} is not representable as {expected}",
		"required":             "required field '{field}' missing",
		"unrecognized_variant": "value does not contain any recognized variants (expected one of: {expected})",
		"invalid_format":       "expected {expected}, got {got}",
		"parse_error":          "parse error",
		"duplicate_key":        "duplicate key",
		"truncated":            "truncated",
	},
	"ja": {
		"not_an_object":        "オブジェクトではありません ({got})",
		"invalid_type":         "型が不正です ({expected} を期待しましたが {got} でした)",
		"overflow":             "数値 {got} は {expected} で表現できません",
		"required":             "必須フィールド '{field}' が不足しています",
		"unrecognized_variant": "認識できるバリアントがありません (期待値: {expected})",
		"invalid_format":       "形式が不正です ({expected} を期待しましたが {got} でした)",
		"parse_error":          "解析エラー",
		"duplicate_key":        "キーが重複しています",
		"truncated":            "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
