package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	assert.Equal(t, "required field 'id' missing", T("required", map[string]string{"field": "id"}))

	SetLanguage("ja")
	assert.Equal(t, "必須フィールド 'id' が不足しています", T("required", map[string]string{"field": "id"}))

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "something_else", T("something_else", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "X-overflow", T("overflow", nil))

	SetTranslator(nil)
	assert.Equal(t, "expected string, got number", T("invalid_type", map[string]string{"expected": "string", "got": "number"}))
}
