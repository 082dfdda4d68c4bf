package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Info describes one supported generation target.
type Info struct {
	// Code is the BCP 47 code used as the key in generated content maps.
	Code string
	// Name is the display name used in CSV headers and progress output.
	Name string
	// NativeName is the language's own name, shown to operators.
	NativeName string
	// Context is the cultural framing injected into generation prompts.
	Context string

	tag xlanguage.Tag
}

// Tag returns the parsed BCP 47 tag for the language.
func (i Info) Tag() xlanguage.Tag {
	return i.tag
}

var registry = []Info{
	{Code: "ja", Name: "Japanese", NativeName: "日本語", Context: "Japanese cultural context with emphasis on hospitality (omotenashi)"},
	{Code: "en", Name: "English", NativeName: "English", Context: "Western cultural context with clear, direct communication"},
	{Code: "ko", Name: "Korean", NativeName: "한국어", Context: "Korean cultural context with respectful honorifics"},
	{Code: "zh-CN", Name: "Simplified Chinese", NativeName: "简体中文", Context: "Mainland Chinese cultural context"},
	{Code: "zh-TW", Name: "Traditional Chinese", NativeName: "繁體中文", Context: "Traditional Chinese cultural context"},
	{Code: "zh-HK", Name: "Cantonese", NativeName: "廣東話", Context: "Hong Kong Cantonese cultural context"},
	{Code: "th", Name: "Thai", NativeName: "ภาษาไทย", Context: "Thai cultural context with polite expressions"},
	{Code: "tl", Name: "Filipino", NativeName: "Filipino", Context: "Filipino cultural context with warm hospitality"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", Context: "Vietnamese cultural context"},
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia", Context: "Indonesian cultural context"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Context: "Spanish cultural context"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Context: "German cultural context with precision"},
	{Code: "fr", Name: "French", NativeName: "Français", Context: "French cultural context with elegance"},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Context: "Italian cultural context with passion for food"},
}

var byCode map[string]*Info

func init() {
	byCode = make(map[string]*Info, len(registry))
	for i := range registry {
		info := &registry[i]
		info.tag = xlanguage.MustParse(info.Code)
		byCode[strings.ToLower(info.Code)] = info
	}
}

// Lookup resolves a language code against the registry. Matching is
// case-insensitive on the full code.
func Lookup(code string) (Info, bool) {
	info, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Info{}, false
	}
	return *info, true
}

// Supported reports whether the code names a registered language.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Codes returns all registered codes in registry order. The order matches
// the column order of the delivery CSVs.
func Codes() []string {
	codes := make([]string, len(registry))
	for i, info := range registry {
		codes[i] = info.Code
	}
	return codes
}

// All returns the full registry in order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}
