package generate

import (
	"fmt"
	"strings"

	"menuforge/internal/language"
	"menuforge/internal/session"
)

// Deterministic templates used when both models fail. Every template embeds
// the item or venue name so degraded output is still attributable content,
// not filler.

var descriptionTemplates = map[string]string{
	"ja":    "%sは当店自慢の一品です。厳選した食材を使い、心を込めてお作りしています。ぜひ一度ご賞味ください。",
	"en":    "%s is one of our house specialties, prepared with carefully selected ingredients and served with pride. We hope you will enjoy it.",
	"ko":    "%s은(는) 저희 가게가 자신 있게 추천하는 요리입니다. 엄선한 재료로 정성껏 만들었습니다.",
	"zh-CN": "%s是本店的招牌菜之一，选用精心挑选的食材，用心制作，欢迎品尝。",
	"zh-TW": "%s是本店的招牌菜之一，選用精心挑選的食材，用心製作，歡迎品嚐。",
}

// fallbackDescription renders the canned description for a language. Codes
// without a dedicated template fall back to the English one.
func fallbackDescription(item session.Item, info language.Info) string {
	template, ok := descriptionTemplates[info.Code]
	if !ok {
		template = descriptionTemplates["en"]
	}
	return fmt.Sprintf(template, item.Name)
}

// fallbackNarrative renders a minimal venue story from structured fields.
func fallbackNarrative(venue session.Venue) string {
	name := venue.Name
	if name == "" {
		name = "当店"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%sへようこそ。", name)
	if venue.Category != "" {
		fmt.Fprintf(&b, "%sのお店として、", venue.Category)
	}
	b.WriteString("お客様に喜んでいただける料理とおもてなしを大切にしています。心を込めてお迎えいたしますので、ぜひ一度お立ち寄りください。")
	return b.String()
}

// fallbackTranslation marks untranslated narrative content with the target
// language and a truncated excerpt of the source text.
func fallbackTranslation(content string, info language.Info) string {
	excerpt := []rune(content)
	if len(excerpt) > 50 {
		excerpt = excerpt[:50]
	}
	return fmt.Sprintf("[%s translation of: %s...]", info.Name, string(excerpt))
}
