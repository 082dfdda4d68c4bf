package generate

import (
	"fmt"
	"strings"

	"menuforge/internal/language"
	"menuforge/internal/session"
)

// buildItemPrompt assembles the system and user prompts for one localized
// menu item description. The facility summary and cultural context steer the
// model toward copy that works for visitors from the target region.
func buildItemPrompt(task ItemTask, info language.Info) (system, user string) {
	system = fmt.Sprintf(
		"You are a professional food writer producing restaurant menu copy in %s (%s). %s. Write natural, appetizing prose for international visitors. Output only the description text, 80-120 words, no headings or quotes.",
		info.Name, info.NativeName, info.Context)

	var b strings.Builder
	fmt.Fprintf(&b, "Write a menu description in %s for the following dish.\n\n", info.Name)
	fmt.Fprintf(&b, "Dish: %s\n", task.Item.Name)
	if task.Item.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", task.Item.Category)
	}
	if task.Item.Price > 0 {
		fmt.Fprintf(&b, "Price: %d JPY\n", task.Item.Price)
	}
	if task.Item.Description != "" {
		fmt.Fprintf(&b, "Operator notes: %s\n", task.Item.Description)
	}
	if task.Item.Rating > 1 {
		fmt.Fprintf(&b, "House recommendation level: %d of 5\n", task.Item.Rating)
	}
	if venue := facilitySummary(task.Venue); venue != "" {
		fmt.Fprintf(&b, "\nAbout the restaurant:\n%s\n", venue)
	}
	return system, b.String()
}

// buildNarrativePrompt assembles the prompts for the venue narrative. Answers
// are presented topic by topic in interview order; unanswered topics are
// omitted rather than sent as blanks.
func buildNarrativePrompt(task NarrativeTask) (system, user string) {
	system = "You are a skilled storyteller writing the signature story of a Japanese restaurant. Write in warm, polite Japanese (です/ます調). Weave the owner's answers into one flowing narrative of 800-1000 characters. Output only the story text."

	var b strings.Builder
	b.WriteString("Write the restaurant's story from this owner interview.\n\n")
	if task.Venue.Name != "" {
		fmt.Fprintf(&b, "Restaurant: %s\n", task.Venue.Name)
	}
	if task.Venue.Category != "" {
		fmt.Fprintf(&b, "Cuisine: %s\n", task.Venue.Category)
	}
	b.WriteString("\nInterview:\n")
	for _, q := range session.Questions() {
		answer := strings.TrimSpace(task.Answers[q.ID])
		if answer == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", q.Topic, answer)
	}
	return system, b.String()
}

// buildTranslationPrompt assembles the prompts for translating approved
// narrative content into one target language.
func buildTranslationPrompt(content string, info language.Info) (system, user string) {
	system = fmt.Sprintf(
		"You are a professional translator rendering restaurant storytelling into %s (%s). %s. Preserve the warmth and meaning of the original. Output only the translated text.",
		info.Name, info.NativeName, info.Context)
	user = fmt.Sprintf("Translate the following restaurant story into %s:\n\n%s", info.Name, content)
	return system, user
}

// facilitySummary renders the venue's accessibility and service attributes
// as short lines for prompt context.
func facilitySummary(v session.Venue) string {
	var lines []string
	if v.Name != "" {
		lines = append(lines, "Name: "+v.Name)
	}
	if v.Category != "" {
		lines = append(lines, "Cuisine: "+v.Category)
	}
	if v.PriceBand != "" {
		lines = append(lines, "Price band: "+v.PriceBand)
	}
	if s := wheelchairText(v.Wheelchair); s != "" {
		lines = append(lines, "Wheelchair access: "+s)
	}
	if s := dietaryText(v.DietaryOptions); s != "" {
		lines = append(lines, "Vegetarian/vegan options: "+s)
	}
	if s := halalText(v.HalalSupport); s != "" {
		lines = append(lines, "Halal: "+s)
	}
	if s := allergyText(v.AllergyLabeling); s != "" {
		lines = append(lines, "Allergy information: "+s)
	}
	return strings.Join(lines, "\n")
}

func wheelchairText(value string) string {
	switch value {
	case session.WheelchairAvailable:
		return "fully accessible"
	case session.WheelchairPartial:
		return "partially accessible"
	case session.WheelchairNotAvailable:
		return "not accessible"
	}
	return ""
}

func dietaryText(value string) string {
	switch value {
	case session.DietaryFull:
		return "full menu available"
	case session.DietaryLimited:
		return "limited options"
	case session.DietaryNone:
		return "not available"
	}
	return ""
}

func halalText(value string) string {
	switch value {
	case session.HalalCertified:
		return "certified"
	case session.HalalFriendly:
		return "halal-friendly"
	case session.HalalNotAvailable:
		return "not available"
	}
	return ""
}

func allergyText(value string) string {
	switch value {
	case session.AllergyDetailed:
		return "detailed labeling"
	case session.AllergyBasic:
		return "major allergens labeled"
	case session.AllergyNone:
		return "not provided"
	}
	return ""
}
