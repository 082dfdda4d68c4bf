package session

import (
	"fmt"
	"strings"
)

// Validate computes the full list of human-readable violations for the
// record. All rules are evaluated independently; the function is pure and
// callers decide whether to persist the output.
func Validate(rec *Record) []string {
	var errs []string

	if strings.TrimSpace(rec.Venue.Name) == "" {
		errs = append(errs, "venue name is required")
	}
	if strings.TrimSpace(rec.Venue.Category) == "" {
		errs = append(errs, "venue category is required")
	}
	if !rec.NarrativeApproved {
		errs = append(errs, "the venue narrative has not been approved")
	}
	if len(rec.Items) == 0 {
		errs = append(errs, "no menu items have been added")
	}
	for _, item := range rec.Items {
		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Sprintf("item %s has no name", item.ID))
		}
		if item.Price <= 0 {
			errs = append(errs, fmt.Sprintf("item %s has no price", displayName(item)))
		}
	}
	if rec.CurrentStep >= LastStep && rec.FeaturedItemID == "" {
		errs = append(errs, "a featured item must be selected")
	}
	return errs
}

func displayName(item Item) string {
	if strings.TrimSpace(item.Name) != "" {
		return item.Name
	}
	return item.ID
}
