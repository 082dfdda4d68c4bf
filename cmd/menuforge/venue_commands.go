package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"menuforge/internal/session"
)

func newVenueCommand(ctx *commandContext) *cobra.Command {
	venueCmd := &cobra.Command{
		Use:   "venue",
		Short: "Manage the venue profile collected in step one",
	}

	venueCmd.AddCommand(newVenueSetCommand(ctx))
	venueCmd.AddCommand(newVenueShowCommand(ctx))

	return venueCmd
}

func newVenueSetCommand(ctx *commandContext) *cobra.Command {
	var venue session.Venue

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update venue fields; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCategorical(&venue); err != nil {
				return err
			}
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				current := ws.store.Record().Venue
				merged := mergeVenue(current, venue, cmd)
				if err := ws.store.SetVenue(merged); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Venue updated")
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&venue.Name, "name", "", "Venue name")
	flags.StringVar(&venue.NameRomaji, "name-romaji", "", "Venue name in romaji")
	flags.StringVar(&venue.Category, "category", "", "Cuisine category")
	flags.StringVar(&venue.PriceBand, "price-band", "", "Typical price band")
	flags.StringVar(&venue.Address, "address", "", "Street address")
	flags.StringVar(&venue.Phone, "phone", "", "Phone number")
	flags.StringVar(&venue.Website, "website", "", "Website URL")
	flags.StringVar(&venue.Email, "email", "", "Contact email")
	flags.StringVar(&venue.NearestStation, "station", "", "Nearest station")
	flags.StringVar(&venue.WalkTime, "walk-time", "", "Walk time from the station")
	flags.StringVar(&venue.OpenHours, "open-hours", "", "Opening hours")
	flags.StringVar(&venue.ClosedDays, "closed-days", "", "Regular closing days")
	flags.StringVar(&venue.Wheelchair, "wheelchair", "", "Wheelchair access: available, partial, not_available")
	flags.StringVar(&venue.DietaryOptions, "dietary", "", "Vegetarian/vegan options: full, limited, none")
	flags.StringVar(&venue.HalalSupport, "halal", "", "Halal support: certified, friendly, not_available")
	flags.StringVar(&venue.AllergyLabeling, "allergy", "", "Allergy labeling: detailed, basic, none")
	return cmd
}

// mergeVenue overlays only the flags the user actually set, so repeated set
// invocations build the profile incrementally.
func mergeVenue(current, incoming session.Venue, cmd *cobra.Command) session.Venue {
	assign := map[string]func(){
		"name":        func() { current.Name = incoming.Name },
		"name-romaji": func() { current.NameRomaji = incoming.NameRomaji },
		"category":    func() { current.Category = incoming.Category },
		"price-band":  func() { current.PriceBand = incoming.PriceBand },
		"address":     func() { current.Address = incoming.Address },
		"phone":       func() { current.Phone = incoming.Phone },
		"website":     func() { current.Website = incoming.Website },
		"email":       func() { current.Email = incoming.Email },
		"station":     func() { current.NearestStation = incoming.NearestStation },
		"walk-time":   func() { current.WalkTime = incoming.WalkTime },
		"open-hours":  func() { current.OpenHours = incoming.OpenHours },
		"closed-days": func() { current.ClosedDays = incoming.ClosedDays },
		"wheelchair":  func() { current.Wheelchair = incoming.Wheelchair },
		"dietary":     func() { current.DietaryOptions = incoming.DietaryOptions },
		"halal":       func() { current.HalalSupport = incoming.HalalSupport },
		"allergy":     func() { current.AllergyLabeling = incoming.AllergyLabeling },
	}
	for name, fn := range assign {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}
	return current
}

func validateCategorical(v *session.Venue) error {
	checks := []struct {
		label   string
		value   string
		allowed []string
	}{
		{"wheelchair", v.Wheelchair, []string{session.WheelchairAvailable, session.WheelchairPartial, session.WheelchairNotAvailable}},
		{"dietary", v.DietaryOptions, []string{session.DietaryFull, session.DietaryLimited, session.DietaryNone}},
		{"halal", v.HalalSupport, []string{session.HalalCertified, session.HalalFriendly, session.HalalNotAvailable}},
		{"allergy", v.AllergyLabeling, []string{session.AllergyDetailed, session.AllergyBasic, session.AllergyNone}},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		valid := false
		for _, allowed := range check.allowed {
			if check.value == allowed {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("--%s must be one of: %s", check.label, strings.Join(check.allowed, ", "))
		}
	}
	return nil
}

func newVenueShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the venue profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				v := ws.store.Record().Venue
				rows := [][]string{
					{"name", v.Name},
					{"name (romaji)", v.NameRomaji},
					{"category", v.Category},
					{"price band", v.PriceBand},
					{"address", v.Address},
					{"phone", v.Phone},
					{"website", v.Website},
					{"email", v.Email},
					{"nearest station", v.NearestStation},
					{"walk time", v.WalkTime},
					{"open hours", v.OpenHours},
					{"closed days", v.ClosedDays},
					{"wheelchair", v.Wheelchair},
					{"dietary options", v.DietaryOptions},
					{"halal support", v.HalalSupport},
					{"allergy labeling", v.AllergyLabeling},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}
}
