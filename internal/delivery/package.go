// Package delivery assembles the final export artifacts for a completed
// workflow record.
package delivery

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"menuforge/internal/language"
	"menuforge/internal/services"
	"menuforge/internal/session"
)

// utf8BOM prefixes every CSV so spreadsheet applications detect the encoding
// of multilingual content.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Package is the assembled delivery bundle for one session.
type Package struct {
	SessionID    string
	Plan         string
	VenueCSV     []byte
	NarrativeCSV []byte
	ItemsCSV     []byte
	// Assets maps item identifier to its uploaded image bytes.
	Assets      map[string][]byte
	GeneratedAt time.Time
}

// Assemble builds the delivery package from a record. Languages outside the
// registry are rejected; columns always follow registry order regardless of
// the order supplied.
func Assemble(rec *session.Record, langs []string) (*Package, error) {
	if rec == nil {
		return nil, services.Wrap(services.ErrValidation, "delivery", "assemble", "record is nil", nil)
	}
	infos, err := resolveLanguages(langs)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		SessionID:   rec.SessionID,
		Plan:        rec.SelectedPlan,
		Assets:      map[string][]byte{},
		GeneratedAt: time.Now().UTC(),
	}
	if pkg.VenueCSV, err = venueCSV(rec); err != nil {
		return nil, err
	}
	if pkg.NarrativeCSV, err = narrativeCSV(rec, infos); err != nil {
		return nil, err
	}
	if pkg.ItemsCSV, err = itemsCSV(rec, infos); err != nil {
		return nil, err
	}
	for _, item := range rec.Items {
		if len(item.Image) > 0 {
			pkg.Assets[item.ID] = append([]byte(nil), item.Image...)
		}
	}
	return pkg, nil
}

// resolveLanguages validates the requested codes and returns them in
// registry order, deduplicated.
func resolveLanguages(langs []string) ([]language.Info, error) {
	requested := make(map[string]struct{}, len(langs))
	for _, code := range langs {
		info, ok := language.Lookup(code)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "delivery", "assemble", "unsupported language "+code, nil)
		}
		requested[info.Code] = struct{}{}
	}
	var infos []language.Info
	for _, info := range language.All() {
		if _, ok := requested[info.Code]; ok {
			infos = append(infos, info)
		}
	}
	if len(infos) == 0 {
		return nil, services.Wrap(services.ErrValidation, "delivery", "assemble", "no languages requested", nil)
	}
	return infos, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, services.Wrap(services.ErrTransient, "delivery", "write csv", "encode rows", err)
	}
	return buf.Bytes(), nil
}

// venueCSV renders the venue attributes as field/value rows.
func venueCSV(rec *session.Record) ([]byte, error) {
	v := rec.Venue
	rows := [][]string{
		{"field", "value"},
		{"name", v.Name},
		{"name_romaji", v.NameRomaji},
		{"category", v.Category},
		{"price_band", v.PriceBand},
		{"address", v.Address},
		{"phone", v.Phone},
		{"website", v.Website},
		{"email", v.Email},
		{"nearest_station", v.NearestStation},
		{"walk_time", v.WalkTime},
		{"open_hours", v.OpenHours},
		{"closed_days", v.ClosedDays},
		{"wheelchair", v.Wheelchair},
		{"dietary_options", v.DietaryOptions},
		{"halal_support", v.HalalSupport},
		{"allergy_labeling", v.AllergyLabeling},
	}
	return writeCSV(rows)
}

// narrativeCSV renders the localized narrative wide: one column per language
// and a single data row.
func narrativeCSV(rec *session.Record, infos []language.Info) ([]byte, error) {
	header := make([]string, 0, len(infos))
	row := make([]string, 0, len(infos))
	for _, info := range infos {
		header = append(header, fmt.Sprintf("story_%s", info.Code))
		row = append(row, rec.NarrativeTranslations[info.Code])
	}
	return writeCSV([][]string{header, row})
}

// itemsCSV renders one row per item in display order, with a description
// column per language.
func itemsCSV(rec *session.Record, infos []language.Info) ([]byte, error) {
	header := []string{"name", "price", "category", "rating", "featured"}
	for _, info := range infos {
		header = append(header, fmt.Sprintf("description_%s", info.Code))
	}
	rows := [][]string{header}
	for _, item := range rec.OrderedItems() {
		row := []string{
			item.Name,
			strconv.Itoa(item.Price),
			item.Category,
			strconv.Itoa(item.Rating),
			strconv.FormatBool(item.ID == rec.FeaturedItemID),
		}
		byLang := rec.GeneratedContent[item.ID]
		for _, info := range infos {
			row = append(row, byLang[info.Code])
		}
		rows = append(rows, row)
	}
	return writeCSV(rows)
}
