package delivery

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"menuforge/internal/session"
)

func testRecord() *session.Record {
	rec := session.NewRecord(time.Now())
	rec.Venue = session.Venue{Name: "花月", Category: "ramen"}
	rec.Items = []session.Item{
		{ID: "i1", Name: "Shoyu Ramen", Price: 900, Category: "noodles", Rating: 5},
		{ID: "i2", Name: "Gyoza", Price: 450, Category: "sides", Rating: 3, Image: []byte{0xFF, 0xD8}},
	}
	rec.ItemOrder = []string{"i2", "i1"}
	rec.FeaturedItemID = "i1"
	rec.GeneratedContent = map[string]map[string]string{
		"i1": {"ja": "醤油ラーメン説明", "en": "A classic soy sauce ramen."},
		"i2": {"en": "Pan-fried dumplings."},
	}
	rec.NarrativeTranslations = map[string]string{
		"ja": "当店の物語",
		"en": "Our story",
	}
	rec.SelectedPlan = "standard"
	return rec
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("csv must carry a utf-8 byte order mark")
	}
	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return rows
}

func TestAssembleItemsFollowDisplayOrder(t *testing.T) {
	pkg, err := Assemble(testRecord(), []string{"en", "ja"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	rows := parseCSV(t, pkg.ItemsCSV)
	if len(rows) != 3 {
		t.Fatalf("expected header plus two items, got %d rows", len(rows))
	}
	header := rows[0]
	// Column order follows the registry, not the request.
	if header[5] != "description_ja" || header[6] != "description_en" {
		t.Fatalf("unexpected language columns %v", header)
	}
	if rows[1][0] != "Gyoza" || rows[2][0] != "Shoyu Ramen" {
		t.Fatalf("rows must follow display order, got %v / %v", rows[1], rows[2])
	}
	if rows[2][4] != "true" || rows[1][4] != "false" {
		t.Fatal("featured flag misplaced")
	}
	if rows[2][6] != "A classic soy sauce ramen." {
		t.Fatalf("description cell mismatch: %q", rows[2][6])
	}
	if rows[1][5] != "" {
		t.Fatalf("missing translation must stay empty, got %q", rows[1][5])
	}
}

func TestAssembleNarrativeWideLayout(t *testing.T) {
	pkg, err := Assemble(testRecord(), []string{"ja", "en", "fr"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	rows := parseCSV(t, pkg.NarrativeCSV)
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[0][0] != "story_ja" || rows[0][1] != "story_en" || rows[0][2] != "story_fr" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "当店の物語" || rows[1][1] != "Our story" || rows[1][2] != "" {
		t.Fatalf("unexpected data row %v", rows[1])
	}
}

func TestAssembleVenueAndAssets(t *testing.T) {
	pkg, err := Assemble(testRecord(), []string{"en"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	rows := parseCSV(t, pkg.VenueCSV)
	if rows[1][0] != "name" || rows[1][1] != "花月" {
		t.Fatalf("venue name row mismatch: %v", rows[1])
	}
	if pkg.Plan != "standard" {
		t.Fatalf("plan not carried: %q", pkg.Plan)
	}
	if _, ok := pkg.Assets["i2"]; !ok {
		t.Fatal("item image missing from assets")
	}
	if _, ok := pkg.Assets["i1"]; ok {
		t.Fatal("imageless item must not produce an asset")
	}
}

func TestAssembleRejectsUnknownLanguage(t *testing.T) {
	if _, err := Assemble(testRecord(), []string{"en", "xx"}); err == nil {
		t.Fatal("expected unsupported language error")
	}
	if _, err := Assemble(testRecord(), nil); err == nil {
		t.Fatal("expected error when no languages requested")
	}
}
