package backup

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"menuforge/internal/services"
	"menuforge/internal/session"
	"menuforge/internal/snapshot"
)

func openStorage(t *testing.T) *snapshot.Store {
	t.Helper()
	store, err := snapshot.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open snapshot store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRotationKeepsNewestTwenty(t *testing.T) {
	storage := openStorage(t)
	manager := NewManager(storage, 20, nil)
	rec := session.NewRecord(time.Now().UTC())

	for i := 0; i < 25; i++ {
		rec.Venue.Name = "mutation"
		if err := manager.Snapshot(rec); err != nil {
			t.Fatalf("Snapshot %d: %v", i, err)
		}
	}

	entries, err := manager.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 20 {
		t.Fatalf("expected exactly 20 snapshots, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Fatalf("snapshot timestamps must strictly increase: %+v", entries)
		}
	}
}

func TestSnapshotNamesStayOrderedUnderFrozenClock(t *testing.T) {
	storage := openStorage(t)
	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	manager := NewManager(storage, 5, nil, WithClock(func() time.Time { return fixed }))
	rec := session.NewRecord(fixed)

	for i := 0; i < 3; i++ {
		if err := manager.Snapshot(rec); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
	}
	entries, err := manager.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(entries))
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	storage := openStorage(t)
	manager := NewManager(storage, 20, nil)

	rec := session.NewRecord(time.Now().UTC())
	rec.Venue.Name = "Sakura"
	rec.Items = []session.Item{{ID: "i1", Name: "Ramen", Price: 900, Rating: 3}}
	rec.ItemOrder = []string{"i1"}
	if err := manager.Snapshot(rec); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := manager.RestoreLatest(context.Background())
	if err != nil {
		t.Fatalf("RestoreLatest: %v", err)
	}
	if restored == nil {
		t.Fatal("expected a restored record")
	}
	if restored.SessionID != rec.SessionID || restored.Venue.Name != "Sakura" {
		t.Fatalf("restored record mismatch: %+v", restored)
	}
	if len(restored.Items) != 1 || restored.Items[0].Name != "Ramen" {
		t.Fatalf("restored items mismatch: %+v", restored.Items)
	}
}

func TestRestoreLatestEmptyStore(t *testing.T) {
	manager := NewManager(openStorage(t), 20, nil)
	rec, err := manager.RestoreLatest(context.Background())
	if err != nil {
		t.Fatalf("RestoreLatest: %v", err)
	}
	if rec != nil {
		t.Fatal("empty store must restore nothing")
	}
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	storage := openStorage(t)
	manager := NewManager(storage, 20, nil)
	ctx := context.Background()

	if err := storage.Write(ctx, "backup_bad", time.Now().UTC(), []byte("not json")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := manager.Restore(ctx, "backup_bad"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	// Structurally broken record inside a valid envelope.
	if err := storage.Write(ctx, "backup_broken", time.Now().UTC(),
		[]byte(`{"timestamp":"2026-04-01T00:00:00Z","session_id":"s","record":{"session_id":"s","current_step":9}}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := manager.Restore(ctx, "backup_broken"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	if _, err := manager.Restore(ctx, "absent"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	rec := session.NewRecord(time.Now().UTC())
	rec.Venue.Name = "Sakura"
	rec.Venue.Category = "Izakaya"
	rec.Items = []session.Item{{ID: "i1", Name: "Ramen", Price: 900, Rating: 4}}
	rec.ItemOrder = []string{"i1"}
	rec.InterviewAnswers["q1"] = "the founding story"
	rec.GeneratedContent = map[string]map[string]string{"i1": {"en": "delicious"}}
	rec.Narrative = "a long story"
	rec.NarrativeApproved = true

	data, err := Export(rec)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	imported, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if imported.SessionID != rec.SessionID ||
		imported.Venue != rec.Venue ||
		imported.Narrative != rec.Narrative ||
		!imported.NarrativeApproved {
		t.Fatalf("imported record differs: %+v", imported)
	}
	if imported.InterviewAnswers["q1"] != "the founding story" {
		t.Fatal("interview answers lost in round trip")
	}
	if imported.GeneratedContent["i1"]["en"] != "delicious" {
		t.Fatal("generated content lost in round trip")
	}
}

func TestImportRejectsInvalidStructure(t *testing.T) {
	if _, err := Import([]byte(`{"session_id":""}`)); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if _, err := Import([]byte("{")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
