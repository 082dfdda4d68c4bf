package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"menuforge/internal/services"
)

type countingSnapshotter struct {
	calls int
	fail  bool
	last  *Record
}

func (c *countingSnapshotter) Snapshot(rec *Record) error {
	c.calls++
	c.last = rec
	if c.fail {
		return errors.New("disk full")
	}
	return nil
}

func newTestStore(t *testing.T, snap Snapshotter) *Store {
	t.Helper()
	return NewStore(Options{Snapshotter: snap, ApprovalThreshold: 10})
}

func TestLastUpdatedStrictlyIncreases(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(Options{Clock: func() time.Time { return fixed }})

	before := store.Record().LastUpdated
	if err := store.SetVenue(Venue{Name: "Sakura"}); err != nil {
		t.Fatalf("SetVenue: %v", err)
	}
	first := store.Record().LastUpdated
	if !first.After(before) {
		t.Fatalf("expected timestamp to advance: %v -> %v", before, first)
	}

	// Frozen clock: the stamp must still move strictly forward.
	if err := store.SetVenue(Venue{Name: "Sakura", Category: "Izakaya"}); err != nil {
		t.Fatalf("SetVenue: %v", err)
	}
	second := store.Record().LastUpdated
	if !second.After(first) {
		t.Fatalf("expected strictly increasing timestamps: %v -> %v", first, second)
	}
}

func TestEveryMutationSnapshots(t *testing.T) {
	snap := &countingSnapshotter{}
	store := newTestStore(t, snap)
	if snap.calls != 1 {
		t.Fatalf("expected initial snapshot, got %d", snap.calls)
	}
	if err := store.SetVenue(Venue{Name: "Sakura"}); err != nil {
		t.Fatalf("SetVenue: %v", err)
	}
	if _, err := store.AddItem(Item{Name: "Ramen", Price: 900}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if snap.calls != 3 {
		t.Fatalf("expected 3 snapshots, got %d", snap.calls)
	}
}

func TestSnapshotFailureIsSwallowed(t *testing.T) {
	snap := &countingSnapshotter{fail: true}
	store := newTestStore(t, snap)
	if err := store.SetVenue(Venue{Name: "Sakura"}); err != nil {
		t.Fatalf("mutation must not fail on snapshot error: %v", err)
	}
	if store.Record().Venue.Name != "Sakura" {
		t.Fatal("in-memory record must remain source of truth")
	}
}

func TestAddItemAssignsIDAndOrder(t *testing.T) {
	store := newTestStore(t, nil)
	item, err := store.AddItem(Item{Name: "Tempura", Price: 1200})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated item id")
	}
	rec := store.Record()
	if len(rec.ItemOrder) != 1 || rec.ItemOrder[0] != item.ID {
		t.Fatalf("item order not maintained: %v", rec.ItemOrder)
	}
}

func TestRemoveItemCascades(t *testing.T) {
	store := newTestStore(t, nil)
	first, err := store.AddItem(Item{Name: "Ramen", Price: 900})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	second, err := store.AddItem(Item{Name: "Gyoza", Price: 500})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := store.SetFeaturedItem(first.ID); err != nil {
		t.Fatalf("SetFeaturedItem: %v", err)
	}
	if err := store.SetGeneratedContent(first.ID, "en", "text"); err != nil {
		t.Fatalf("SetGeneratedContent: %v", err)
	}

	if err := store.RemoveItem(first.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	rec := store.Record()
	if len(rec.Items) != 1 || rec.Items[0].ID != second.ID {
		t.Fatalf("unexpected items after removal: %+v", rec.Items)
	}
	for _, id := range rec.ItemOrder {
		if id == first.ID {
			t.Fatal("removed item still in item order")
		}
	}
	if _, ok := rec.GeneratedContent[first.ID]; ok {
		t.Fatal("removed item still has generated content")
	}
	if rec.FeaturedItemID != "" {
		t.Fatalf("featured reference not cleared: %q", rec.FeaturedItemID)
	}
}

func TestReorderItemsRequiresPermutation(t *testing.T) {
	store := newTestStore(t, nil)
	a, _ := store.AddItem(Item{Name: "A", Price: 100})
	b, _ := store.AddItem(Item{Name: "B", Price: 200})

	if err := store.ReorderItems([]string{b.ID}); err == nil {
		t.Fatal("short order must be rejected")
	}
	if err := store.ReorderItems([]string{b.ID, b.ID}); err == nil {
		t.Fatal("duplicate order must be rejected")
	}
	if err := store.ReorderItems([]string{b.ID, a.ID}); err != nil {
		t.Fatalf("valid reorder rejected: %v", err)
	}
	rec := store.Record()
	if rec.ItemOrder[0] != b.ID || rec.ItemOrder[1] != a.ID {
		t.Fatalf("reorder not applied: %v", rec.ItemOrder)
	}
	ordered := rec.OrderedItems()
	if ordered[0].ID != b.ID {
		t.Fatalf("OrderedItems ignores display order: %+v", ordered)
	}
}

func TestApproveNarrativeThreshold(t *testing.T) {
	store := newTestStore(t, nil)

	err := store.ApproveNarrative("too short")
	if err == nil {
		t.Fatal("short narrative must be rejected")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	rec := store.Record()
	if rec.NarrativeApproved || !rec.NarrativeApprovedAt.IsZero() {
		t.Fatal("rejected approval must leave state unchanged")
	}

	long := strings.Repeat("味", 12)
	if err := store.ApproveNarrative(long); err != nil {
		t.Fatalf("ApproveNarrative: %v", err)
	}
	rec = store.Record()
	if !rec.NarrativeApproved || rec.NarrativeApprovedAt.IsZero() {
		t.Fatal("approval must set flag and timestamp")
	}
	stamp := rec.NarrativeApprovedAt

	// Re-approving keeps the original approval timestamp.
	if err := store.ApproveNarrative(long + long); err != nil {
		t.Fatalf("ApproveNarrative: %v", err)
	}
	if !store.Record().NarrativeApprovedAt.Equal(stamp) {
		t.Fatal("approval timestamp must only be set on the false to true transition")
	}
}

func TestSetInterviewAnswerRejectsUnknownQuestion(t *testing.T) {
	store := newTestStore(t, nil)
	if err := store.SetInterviewAnswer("q99", "answer"); !errors.Is(err, services.ErrContract) {
		t.Fatalf("expected contract violation, got %v", err)
	}
	if err := store.SetInterviewAnswer("q3", "the founding story"); err != nil {
		t.Fatalf("SetInterviewAnswer: %v", err)
	}
	rec := store.Record()
	if rec.InterviewAnswers["q3"] != "the founding story" {
		t.Fatal("answer not recorded")
	}
	if len(rec.InterviewAnswers) != InterviewQuestionCount {
		t.Fatalf("answer keys must stay fully populated, got %d", len(rec.InterviewAnswers))
	}
}

func TestAdvanceStepConsultsGate(t *testing.T) {
	store := newTestStore(t, nil)
	if err := store.AdvanceStep(4); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected gate refusal, got %v", err)
	}
	if _, err := store.AddItem(Item{Name: "X", Price: 500}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := store.AdvanceStep(4); err != nil {
		t.Fatalf("AdvanceStep: %v", err)
	}
	if store.Record().CurrentStep != 4 {
		t.Fatal("step not advanced")
	}
	if err := store.AdvanceStep(0); !errors.Is(err, services.ErrContract) {
		t.Fatalf("expected contract violation for out-of-range step, got %v", err)
	}
}

func TestSetGeneratedContentRequiresItem(t *testing.T) {
	store := newTestStore(t, nil)
	if err := store.SetGeneratedContent("ghost", "en", "text"); !errors.Is(err, services.ErrContract) {
		t.Fatalf("expected contract violation, got %v", err)
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	store := newTestStore(t, nil)
	oldID := store.SessionID()
	if _, err := store.AddItem(Item{Name: "Ramen", Price: 900}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	fresh := store.Reset()
	if fresh.SessionID == oldID {
		t.Fatal("reset must assign a new session id")
	}
	if len(fresh.Items) != 0 || len(fresh.InterviewAnswers) != InterviewQuestionCount {
		t.Fatalf("reset record not pristine: %+v", fresh)
	}
}

func TestReplaceValidatesStructure(t *testing.T) {
	store := newTestStore(t, nil)
	marker := store.Record()

	bad := NewRecord(time.Now().UTC())
	bad.ItemOrder = []string{"orphan"}
	if err := store.Replace(bad); err == nil {
		t.Fatal("structurally invalid record must be rejected")
	}
	if store.SessionID() != marker.SessionID {
		t.Fatal("failed replace must leave the live record untouched")
	}

	good := NewRecord(time.Now().UTC())
	good.Venue.Name = "Replacement"
	if err := store.Replace(good); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if store.Record().Venue.Name != "Replacement" {
		t.Fatal("replace not applied")
	}
}

func TestRecordReturnsDeepCopy(t *testing.T) {
	store := newTestStore(t, nil)
	item, _ := store.AddItem(Item{Name: "Ramen", Price: 900, Image: []byte{1, 2}})
	rec := store.Record()
	rec.Venue.Name = "mutated"
	rec.Items[0].Name = "mutated"
	rec.Items[0].Image[0] = 9
	rec.InterviewAnswers["q1"] = "mutated"

	fresh := store.Record()
	if fresh.Venue.Name == "mutated" || fresh.Items[0].Name == "mutated" {
		t.Fatal("record copy leaked mutable state")
	}
	if fresh.Items[0].Image[0] == 9 {
		t.Fatal("item image not deep copied")
	}
	if fresh.InterviewAnswers["q1"] == "mutated" {
		t.Fatal("answers map not deep copied")
	}
	_ = item
}
