package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"menuforge/internal/logging"
	"menuforge/internal/services"
)

// Snapshotter receives the full record after every mutation. Implementations
// must treat the record as read-only. Failures are logged and swallowed; the
// in-memory record stays the source of truth.
type Snapshotter interface {
	Snapshot(rec *Record) error
}

// Options configures a Store.
type Options struct {
	// Snapshotter is invoked after every mutation. Optional.
	Snapshotter Snapshotter
	// Logger receives snapshot failures and lifecycle events. Optional.
	Logger *slog.Logger
	// ApprovalThreshold is the minimum narrative length in runes. Zero
	// falls back to 300.
	ApprovalThreshold int
	// Initial seeds the store with an existing record, e.g. restored from
	// the newest snapshot. When nil a fresh record is created.
	Initial *Record
	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Store holds the single live workflow record for a session and is the only
// legal writer to it.
type Store struct {
	mu        sync.Mutex
	rec       *Record
	snap      Snapshotter
	logger    *slog.Logger
	clock     func() time.Time
	threshold int
}

// NewStore constructs a store. When no initial record is supplied a fresh
// one is created and snapshotted immediately.
func NewStore(opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	threshold := opts.ApprovalThreshold
	if threshold <= 0 {
		threshold = 300
	}

	s := &Store{
		snap:      opts.Snapshotter,
		logger:    logging.WithComponent(logger, "session"),
		clock:     clock,
		threshold: threshold,
	}
	if opts.Initial != nil {
		rec := opts.Initial.Clone()
		normalizeRecord(rec)
		s.rec = rec
	} else {
		s.rec = NewRecord(clock().UTC())
		s.logger.Info("new session started", slog.String(logging.FieldSessionID, s.rec.SessionID))
		s.snapshot(s.rec)
	}
	return s
}

// Record returns a deep copy of the current record.
func (s *Store) Record() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// SessionID returns the current session identifier.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.SessionID
}

// mutate applies fn under the lock. When fn reports a change the update
// timestamp is stamped strictly after its previous value and a snapshot is
// triggered.
func (s *Store) mutate(fn func(rec *Record) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := fn(s.rec)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	now := s.clock().UTC()
	if !now.After(s.rec.LastUpdated) {
		now = s.rec.LastUpdated.Add(time.Nanosecond)
	}
	s.rec.LastUpdated = now
	s.snapshot(s.rec)
	return nil
}

func (s *Store) snapshot(rec *Record) {
	if s.snap == nil {
		return
	}
	if err := s.snap.Snapshot(rec.Clone()); err != nil {
		s.logger.Warn("snapshot failed",
			slog.String(logging.FieldSessionID, rec.SessionID),
			logging.Error(err))
	}
}

// SetVenue replaces the venue attributes wholesale.
func (s *Store) SetVenue(venue Venue) error {
	return s.mutate(func(rec *Record) (bool, error) {
		rec.Venue = venue
		return true, nil
	})
}

// AddItem appends an item, generating an identifier when absent, and returns
// the stored copy.
func (s *Store) AddItem(item Item) (Item, error) {
	if item.Price < 0 {
		return Item{}, services.Wrap(services.ErrValidation, "session", "add item", "price cannot be negative", nil)
	}
	if item.Rating < 1 || item.Rating > 5 {
		if item.Rating == 0 {
			item.Rating = 1
		} else {
			return Item{}, services.Wrap(services.ErrValidation, "session", "add item", "rating must be within 1..5", nil)
		}
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := s.mutate(func(rec *Record) (bool, error) {
		if rec.ItemByID(item.ID) != nil {
			return false, services.Wrap(services.ErrContract, "session", "add item", "duplicate item id "+item.ID, nil)
		}
		rec.Items = append(rec.Items, item)
		rec.ItemOrder = append(rec.ItemOrder, item.ID)
		return true, nil
	})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("item added", slog.String(logging.FieldItemID, item.ID), slog.String("name", item.Name))
	return item, nil
}

// UpdateItem replaces an existing item wholesale, matched by identifier.
func (s *Store) UpdateItem(item Item) error {
	if item.Price < 0 {
		return services.Wrap(services.ErrValidation, "session", "update item", "price cannot be negative", nil)
	}
	return s.mutate(func(rec *Record) (bool, error) {
		existing := rec.ItemByID(item.ID)
		if existing == nil {
			return false, services.Wrap(services.ErrNotFound, "session", "update item", item.ID, nil)
		}
		*existing = item
		return true, nil
	})
}

// RemoveItem deletes an item and cascades: the identifier leaves the display
// order, its generated content is dropped, and the featured reference is
// cleared when it pointed there.
func (s *Store) RemoveItem(id string) error {
	err := s.mutate(func(rec *Record) (bool, error) {
		if rec.ItemByID(id) == nil {
			return false, services.Wrap(services.ErrNotFound, "session", "remove item", id, nil)
		}
		items := rec.Items[:0]
		for _, item := range rec.Items {
			if item.ID != id {
				items = append(items, item)
			}
		}
		rec.Items = items

		order := rec.ItemOrder[:0]
		for _, oid := range rec.ItemOrder {
			if oid != id {
				order = append(order, oid)
			}
		}
		rec.ItemOrder = order

		delete(rec.GeneratedContent, id)
		if rec.FeaturedItemID == id {
			rec.FeaturedItemID = ""
		}
		return true, nil
	})
	if err == nil {
		s.logger.Info("item removed", slog.String(logging.FieldItemID, id))
	}
	return err
}

// ReorderItems replaces the display order. The new order must be a
// permutation of the current item identifiers.
func (s *Store) ReorderItems(order []string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		if len(order) != len(rec.Items) {
			return false, services.Wrap(services.ErrValidation, "session", "reorder", "order must list every item exactly once", nil)
		}
		seen := make(map[string]struct{}, len(order))
		for _, id := range order {
			if rec.ItemByID(id) == nil {
				return false, services.Wrap(services.ErrValidation, "session", "reorder", "unknown item id "+id, nil)
			}
			if _, dup := seen[id]; dup {
				return false, services.Wrap(services.ErrValidation, "session", "reorder", "duplicate item id "+id, nil)
			}
			seen[id] = struct{}{}
		}
		rec.ItemOrder = append(rec.ItemOrder[:0], order...)
		return true, nil
	})
}

// SetFeaturedItem points the featured reference at an existing item.
func (s *Store) SetFeaturedItem(id string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		if rec.ItemByID(id) == nil {
			return false, services.Wrap(services.ErrNotFound, "session", "feature item", id, nil)
		}
		rec.FeaturedItemID = id
		return true, nil
	})
}

// SetInterviewAnswer records one interview answer. The question identifier
// must belong to the fixed set.
func (s *Store) SetInterviewAnswer(questionID, answer string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		if _, ok := rec.InterviewAnswers[questionID]; !ok {
			return false, services.Wrap(services.ErrContract, "session", "interview answer", "unknown question "+questionID, nil)
		}
		rec.InterviewAnswers[questionID] = answer
		return true, nil
	})
}

// SetNarrative stores an unapproved narrative draft and clears any prior
// approval.
func (s *Store) SetNarrative(text string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		rec.Narrative = text
		rec.NarrativeApproved = false
		rec.NarrativeApprovedAt = time.Time{}
		return true, nil
	})
}

// ApproveNarrative stores the narrative and marks it approved. Narratives
// shorter than the approval threshold are rejected and the record is left
// untouched.
func (s *Store) ApproveNarrative(text string) error {
	if len([]rune(text)) < s.threshold {
		return services.Wrap(services.ErrValidation, "session", "approve narrative",
			"narrative shorter than approval threshold", nil)
	}
	return s.mutate(func(rec *Record) (bool, error) {
		rec.Narrative = text
		if !rec.NarrativeApproved {
			rec.NarrativeApprovedAt = s.clock().UTC()
		}
		rec.NarrativeApproved = true
		return true, nil
	})
}

// SetGeneratedContent records generated text for one item and language. The
// item must exist so generated content stays a subset of live items.
func (s *Store) SetGeneratedContent(itemID, langCode, text string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		if rec.ItemByID(itemID) == nil {
			return false, services.Wrap(services.ErrContract, "session", "generated content", "unknown item "+itemID, nil)
		}
		byLang, ok := rec.GeneratedContent[itemID]
		if !ok {
			byLang = make(map[string]string)
			rec.GeneratedContent[itemID] = byLang
		}
		byLang[langCode] = text
		return true, nil
	})
}

// SetNarrativeTranslation records the localized narrative for one language.
func (s *Store) SetNarrativeTranslation(langCode, text string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		rec.NarrativeTranslations[langCode] = text
		return true, nil
	})
}

// SelectPlan records the terminal-step plan selection.
func (s *Store) SelectPlan(plan string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		rec.SelectedPlan = plan
		rec.PlanSelectedAt = s.clock().UTC()
		return true, nil
	})
}

// AdvanceStep moves the workflow to the target step. The step gate is
// consulted; a refused transition leaves the record untouched.
func (s *Store) AdvanceStep(target int) error {
	return s.mutate(func(rec *Record) (bool, error) {
		if target < FirstStep || target > LastStep {
			return false, services.Wrap(services.ErrContract, "session", "advance step", "step out of range", nil)
		}
		if !CanEnter(rec, target) {
			return false, services.Wrap(services.ErrValidation, "session", "advance step",
				"requirements for the target step are not met", nil)
		}
		if rec.CurrentStep == target {
			return false, nil
		}
		rec.CurrentStep = target
		return true, nil
	})
}

// SetValidationErrors persists the last computed validator output.
func (s *Store) SetValidationErrors(errs []string) error {
	return s.mutate(func(rec *Record) (bool, error) {
		rec.ValidationErrors = append([]string(nil), errs...)
		return true, nil
	})
}

// Replace swaps in a restored or imported record after structural checks.
// On failure the live record is untouched.
func (s *Store) Replace(rec *Record) error {
	if err := CheckRecord(rec); err != nil {
		return err
	}
	clone := rec.Clone()
	normalizeRecord(clone)
	s.mu.Lock()
	s.rec = clone
	s.mu.Unlock()
	s.logger.Info("record replaced", slog.String(logging.FieldSessionID, clone.SessionID))
	s.snapshot(clone)
	return nil
}

// Reset discards the record and starts a fresh session with a new
// identifier. The new record is returned.
func (s *Store) Reset() *Record {
	fresh := NewRecord(s.clock().UTC())
	s.mu.Lock()
	s.rec = fresh
	s.mu.Unlock()
	s.logger.Info("session reset", slog.String(logging.FieldSessionID, fresh.SessionID))
	s.snapshot(fresh)
	return fresh.Clone()
}

// CheckRecord verifies the structural invariants a record must satisfy
// before it may become the live record.
func CheckRecord(rec *Record) error {
	if rec == nil {
		return services.Wrap(services.ErrValidation, "session", "check record", "record is nil", nil)
	}
	if rec.SessionID == "" {
		return services.Wrap(services.ErrValidation, "session", "check record", "missing session id", nil)
	}
	if rec.CurrentStep < FirstStep || rec.CurrentStep > LastStep {
		return services.Wrap(services.ErrValidation, "session", "check record", "current step out of range", nil)
	}
	ids := make(map[string]struct{}, len(rec.Items))
	for _, item := range rec.Items {
		if item.ID == "" {
			return services.Wrap(services.ErrValidation, "session", "check record", "item without id", nil)
		}
		if _, dup := ids[item.ID]; dup {
			return services.Wrap(services.ErrValidation, "session", "check record", "duplicate item id "+item.ID, nil)
		}
		ids[item.ID] = struct{}{}
	}
	if len(rec.ItemOrder) != len(rec.Items) {
		return services.Wrap(services.ErrValidation, "session", "check record", "item order is not a permutation of items", nil)
	}
	seen := make(map[string]struct{}, len(rec.ItemOrder))
	for _, id := range rec.ItemOrder {
		if _, ok := ids[id]; !ok {
			return services.Wrap(services.ErrValidation, "session", "check record", "item order references unknown item "+id, nil)
		}
		if _, dup := seen[id]; dup {
			return services.Wrap(services.ErrValidation, "session", "check record", "item order repeats item "+id, nil)
		}
		seen[id] = struct{}{}
	}
	for itemID := range rec.GeneratedContent {
		if _, ok := ids[itemID]; !ok {
			return services.Wrap(services.ErrValidation, "session", "check record", "generated content references unknown item "+itemID, nil)
		}
	}
	if rec.FeaturedItemID != "" {
		if _, ok := ids[rec.FeaturedItemID]; !ok {
			return services.Wrap(services.ErrValidation, "session", "check record", "featured item does not exist", nil)
		}
	}
	return nil
}

// normalizeRecord fills collections that may be nil after deserialization
// and re-seeds any missing interview answer keys.
func normalizeRecord(rec *Record) {
	if rec.Items == nil {
		rec.Items = []Item{}
	}
	if rec.ItemOrder == nil {
		rec.ItemOrder = []string{}
	}
	if rec.GeneratedContent == nil {
		rec.GeneratedContent = map[string]map[string]string{}
	}
	if rec.NarrativeTranslations == nil {
		rec.NarrativeTranslations = map[string]string{}
	}
	if rec.ValidationErrors == nil {
		rec.ValidationErrors = []string{}
	}
	if rec.InterviewAnswers == nil {
		rec.InterviewAnswers = make(map[string]string, InterviewQuestionCount)
	}
	for _, id := range QuestionIDs() {
		if _, ok := rec.InterviewAnswers[id]; !ok {
			rec.InterviewAnswers[id] = ""
		}
	}
}
