package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Workflow step bounds. Steps run venue info (1), narrative interview (2),
// menu entry (3), ordering (4), generation (5), and plan selection (6).
const (
	FirstStep = 1
	LastStep  = 6
)

// InterviewQuestionCount is the fixed number of operator interview questions.
const InterviewQuestionCount = 15

// Venue holds the flat venue attributes collected in step one.
type Venue struct {
	Name           string `json:"name"`
	NameRomaji     string `json:"name_romaji"`
	Category       string `json:"category"`
	PriceBand      string `json:"price_band"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	Email          string `json:"email"`
	NearestStation string `json:"nearest_station"`
	WalkTime       string `json:"walk_time"`
	OpenHours      string `json:"open_hours"`
	ClosedDays     string `json:"closed_days"`

	// Categorical accessibility attributes; see the Wheelchair* style
	// constants for the accepted values.
	Wheelchair      string `json:"wheelchair"`
	DietaryOptions  string `json:"dietary_options"`
	HalalSupport    string `json:"halal_support"`
	AllergyLabeling string `json:"allergy_labeling"`
}

// Accepted values for the categorical accessibility attributes.
const (
	WheelchairAvailable    = "available"
	WheelchairPartial      = "partial"
	WheelchairNotAvailable = "not_available"

	DietaryFull    = "full"
	DietaryLimited = "limited"
	DietaryNone    = "none"

	HalalCertified    = "certified"
	HalalFriendly     = "friendly"
	HalalNotAvailable = "not_available"

	AllergyDetailed = "detailed"
	AllergyBasic    = "basic"
	AllergyNone     = "none"
)

// Item is one content unit, typically a menu entry.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       []byte `json:"image,omitempty"`
	Rating      int    `json:"rating"`
}

// Record is the single canonical in-progress submission for a session.
type Record struct {
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
	CurrentStep int       `json:"current_step"`

	Venue Venue `json:"venue"`

	Items          []Item   `json:"items"`
	ItemOrder      []string `json:"item_order"`
	FeaturedItemID string   `json:"featured_item_id"`

	InterviewAnswers    map[string]string `json:"interview_answers"`
	Narrative           string            `json:"narrative"`
	NarrativeApproved   bool              `json:"narrative_approved"`
	NarrativeApprovedAt time.Time         `json:"narrative_approved_at"`

	// GeneratedContent maps item ID to language code to generated text.
	// NarrativeTranslations maps language code to the localized narrative.
	// Both are written only by the generation orchestrator.
	GeneratedContent      map[string]map[string]string `json:"generated_content"`
	NarrativeTranslations map[string]string            `json:"narrative_translations"`

	SelectedPlan   string    `json:"selected_plan"`
	PlanSelectedAt time.Time `json:"plan_selected_at"`

	// ValidationErrors is the last computed validator output. Informational
	// only; gating always recomputes.
	ValidationErrors []string `json:"validation_errors"`
}

// QuestionIDs returns the fixed interview question identifiers q1..q15.
func QuestionIDs() []string {
	ids := make([]string, InterviewQuestionCount)
	for i := range ids {
		ids[i] = fmt.Sprintf("q%d", i+1)
	}
	return ids
}

// NewRecord creates a fresh record with a new session identifier and all
// interview answer keys pre-populated.
func NewRecord(now time.Time) *Record {
	answers := make(map[string]string, InterviewQuestionCount)
	for _, id := range QuestionIDs() {
		answers[id] = ""
	}
	return &Record{
		SessionID:             uuid.NewString(),
		CreatedAt:             now,
		LastUpdated:           now,
		CurrentStep:           FirstStep,
		Items:                 []Item{},
		ItemOrder:             []string{},
		InterviewAnswers:      answers,
		GeneratedContent:      map[string]map[string]string{},
		NarrativeTranslations: map[string]string{},
		ValidationErrors:      []string{},
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Items = make([]Item, len(r.Items))
	for i, item := range r.Items {
		clone.Items[i] = item
		if item.Image != nil {
			clone.Items[i].Image = append([]byte(nil), item.Image...)
		}
	}
	clone.ItemOrder = append([]string(nil), r.ItemOrder...)
	clone.InterviewAnswers = copyStringMap(r.InterviewAnswers)
	clone.NarrativeTranslations = copyStringMap(r.NarrativeTranslations)
	clone.GeneratedContent = make(map[string]map[string]string, len(r.GeneratedContent))
	for itemID, byLang := range r.GeneratedContent {
		clone.GeneratedContent[itemID] = copyStringMap(byLang)
	}
	clone.ValidationErrors = append([]string(nil), r.ValidationErrors...)
	return &clone
}

// ItemByID returns a pointer into Items for the given identifier.
func (r *Record) ItemByID(id string) *Item {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return &r.Items[i]
		}
	}
	return nil
}

// OrderedItems returns the items sorted by the display order sequence.
// Identifiers missing from ItemOrder keep insertion order at the end.
func (r *Record) OrderedItems() []Item {
	position := make(map[string]int, len(r.ItemOrder))
	for i, id := range r.ItemOrder {
		position[id] = i
	}
	ordered := make([]Item, 0, len(r.Items))
	for _, id := range r.ItemOrder {
		if item := r.ItemByID(id); item != nil {
			ordered = append(ordered, *item)
		}
	}
	for _, item := range r.Items {
		if _, ok := position[item.ID]; !ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

func copyStringMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
