package generate

import (
	"context"
	"log/slog"
	"strings"

	"menuforge/internal/language"
	"menuforge/internal/logging"
	"menuforge/internal/services"
	"menuforge/internal/session"
)

// Progress reports one completed (item, language) unit during a sweep.
type Progress struct {
	ItemID   string
	Language string
	Done     int
	Total    int
	Source   Source
}

// ProgressFunc receives sweep progress. Called synchronously between units.
type ProgressFunc func(Progress)

// Notifier is the subset of the notification service the orchestrator uses.
// Delivery failures are logged, never propagated.
type Notifier interface {
	NotifySweepStarted(ctx context.Context, itemCount, languageCount int) error
	NotifySweepCompleted(ctx context.Context, itemCount, languageCount, fallbacks int) error
	NotifyFallbackUsed(ctx context.Context, subject, langCode string) error
}

// State summarizes how far generation has progressed for one item.
type State string

const (
	StateUntouched  State = "untouched"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// ItemState reports the generation state of one item against the requested
// language set.
func ItemState(rec *session.Record, itemID string, langs []string) State {
	byLang := rec.GeneratedContent[itemID]
	have := 0
	for _, code := range langs {
		if strings.TrimSpace(byLang[code]) != "" {
			have++
		}
	}
	switch {
	case have == 0:
		return StateUntouched
	case have < len(langs):
		return StateInProgress
	default:
		return StateComplete
	}
}

// Orchestrator fans generation tasks across languages and persists each
// result into the record store the moment it lands.
type Orchestrator struct {
	client   *Client
	store    *session.Store
	notifier Notifier
	logger   *slog.Logger
	progress ProgressFunc
}

// OrchestratorOptions configures an orchestrator.
type OrchestratorOptions struct {
	Notifier Notifier
	Logger   *slog.Logger
	Progress ProgressFunc
}

// NewOrchestrator constructs an orchestrator over a client and store.
func NewOrchestrator(client *Client, store *session.Store, opts OrchestratorOptions) *Orchestrator {
	return &Orchestrator{
		client:   client,
		store:    store,
		notifier: opts.Notifier,
		logger:   logging.WithComponent(opts.Logger, "orchestrator"),
		progress: opts.Progress,
	}
}

func (o *Orchestrator) report(p Progress) {
	if o.progress != nil {
		o.progress(p)
	}
}

func (o *Orchestrator) notify(fn func() error) {
	if err := fn(); err != nil {
		o.logger.Warn("notification failed", logging.Error(err))
	}
}

// DescribeItem generates descriptions for one item across the given
// languages, sequentially in the order supplied. Each language persists as
// soon as it completes; cancellation stops before the next language and
// leaves prior results in place.
func (o *Orchestrator) DescribeItem(ctx context.Context, itemID string, langs []string) (int, error) {
	rec := o.store.Record()
	item := rec.ItemByID(itemID)
	if item == nil {
		return 0, services.Wrap(services.ErrNotFound, "orchestrator", "describe item", itemID, nil)
	}
	task := ItemTask{Item: *item, Venue: rec.Venue}

	fallbacks := 0
	for i, code := range langs {
		if err := ctx.Err(); err != nil {
			return fallbacks, err
		}
		result, err := o.client.Describe(ctx, task, code)
		if err != nil {
			return fallbacks, err
		}
		if err := o.store.SetGeneratedContent(itemID, code, result.Text); err != nil {
			return fallbacks, err
		}
		if result.Fallback() {
			fallbacks++
			if o.notifier != nil {
				o.notify(func() error { return o.notifier.NotifyFallbackUsed(ctx, item.Name, code) })
			}
		}
		o.report(Progress{ItemID: itemID, Language: code, Done: i + 1, Total: len(langs), Source: result.Source})
	}
	return fallbacks, nil
}

// DescribeAll sweeps every item in display order across the given languages.
func (o *Orchestrator) DescribeAll(ctx context.Context, langs []string) error {
	items := o.store.Record().OrderedItems()
	if len(items) == 0 {
		return services.Wrap(services.ErrValidation, "orchestrator", "describe all", "no items to generate for", nil)
	}
	if o.notifier != nil {
		o.notify(func() error { return o.notifier.NotifySweepStarted(ctx, len(items), len(langs)) })
	}
	o.logger.Info("generation sweep started",
		slog.Int("items", len(items)),
		slog.Int("languages", len(langs)))

	fallbacks := 0
	for _, item := range items {
		n, err := o.DescribeItem(ctx, item.ID, langs)
		fallbacks += n
		if err != nil {
			o.logger.Warn("generation sweep interrupted",
				slog.String(logging.FieldItemID, item.ID),
				logging.Error(err))
			return err
		}
	}

	if o.notifier != nil {
		o.notify(func() error { return o.notifier.NotifySweepCompleted(ctx, len(items), len(langs), fallbacks) })
	}
	o.logger.Info("generation sweep completed",
		slog.Int("items", len(items)),
		slog.Int("languages", len(langs)),
		slog.Int("fallbacks", fallbacks))
	return nil
}

// GenerateNarrative produces the venue narrative from the interview answers
// and stores it as an unapproved draft.
func (o *Orchestrator) GenerateNarrative(ctx context.Context) (Result, error) {
	rec := o.store.Record()
	task := NarrativeTask{Answers: rec.InterviewAnswers, Venue: rec.Venue}
	result, err := o.client.Narrative(ctx, task)
	if err != nil {
		return Result{}, err
	}
	if err := o.store.SetNarrative(result.Text); err != nil {
		return Result{}, err
	}
	if result.Fallback() && o.notifier != nil {
		o.notify(func() error { return o.notifier.NotifyFallbackUsed(ctx, rec.Venue.Name, "ja") })
	}
	return result, nil
}

// TranslateNarrative renders the approved narrative into the given languages.
// The source language keeps the narrative verbatim; every other language goes
// through the translation chain. Each translation persists as it completes.
func (o *Orchestrator) TranslateNarrative(ctx context.Context, langs []string) error {
	rec := o.store.Record()
	if !rec.NarrativeApproved {
		return services.Wrap(services.ErrValidation, "orchestrator", "translate narrative", "narrative is not approved", nil)
	}

	for i, code := range langs {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, ok := language.Lookup(code)
		if !ok {
			return services.Wrap(services.ErrContract, "orchestrator", "translate narrative", "unsupported language "+code, nil)
		}
		var result Result
		if info.Code == "ja" {
			result = Result{Text: rec.Narrative, Source: SourcePrimary}
		} else {
			var err error
			result, err = o.client.Translate(ctx, rec.Narrative, info.Code)
			if err != nil {
				return err
			}
		}
		if err := o.store.SetNarrativeTranslation(info.Code, result.Text); err != nil {
			return err
		}
		if result.Fallback() && o.notifier != nil {
			o.notify(func() error { return o.notifier.NotifyFallbackUsed(ctx, "narrative", info.Code) })
		}
		o.report(Progress{Language: info.Code, Done: i + 1, Total: len(langs), Source: result.Source})
	}
	return nil
}
