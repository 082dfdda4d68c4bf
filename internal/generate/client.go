package generate

import (
	"context"
	"log/slog"
	"time"

	"menuforge/internal/language"
	"menuforge/internal/logging"
	"menuforge/internal/services"
	"menuforge/internal/session"
)

// Source tags where a generation result came from.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
	SourceFallback  Source = "fallback"
)

// Result is the tagged outcome of one generation call. Text is always
// non-empty; Source distinguishes service output from deterministic
// degradation. Model is empty when the fallback template served.
type Result struct {
	Text   string
	Source Source
	Model  string
}

// Fallback reports whether the result degraded to the local template.
func (r Result) Fallback() bool {
	return r.Source == SourceFallback
}

// Completer is the minimal surface the client needs from the generation
// service. Implemented by *llm.Client.
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// ItemTask bundles the structured fields needed to describe one menu item.
type ItemTask struct {
	Item  session.Item
	Venue session.Venue
}

// NarrativeTask bundles the interview answers and venue attributes the
// narrative is derived from.
type NarrativeTask struct {
	Answers map[string]string
	Venue   session.Venue
}

// Options configures a generation client.
type Options struct {
	PrimaryModel   string
	SecondaryModel string
	// RequestInterval is the minimum gap between any two outbound
	// requests. Zero disables pacing.
	RequestInterval time.Duration
	Logger          *slog.Logger
}

// Option customizes the client beyond Options.
type Option func(*Client)

// WithClock overrides the rate limiter's time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.limiter.now = now
		}
	}
}

// WithSleep overrides how rate-limit delays are performed (useful for tests).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.limiter.sleep = sleep
		}
	}
}

// Client produces one piece of generated text per (task, language) pair,
// degrading through the secondary model to a deterministic template.
type Client struct {
	completer Completer
	primary   string
	secondary string
	limiter   *limiter
	logger    *slog.Logger
}

// NewClient constructs a generation client.
func NewClient(completer Completer, opts Options, extra ...Option) *Client {
	c := &Client{
		completer: completer,
		primary:   opts.PrimaryModel,
		secondary: opts.SecondaryModel,
		limiter:   newLimiter(opts.RequestInterval),
		logger:    logging.WithComponent(opts.Logger, "generate"),
	}
	for _, opt := range extra {
		opt(c)
	}
	return c
}

// Describe generates a localized description for one menu item. The language
// must be registered; generation failure degrades to the template fallback
// and is never returned as an error.
func (c *Client) Describe(ctx context.Context, task ItemTask, langCode string) (Result, error) {
	info, ok := language.Lookup(langCode)
	if !ok {
		return Result{}, services.Wrap(services.ErrContract, "generate", "describe", "unsupported language "+langCode, nil)
	}
	system, user := buildItemPrompt(task, info)
	return c.run(ctx, "item description", info.Code, system, user, func() string {
		return fallbackDescription(task.Item, info)
	})
}

// Narrative generates the venue narrative from the interview answers. The
// output language is the source language of the intake (Japanese).
func (c *Client) Narrative(ctx context.Context, task NarrativeTask) (Result, error) {
	system, user := buildNarrativePrompt(task)
	return c.run(ctx, "venue narrative", "ja", system, user, func() string {
		return fallbackNarrative(task.Venue)
	})
}

// Translate renders existing narrative content into the target language.
func (c *Client) Translate(ctx context.Context, content, langCode string) (Result, error) {
	info, ok := language.Lookup(langCode)
	if !ok {
		return Result{}, services.Wrap(services.ErrContract, "generate", "translate", "unsupported language "+langCode, nil)
	}
	system, user := buildTranslationPrompt(content, info)
	return c.run(ctx, "narrative translation", info.Code, system, user, func() string {
		return fallbackTranslation(content, info)
	})
}

// run executes the primary → secondary → fallback chain for one request.
// Only rate-limiter context errors surface; generation failures degrade.
func (c *Client) run(ctx context.Context, op, langCode, system, user string, fallback func() string) (Result, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return Result{}, err
	}
	text, primaryErr := c.completer.Complete(ctx, c.primary, system, user)
	if primaryErr == nil {
		c.logger.Info("generation succeeded",
			slog.String("op", op),
			slog.String(logging.FieldLanguage, langCode),
			slog.String(logging.FieldModel, c.primary),
			slog.String(logging.FieldSource, string(SourcePrimary)))
		return Result{Text: text, Source: SourcePrimary, Model: c.primary}, nil
	}
	c.logger.Warn("primary model failed, retrying with secondary",
		slog.String("op", op),
		slog.String(logging.FieldLanguage, langCode),
		slog.String(logging.FieldModel, c.primary),
		logging.Error(primaryErr))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := c.limiter.wait(ctx); err != nil {
		return Result{}, err
	}
	text, secondaryErr := c.completer.Complete(ctx, c.secondary, system, user)
	if secondaryErr == nil {
		c.logger.Info("generation succeeded",
			slog.String("op", op),
			slog.String(logging.FieldLanguage, langCode),
			slog.String(logging.FieldModel, c.secondary),
			slog.String(logging.FieldSource, string(SourceSecondary)))
		return Result{Text: text, Source: SourceSecondary, Model: c.secondary}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c.logger.Error("both models failed, using template fallback",
		slog.String("op", op),
		slog.String(logging.FieldLanguage, langCode),
		logging.Error(secondaryErr))
	return Result{Text: fallback(), Source: SourceFallback}, nil
}
