package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"menuforge/internal/session"
)

type scriptedCompleter struct {
	calls  []string
	handle func(model, system, user string) (string, error)
}

func (s *scriptedCompleter) Complete(_ context.Context, model, system, user string) (string, error) {
	s.calls = append(s.calls, model)
	return s.handle(model, system, user)
}

func newTestClient(completer Completer, extra ...Option) *Client {
	opts := Options{PrimaryModel: "model-a", SecondaryModel: "model-b"}
	return NewClient(completer, opts, extra...)
}

func TestDescribePrimarySucceeds(t *testing.T) {
	completer := &scriptedCompleter{handle: func(model, _, user string) (string, error) {
		if !strings.Contains(user, "Tonkotsu Ramen") {
			t.Fatalf("item name missing from prompt: %q", user)
		}
		return "rich pork broth", nil
	}}
	client := newTestClient(completer)

	task := ItemTask{Item: session.Item{ID: "i1", Name: "Tonkotsu Ramen"}}
	result, err := client.Describe(context.Background(), task, "en")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if result.Source != SourcePrimary || result.Model != "model-a" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(completer.calls) != 1 {
		t.Fatalf("expected single attempt, got %v", completer.calls)
	}
}

func TestDescribeFallsBackToSecondary(t *testing.T) {
	completer := &scriptedCompleter{handle: func(model, _, _ string) (string, error) {
		if model == "model-a" {
			return "", errors.New("overloaded")
		}
		return "secondary text", nil
	}}
	client := newTestClient(completer)

	result, err := client.Describe(context.Background(), ItemTask{Item: session.Item{Name: "Gyoza"}}, "en")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if result.Source != SourceSecondary || result.Text != "secondary text" {
		t.Fatalf("unexpected result %+v", result)
	}
	want := []string{"model-a", "model-b"}
	for i, model := range want {
		if completer.calls[i] != model {
			t.Fatalf("attempt order %v, want %v", completer.calls, want)
		}
	}
}

func TestDescribeTemplateFallbackCarriesItemName(t *testing.T) {
	completer := &scriptedCompleter{handle: func(string, string, string) (string, error) {
		return "", errors.New("down")
	}}
	client := newTestClient(completer)

	result, err := client.Describe(context.Background(), ItemTask{Item: session.Item{Name: "Karaage"}}, "th")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !result.Fallback() {
		t.Fatalf("expected fallback, got %+v", result)
	}
	if !strings.Contains(result.Text, "Karaage") {
		t.Fatalf("fallback must embed the item name, got %q", result.Text)
	}
	if len(completer.calls) != 2 {
		t.Fatalf("expected both models attempted, got %v", completer.calls)
	}
}

func TestDescribeRejectsUnknownLanguage(t *testing.T) {
	completer := &scriptedCompleter{handle: func(string, string, string) (string, error) {
		t.Fatal("no request should be issued")
		return "", nil
	}}
	client := newTestClient(completer)
	if _, err := client.Describe(context.Background(), ItemTask{}, "xx"); err == nil {
		t.Fatal("expected unsupported language error")
	}
}

func TestRateLimiterSpacesRequests(t *testing.T) {
	current := time.Unix(1000, 0)
	var slept []time.Duration
	completer := &scriptedCompleter{handle: func(string, string, string) (string, error) {
		return "text", nil
	}}
	client := NewClient(completer,
		Options{PrimaryModel: "model-a", SecondaryModel: "model-b", RequestInterval: time.Second},
		WithClock(func() time.Time { return current }),
		WithSleep(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			current = current.Add(d)
			return nil
		}))

	task := ItemTask{Item: session.Item{Name: "Soba"}}
	if _, err := client.Describe(context.Background(), task, "en"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("first request must not wait, slept %v", slept)
	}
	if _, err := client.Describe(context.Background(), task, "ko"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("second request must wait the full interval, slept %v", slept)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	completer := &scriptedCompleter{handle: func(model, _, _ string) (string, error) {
		cancel()
		return "", errors.New("network reset")
	}}
	client := newTestClient(completer)

	_, err := client.Describe(ctx, ItemTask{Item: session.Item{Name: "Udon"}}, "en")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if len(completer.calls) != 1 {
		t.Fatalf("secondary must not run after cancel, calls %v", completer.calls)
	}
}

func TestTranslateFallbackTruncatesSource(t *testing.T) {
	completer := &scriptedCompleter{handle: func(string, string, string) (string, error) {
		return "", errors.New("down")
	}}
	client := newTestClient(completer)

	long := strings.Repeat("あ", 80)
	result, err := client.Translate(context.Background(), long, "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !result.Fallback() {
		t.Fatalf("expected fallback, got %+v", result)
	}
	if !strings.Contains(result.Text, "French") {
		t.Fatalf("fallback must name the target language, got %q", result.Text)
	}
	if !strings.Contains(result.Text, strings.Repeat("あ", 50)+"...") {
		t.Fatalf("fallback must carry a 50-rune excerpt, got %q", result.Text)
	}
}
