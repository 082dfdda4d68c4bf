package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"menuforge/internal/config"
)

const userAgent = "Menuforge-Go/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifySweepStarted(ctx context.Context, itemCount, languageCount int) error
	NotifySweepCompleted(ctx context.Context, itemCount, languageCount, fallbacks int) error
	NotifyFallbackUsed(ctx context.Context, subject, langCode string) error
	NotifyNarrativeReady(ctx context.Context, venueName string) error
	NotifyPackageAssembled(ctx context.Context, venueName, plan string) error
	NotifyBackupRestored(ctx context.Context, snapshotName string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifySweepStarted(ctx context.Context, itemCount, languageCount int) error {
	data := payload{
		title:   "Menuforge - Generation Started",
		message: fmt.Sprintf("Generating descriptions for %d items across %d languages", itemCount, languageCount),
		tags:    []string{"menuforge", "generation", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifySweepCompleted(ctx context.Context, itemCount, languageCount, fallbacks int) error {
	var title, message string
	if fallbacks == 0 {
		title = "Menuforge - Generation Complete"
		message = fmt.Sprintf("Generated %d items across %d languages", itemCount, languageCount)
	} else {
		title = "Menuforge - Generation Complete (degraded)"
		message = fmt.Sprintf("Generated %d items across %d languages; %d fell back to template text", itemCount, languageCount, fallbacks)
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"menuforge", "generation", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyFallbackUsed(ctx context.Context, subject, langCode string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "content"
	}
	data := payload{
		title:   "Menuforge - Template Fallback",
		message: fmt.Sprintf("Generation degraded to template text: %s (%s)", subject, langCode),
		tags:    []string{"menuforge", "generation", "fallback"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyNarrativeReady(ctx context.Context, venueName string) error {
	venueName = strings.TrimSpace(venueName)
	data := payload{
		title:   "Menuforge - Narrative Ready",
		message: fmt.Sprintf("Narrative draft ready for review: %s", venueName),
		tags:    []string{"menuforge", "narrative", "ready"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPackageAssembled(ctx context.Context, venueName, plan string) error {
	venueName = strings.TrimSpace(venueName)
	message := fmt.Sprintf("Delivery package assembled: %s", venueName)
	if plan = strings.TrimSpace(plan); plan != "" {
		message = fmt.Sprintf("%s (plan: %s)", message, plan)
	}
	data := payload{
		title:    "Menuforge - Package Ready",
		message:  message,
		tags:     []string{"menuforge", "delivery", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBackupRestored(ctx context.Context, snapshotName string) error {
	data := payload{
		title:   "Menuforge - Session Restored",
		message: fmt.Sprintf("Session restored from snapshot %s", strings.TrimSpace(snapshotName)),
		tags:    []string{"menuforge", "backup", "restored"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Menuforge - Error",
		message:  builder.String(),
		tags:     []string{"menuforge", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Menuforge - Test",
		message:  "Notification system test",
		tags:     []string{"menuforge", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifySweepStarted(context.Context, int, int) error           { return nil }
func (noopService) NotifySweepCompleted(context.Context, int, int, int) error    { return nil }
func (noopService) NotifyFallbackUsed(context.Context, string, string) error     { return nil }
func (noopService) NotifyNarrativeReady(context.Context, string) error           { return nil }
func (noopService) NotifyPackageAssembled(context.Context, string, string) error { return nil }
func (noopService) NotifyBackupRestored(context.Context, string) error           { return nil }
func (noopService) NotifyError(context.Context, error, string) error             { return nil }
func (noopService) TestNotification(context.Context) error                       { return nil }
