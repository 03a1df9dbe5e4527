package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"songbook/internal/config"
)

const userAgent = "Songbook/0.1.0"

// Event identifies a notification category so per-category config toggles
// can suppress it.
type Event string

const (
	EventProcessingCompleted Event = "processing-completed"
	EventProcessingFailed    Event = "processing-failed"
	EventProjectRelinked     Event = "project-relinked"
	EventRelinkFailed        Event = "relink-failed"
)

// Notification carries the rendered content for one event.
type Notification struct {
	Event    Event
	Title    string
	Message  string
	Tags     []string
	Priority string
}

// Service defines the notification surface exposed to the process and watch
// commands.
type Service interface {
	Publish(ctx context.Context, n Notification) error
	TestConnection(ctx context.Context) error
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

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		processEnabled: cfg.Notifications.Process,
		errorsEnabled:  cfg.Notifications.Errors,
	}
}

// ProcessingCompleted reports a finished stem processing run.
func ProcessingCompleted(songTitle string, stems int, duration time.Duration) Notification {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	return Notification{
		Event:   EventProcessingCompleted,
		Title:   "Songbook - Stems Ready",
		Message: fmt.Sprintf("✅ Stems ready: %s (%d stems in %s)", strings.TrimSpace(songTitle), stems, duration),
		Tags:    []string{"songbook", "process", "completed"},
	}
}

// ProcessingFailed reports a failed stem processing run.
func ProcessingFailed(songTitle string, err error) Notification {
	detail := "unknown"
	if err != nil {
		detail = strings.TrimSpace(err.Error())
	}
	return Notification{
		Event:    EventProcessingFailed,
		Title:    "Songbook - Error",
		Message:  fmt.Sprintf("❌ Error processing %s: %s", strings.TrimSpace(songTitle), detail),
		Tags:     []string{"songbook", "error", "alert"},
		Priority: "high",
	}
}

// ProjectRelinked reports a watcher-triggered relink.
func ProjectRelinked(songTitle string, tracks int) Notification {
	return Notification{
		Event:   EventProjectRelinked,
		Title:   "Songbook - Project Relinked",
		Message: fmt.Sprintf("🔗 Relinked: %s (%d tracks)", strings.TrimSpace(songTitle), tracks),
		Tags:    []string{"songbook", "watch", "relinked"},
	}
}

// RelinkFailed reports a watcher-triggered relink failure.
func RelinkFailed(projectPath string, err error) Notification {
	detail := "unknown"
	if err != nil {
		detail = strings.TrimSpace(err.Error())
	}
	return Notification{
		Event:    EventRelinkFailed,
		Title:    "Songbook - Error",
		Message:  fmt.Sprintf("❌ Relink failed for %s: %s", strings.TrimSpace(projectPath), detail),
		Tags:     []string{"songbook", "error", "alert"},
		Priority: "high",
	}
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	processEnabled bool
	errorsEnabled  bool
}

// Publish sends the notification unless its category is disabled in config.
func (n *ntfyService) Publish(ctx context.Context, data Notification) error {
	if n.suppressed(data.Event) {
		return nil
	}
	return n.send(ctx, data)
}

// TestConnection sends a low-priority test message regardless of category
// toggles so the user can verify the topic end to end.
func (n *ntfyService) TestConnection(ctx context.Context) error {
	return n.send(ctx, Notification{
		Title:    "Songbook - Test",
		Message:  "🧪 Notification system test",
		Tags:     []string{"songbook", "test"},
		Priority: "low",
	})
}

func (n *ntfyService) suppressed(event Event) bool {
	switch event {
	case EventProcessingCompleted, EventProjectRelinked:
		return !n.processEnabled
	case EventProcessingFailed, EventRelinkFailed:
		return !n.errorsEnabled
	default:
		return false
	}
}

func (n *ntfyService) send(ctx context.Context, data Notification) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.Message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.Title != "" {
		req.Header.Set("Title", data.Title)
	}
	if len(data.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.Tags, ","))
	}
	if data.Priority != "" && data.Priority != "default" {
		req.Header.Set("Priority", data.Priority)
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

func (noopService) Publish(context.Context, Notification) error { return nil }
func (noopService) TestConnection(context.Context) error        { return nil }
