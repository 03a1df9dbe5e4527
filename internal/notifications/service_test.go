package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"songbook/internal/notifications"
	"songbook/internal/testsupport"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Notifications.NtfyTopic = ""

	svc := notifications.NewService(cfg)
	n := notifications.ProcessingCompleted("River Demo", 3, time.Minute)
	if err := svc.Publish(context.Background(), n); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.TestConnection(context.Background()); err != nil {
		t.Fatalf("expected noop test connection to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsNotifications(t *testing.T) {
	tests := []struct {
		name           string
		build          func() notifications.Notification
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "processing completed",
			build: func() notifications.Notification {
				return notifications.ProcessingCompleted("River Demo", 3, 42*time.Second)
			},
			expectTitle:   "Songbook - Stems Ready",
			expectMessage: "✅ Stems ready: River Demo (3 stems in 42s)",
			expectTags:    "songbook,process,completed",
		},
		{
			name: "processing failed",
			build: func() notifications.Notification {
				return notifications.ProcessingFailed("River Demo", errors.New("ffmpeg exploded"))
			},
			expectTitle:    "Songbook - Error",
			expectMessage:  "❌ Error processing River Demo: ffmpeg exploded",
			expectTags:     "songbook,error,alert",
			expectPriority: "high",
		},
		{
			name: "project relinked",
			build: func() notifications.Notification {
				return notifications.ProjectRelinked("River Demo", 4)
			},
			expectTitle:   "Songbook - Project Relinked",
			expectMessage: "🔗 Relinked: River Demo (4 tracks)",
			expectTags:    "songbook,watch,relinked",
		},
		{
			name: "relink failed",
			build: func() notifications.Notification {
				return notifications.RelinkFailed("/projects/river.rpp", errors.New("parse error"))
			},
			expectTitle:    "Songbook - Error",
			expectMessage:  "❌ Relink failed for /projects/river.rpp: parse error",
			expectTags:     "songbook,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
			svc := notifications.NewService(cfg)
			if err := svc.Publish(context.Background(), tc.build()); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceSuppressesDisabledCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed notification: %s", r.Header.Get("Title"))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	cfg.Notifications.Process = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(cfg)
	suppressed := []notifications.Notification{
		notifications.ProcessingCompleted("River Demo", 3, time.Minute),
		notifications.ProcessingFailed("River Demo", errors.New("boom")),
		notifications.ProjectRelinked("River Demo", 4),
		notifications.RelinkFailed("/projects/river.rpp", errors.New("boom")),
	}
	for _, n := range suppressed {
		if err := svc.Publish(context.Background(), n); err != nil {
			t.Fatalf("expected no error for suppressed %s, got %v", n.Event, err)
		}
	}
}

func TestTestConnectionBypassesSuppression(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if priority := r.Header.Get("Priority"); priority != "low" {
			t.Fatalf("expected low priority test message, got %q", priority)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	cfg.Notifications.Process = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(cfg)
	if err := svc.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection returned error: %v", err)
	}
	if !called {
		t.Fatal("expected test notification to reach the server")
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("topic locked"))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	svc := notifications.NewService(cfg)

	err := svc.TestConnection(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "topic locked") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}
