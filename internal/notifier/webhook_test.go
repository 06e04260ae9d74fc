package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/rs/zerolog"
)

func testEvent() domain.TransitionEvent {
	return domain.TransitionEvent{
		Container: domain.ContainerSnapshot{
			Id:      "aaaabbbbccccdddd",
			Name:    "web",
			Image:   "nginx:1.27",
			Labels:  map[string]string{"coolify.projectName": "acme"},
			Created: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		},
		PreviousStatus: domain.StatusRunning,
		CurrentStatus:  domain.StatusExited,
		DetectedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifySendsExpectedPayload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.Client(), server.URL, zerolog.Nop())
	if err := n.Notify(context.Background(), testEvent()); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}

	var payload map[string]any
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload["event_type"] != "container_status_change" {
		t.Errorf("unexpected event_type %v", payload["event_type"])
	}
	if payload["previous_status"] != "RUNNING" || payload["current_status"] != "EXITED" {
		t.Errorf("unexpected statuses %v -> %v", payload["previous_status"], payload["current_status"])
	}
	if payload["timestamp"] != "2025-06-01T12:00:00Z" {
		t.Errorf("unexpected timestamp %v", payload["timestamp"])
	}

	container, ok := payload["container"].(map[string]any)
	if !ok {
		t.Fatalf("missing container object in %s", gotBody)
	}
	if container["id"] != "aaaabbbbccccdddd" || container["name"] != "web" || container["image"] != "nginx:1.27" {
		t.Errorf("unexpected container fields: %v", container)
	}
	if container["created"] != "2025-03-14T09:26:53Z" {
		t.Errorf("unexpected created %v", container["created"])
	}
	errValue, present := container["error"]
	if !present {
		t.Error("expected an explicit error field")
	}
	if errValue != nil {
		t.Errorf("expected error to be null, got %v", errValue)
	}
	labels, ok := container["labels"].(map[string]any)
	if !ok || labels["coolify.projectName"] != "acme" {
		t.Errorf("unexpected labels %v", container["labels"])
	}
}

func TestNotifyIncludesInspectError(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	event := testEvent()
	event.Container.Error = "no such container"
	event.Container.Labels = nil

	n := NewWebhookNotifier(server.Client(), server.URL, zerolog.Nop())
	if err := n.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	container := payload["container"].(map[string]any)
	if container["error"] != "no such container" {
		t.Errorf("expected error string, got %v", container["error"])
	}
	if labels, ok := container["labels"].(map[string]any); !ok || len(labels) != 0 {
		t.Errorf("expected empty labels object, got %v", container["labels"])
	}
}

func TestNotifyNon2xxReturnsStatusError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "kaboom", http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.Client(), server.URL, zerolog.Nop())
	err := n.Notify(context.Background(), testEvent())
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "kaboom") {
		t.Errorf("expected response body in the error, got %q", statusErr.Body)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("expected exactly one request and no retry, got %d", got)
	}
}

type failingDoer struct{}

func (failingDoer) Do(_ *http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestNotifyTransportError(t *testing.T) {
	n := NewWebhookNotifier(failingDoer{}, "http://coolify.internal/webhook", zerolog.Nop())
	if err := n.Notify(context.Background(), testEvent()); err == nil {
		t.Fatal("expected transport errors to surface")
	}
}

func TestNotifyAllIsolatesFailures(t *testing.T) {
	var total, failed atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		total.Add(1)
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "doomed") {
			failed.Add(1)
			http.Error(w, "rejected", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	events := make([]domain.TransitionEvent, 0, 3)
	for _, name := range []string{"first", "doomed", "last"} {
		event := testEvent()
		event.Container.Id = name + "-container-id"
		event.Container.Name = name
		events = append(events, event)
	}

	n := NewWebhookNotifier(server.Client(), server.URL, zerolog.Nop())
	n.NotifyAll(context.Background(), events)

	if got := total.Load(); got != 3 {
		t.Errorf("expected all 3 deliveries attempted, got %d", got)
	}
	if got := failed.Load(); got != 1 {
		t.Errorf("expected exactly 1 rejected delivery, got %d", got)
	}
}
