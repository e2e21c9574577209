package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/al-solutions/salesdash/internal/api/handlers"
	"github.com/al-solutions/salesdash/internal/dashboard"
)

func TestStreamHandler_StreamDashboard(t *testing.T) {
	handler := handlers.NewStreamHandler(nil)

	t.Run("should establish SSE connection", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		req := httptest.NewRequest("GET", "/api/dashboard/stream", nil)
		req = req.WithContext(ctx)
		w := httptest.NewRecorder()

		done := make(chan struct{})
		go func() {
			handler.StreamDashboard(w, req)
			close(done)
		}()

		// Wait a bit for connection to establish
		time.Sleep(100 * time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit after cancel")
		}

		result := w.Result()
		if result.Header.Get("Content-Type") != "text/event-stream" {
			t.Errorf("Expected Content-Type text/event-stream, got %s", result.Header.Get("Content-Type"))
		}
		if result.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("Expected Cache-Control no-cache, got %s", result.Header.Get("Cache-Control"))
		}
		if !strings.Contains(w.Body.String(), "event: connected") {
			t.Error("Expected initial connected event")
		}
	})

	t.Run("should receive broadcast snapshots", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		req := httptest.NewRequest("GET", "/api/dashboard/stream", nil)
		req = req.WithContext(ctx)
		w := httptest.NewRecorder()

		done := make(chan struct{})
		go func() {
			handler.StreamDashboard(w, req)
			close(done)
		}()

		// Wait for connection
		time.Sleep(100 * time.Millisecond)

		handler.BroadcastSnapshot(dashboard.Snapshot{
			StatusMessage: "",
			RowCount:      17,
		})

		// Wait for the snapshot to be written
		time.Sleep(200 * time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit after cancel")
		}

		body := w.Body.String()
		if !strings.Contains(body, "event: snapshot") {
			t.Error("Expected snapshot event in stream")
		}
		if !strings.Contains(body, `"row_count":17`) {
			t.Errorf("Expected broadcast snapshot payload in stream, got: %s", body)
		}
	})
}

func TestStreamHandler_ClientCount(t *testing.T) {
	handler := handlers.NewStreamHandler(nil)

	if count := handler.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients, got %d", count)
	}

	req := httptest.NewRequest("GET", "/api/dashboard/stream", nil)
	w := httptest.NewRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	req = req.WithContext(ctx)

	go handler.StreamDashboard(w, req)
	time.Sleep(100 * time.Millisecond)

	if count := handler.ClientCount(); count != 1 {
		t.Errorf("Expected 1 client, got %d", count)
	}

	cancel()
	time.Sleep(100 * time.Millisecond)

	if count := handler.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients after disconnect, got %d", count)
	}
}

func TestStreamHandler_CloseAll(t *testing.T) {
	handler := handlers.NewStreamHandler(nil)

	req := httptest.NewRequest("GET", "/api/dashboard/stream", nil)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamDashboard(w, req)
		close(done)
	}()
	time.Sleep(100 * time.Millisecond)

	handler.CloseAll()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after CloseAll")
	}
	if count := handler.ClientCount(); count != 0 {
		t.Errorf("Expected 0 clients after CloseAll, got %d", count)
	}
}
