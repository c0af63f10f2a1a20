package handler_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hireflowhq/hireflow-api/internal/handler"
	"github.com/hireflowhq/hireflow-api/internal/service"
)

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}

func TestFeedHandler_StreamsEvents(t *testing.T) {
	logger := zerolog.New(io.Discard)
	feed := service.NewEventFeed(nil, "", logger)
	feed.Start(context.Background())

	app := fiber.New()
	handler.NewFeedHandler(feed, logger).Register(app.Group("/ws"))

	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws/feed"
	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}
	conn, resp, err := dialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// Give the handler a moment to register its feed subscription.
	time.Sleep(50 * time.Millisecond)

	feed.Publish(context.Background(), service.Event{
		Type:          service.EventInterviewScheduled,
		ReferenceName: "HR-INT-00001",
		Message:       "Technical Round scheduled",
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event service.Event
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, service.EventInterviewScheduled, event.Type)
	require.Equal(t, "HR-INT-00001", event.ReferenceName)
}

func TestFeedHandler_RejectsPlainHTTP(t *testing.T) {
	logger := zerolog.New(io.Discard)
	feed := service.NewEventFeed(nil, "", logger)

	app := fiber.New()
	handler.NewFeedHandler(feed, logger).Register(app.Group("/ws"))

	req, err := http.NewRequest(http.MethodGet, "/ws/feed", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
