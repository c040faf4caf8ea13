package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swap_go/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

func TestWorker_ReceivesTicks(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Wait for the subscribe message before publishing
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}

		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ticker","symbol":"ETH","price":1650.5,"timestamp":1693293052000}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`))
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	inbox := make(chan []domain.TokenPrice, 10)
	worker := NewWorker(wsURL, []string{"ETH"}, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := worker.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer worker.Disconnect()

	select {
	case update := <-inbox:
		if len(update) != 1 {
			t.Fatalf("Expected 1 tick, got %d", len(update))
		}
		tick := update[0]
		if tick.Symbol != "ETH" {
			t.Errorf("Expected ETH, got %s", tick.Symbol)
		}
		if !tick.Price.Equal(decimal.NewFromFloat(1650.5)) {
			t.Errorf("Expected price 1650.5, got %v", tick.Price)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No tick received")
	}

	// The heartbeat must not produce a second update
	select {
	case update := <-inbox:
		t.Errorf("Unexpected update from non-ticker message: %+v", update)
	case <-time.After(200 * time.Millisecond):
	}
}
