package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"swap_go/internal/domain"
	"swap_go/internal/infra"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const (
	maxRetries   = 10
	readTimeout  = 60 * time.Second
	maxSubscribe = 50
)

// tickerMessage represents a streaming price observation
type tickerMessage struct {
	Type      string  `json:"type"` // ticker
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"` // Unix milliseconds
}

// Worker maintains a WebSocket subscription for streaming token prices
// and delivers observations into the swap service inbox. Delivery is
// drop-on-full: a slow consumer loses ticks, never blocks the socket.
type Worker struct {
	wsURL     string
	symbols   []string
	inbox     chan<- []domain.TokenPrice
	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

var _ domain.PriceStreamWorker = (*Worker)(nil)

// NewWorker creates a new streaming price worker
func NewWorker(wsURL string, symbols []string, inbox chan<- []domain.TokenPrice) *Worker {
	return &Worker{
		wsURL:   wsURL,
		symbols: symbols,
		inbox:   inbox,
	}
}

// Connect starts the WebSocket connection
func (w *Worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *Worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Price stream connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			delay := infra.CalculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := make(http.Header)

	conn, _, err := dialer.DialContext(ctx, w.wsURL, header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()
	infra.GlobalMetrics.IncrementConnections()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	slog.Info("Price stream connected", slog.Int("subs", len(w.symbols)))
	return nil
}

func (w *Worker) subscribe() error {
	symbols := w.symbols
	if len(symbols) > maxSubscribe {
		symbols = symbols[:maxSubscribe]
	}

	msg := map[string]interface{}{
		"op":      "subscribe",
		"channel": "ticker",
		"symbols": symbols,
	}
	b, _ := json.Marshal(msg)
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *Worker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *Worker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.handleMessage(msg)
	}
}

func (w *Worker) handleMessage(msg []byte) {
	var tick tickerMessage
	if json.Unmarshal(msg, &tick) != nil || tick.Type != "ticker" || tick.Symbol == "" {
		return
	}

	update := []domain.TokenPrice{{
		Symbol:     tick.Symbol,
		Price:      decimal.NewFromFloat(tick.Price),
		ObservedAt: time.UnixMilli(tick.Timestamp),
	}}

	select {
	case w.inbox <- update:
	default: // DROP
	}
}

func (w *Worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
		infra.GlobalMetrics.DecrementConnections()
	}
	w.connected = false
}

// Disconnect stops the worker and closes the connection
func (w *Worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}

// IsConnected returns whether the worker currently holds a connection
func (w *Worker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}
