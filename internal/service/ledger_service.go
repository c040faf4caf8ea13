package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"swap_go/internal/domain"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLedgerKey is the fixed store key the ledger persists under.
const DefaultLedgerKey = "swap:ledger:v1"

// SwapReceipt is the confirmation artifact for an applied swap. It is
// only issued after the updated ledger has durably persisted.
type SwapReceipt struct {
	ID         string          `json:"id"`
	TxHash     string          `json:"tx_hash"` // Simulated, not an on-chain hash
	FromSymbol string          `json:"from_symbol"`
	AmountIn   decimal.Decimal `json:"amount_in"`
	ToSymbol   string          `json:"to_symbol"`
	AmountOut  decimal.Decimal `json:"amount_out"`
	AppliedAt  time.Time       `json:"applied_at"`
}

// LedgerService owns the persistent balance ledger. Apply operations
// are a critical section: the read-modify-write against the store runs
// under a mutex so concurrent swaps cannot lose updates.
type LedgerService struct {
	store domain.KeyValueStore
	key   string
	mu    sync.Mutex
}

// NewLedgerService creates a ledger service over the given store.
func NewLedgerService(store domain.KeyValueStore, key string) *LedgerService {
	if key == "" {
		key = DefaultLedgerKey
	}
	return &LedgerService{store: store, key: key}
}

// Balances returns the current ledger, seeding the default set if the
// store has never been written.
func (s *LedgerService) Balances(ctx context.Context) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// ApplySwap debits fromSymbol, credits toSymbol, persists the updated
// ledger, and returns it with a receipt. Store failures surface as
// errors; no receipt is issued unless the write completed.
func (s *LedgerService) ApplySwap(ctx context.Context, fromSymbol string, amountIn decimal.Decimal, toSymbol string, amountOut decimal.Decimal) (domain.Ledger, *SwapReceipt, error) {
	if fromSymbol == "" || toSymbol == "" {
		return nil, nil, domain.ErrInvalidSymbol
	}
	if amountIn.IsNegative() || amountOut.IsNegative() {
		return nil, nil, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	next := ledger.ApplySwap(fromSymbol, amountIn, toSymbol, amountOut)
	if err := s.persist(ctx, next); err != nil {
		return nil, nil, err
	}

	receipt := &SwapReceipt{
		ID:         uuid.NewString(),
		TxHash:     newTxHash(),
		FromSymbol: fromSymbol,
		AmountIn:   amountIn,
		ToSymbol:   toSymbol,
		AmountOut:  amountOut,
		AppliedAt:  time.Now().UTC(),
	}

	slog.Info("Swap applied",
		slog.String("from", fromSymbol),
		slog.String("to", toSymbol),
		slog.String("amount_in", amountIn.String()),
		slog.String("amount_out", amountOut.String()),
		slog.String("tx_hash", receipt.TxHash),
	)

	return next, receipt, nil
}

// load reads the ledger from the store. An empty store is seeded with
// the defaults exactly once; that reseed is logged loudly since it can
// otherwise mask data loss. Read failures are returned, never papered
// over with a reseed.
func (s *LedgerService) load(ctx context.Context) (domain.Ledger, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, domain.NewStoreError("get", s.key, err)
	}

	if !ok {
		ledger := domain.DefaultLedger()
		if err := s.persist(ctx, ledger); err != nil {
			return nil, err
		}
		slog.Warn("Ledger store empty, seeded default balances", slog.String("key", s.key))
		return ledger, nil
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, &domain.StoreError{Op: "decode", Key: s.key, Err: err, Retriable: false}
	}
	return ledger, nil
}

func (s *LedgerService) persist(ctx context.Context, ledger domain.Ledger) error {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return &domain.StoreError{Op: "encode", Key: s.key, Err: err, Retriable: false}
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return domain.NewStoreError("set", s.key, err)
	}
	return nil
}

// newTxHash generates a simulated 32-byte transaction hash.
func newTxHash() string {
	var buf [32]byte
	rand.Read(buf[:])
	return "0x" + hex.EncodeToString(buf[:])
}
