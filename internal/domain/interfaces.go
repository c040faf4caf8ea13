package domain

import "context"

// KeyValueStore abstracts the persistent store behind the balance
// ledger. Get reports absence separately from failure; Set must not
// return nil unless the value durably persisted.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// PriceSource defines the contract for token price providers
type PriceSource interface {
	Start(ctx context.Context) error
	Stop()
}

// PriceStreamWorker defines the interface for streaming price connectors
type PriceStreamWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}
