package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// StoreError represents a persistent-store failure during a ledger
// operation. Reads and writes that fail must surface to the caller;
// the ledger never reports success on a write that did not persist.
type StoreError struct {
	Op        string // Operation that failed (e.g., "get", "set")
	Key       string // Store key involved
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *StoreError) Error() string {
	return "store " + e.Op + " [" + e.Key + "]: " + e.Err.Error()
}

func (e *StoreError) IsRetriable() bool {
	return e.Retriable
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a retriable store error
func NewStoreError(op, key string, err error) *StoreError {
	return &StoreError{Op: op, Key: key, Err: err, Retriable: true}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrStoreUnavailable is returned when the persistent store cannot be
	// read or written. Usually retriable.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidAmount is returned when an amount string does not parse
	// as an unsigned decimal. Not retriable.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidSymbol is returned when a symbol is empty or malformed. Not retriable.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
