package infra

import "time"

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// CalculateBackoff returns the exponential backoff delay for a retry
// attempt, capped at one minute.
func CalculateBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	delay := backoffBase << uint(retryCount)
	if delay <= 0 || delay > backoffMax {
		return backoffMax
	}
	return delay
}
