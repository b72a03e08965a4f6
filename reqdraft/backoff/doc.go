// Package backoff provides retry delay helpers with exponential growth and
// jitter.
//
// The HTTP catalog source uses ExponentialWithJitter between transport
// retries and SleepWithContext to wait while respecting cancellation.
package backoff
