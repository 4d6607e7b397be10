// Package worker processes queued itinerary generation jobs.
package worker

import "time"

// GenerationConfig holds tuning for the generation job processor.
type GenerationConfig struct {
	// Timeout bounds a single generation attempt end to end, including
	// the upstream call and the save.
	Timeout time.Duration

	// MaxRetries is how many times a failed generation is retried within
	// one message delivery before it is nacked back to the queue.
	MaxRetries uint64

	// RetryInterval is the initial backoff between attempts.
	RetryInterval time.Duration
}

// DefaultGenerationConfig returns the default processor tuning.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Timeout:       2 * time.Minute,
		MaxRetries:    2,
		RetryInterval: 5 * time.Second,
	}
}
