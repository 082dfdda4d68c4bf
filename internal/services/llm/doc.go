// Package llm wraps the chat-completion HTTP API used for content
// generation.
//
// The client issues exactly one attempt per call against a caller-chosen
// model; the primary/secondary/fallback policy lives in the generate
// package, which owns the degradation chain. Every request is bounded by
// the configured timeout and honors context cancellation.
package llm
