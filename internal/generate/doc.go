// Package generate drives multilingual content generation for a workflow
// record.
//
// The Client owns the degradation chain for a single (task, language) pair:
// it paces every outbound request through a shared minimum-interval rate
// limiter, tries the primary model, retries once with the secondary model on
// any failure, and finally synthesizes a deterministic template from the
// task's structured fields. Generation failure is absorbed, never
// propagated; results carry a Source tag so callers and tests can tell
// degraded output from the real thing.
//
// The Orchestrator fans one task out across the requested languages
// sequentially, persisting each language into the record store the moment
// it completes so a crash mid-sweep leaves valid partial progress.
package generate
