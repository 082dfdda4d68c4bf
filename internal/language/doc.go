// Package language defines the fixed registry of generation target languages.
//
// Prompt construction, the orchestrator, and the delivery CSVs all consume
// the same registry so language ordering and display names stay consistent
// end to end. Requesting a code outside the registry is a contract error at
// the caller, never a silent skip.
package language
