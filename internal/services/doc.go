// Package services defines the shared error vocabulary for external
// integrations and workflow components.
//
// Errors are tagged with sentinel markers so callers can classify failures
// with errors.Is without parsing messages: operator-correctable validation
// problems, configuration gaps, contract violations, and transient external
// failures all travel through the same Wrap helper.
package services
