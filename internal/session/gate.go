package session

import "strings"

// stepPredicates lists, per step, the conditions that must all hold before
// the step may be entered. Step one is always reachable.
var stepPredicates = map[int][]func(rec *Record) bool{
	1: {},
	2: {func(rec *Record) bool { return strings.TrimSpace(rec.Venue.Name) != "" }},
	3: {func(rec *Record) bool { return rec.NarrativeApproved }},
	4: {func(rec *Record) bool { return len(rec.Items) > 0 }},
	5: {func(rec *Record) bool { return len(rec.Items) > 0 }},
	6: {func(rec *Record) bool { return len(rec.Items) > 0 }},
}

// CanEnter reports whether the workflow may transition to the target step.
// Only the predicates tied to that step are consulted; global validation
// errors do not block. Pure: never mutates the record.
func CanEnter(rec *Record, targetStep int) bool {
	predicates, ok := stepPredicates[targetStep]
	if !ok {
		return false
	}
	for _, predicate := range predicates {
		if !predicate(rec) {
			return false
		}
	}
	return true
}

// MaxEnterableStep returns the highest step whose gate currently holds.
func MaxEnterableStep(rec *Record) int {
	max := FirstStep
	for step := FirstStep; step <= LastStep; step++ {
		if CanEnter(rec, step) {
			max = step
		}
	}
	return max
}
