// Package detect classifies user-agent strings into bot, OS, client and
// device attributes by cascading an ordered rule corpus: a literal
// pre-filter narrows the candidate rules, a backtracking pattern matcher
// extracts capture groups, and template resolution normalizes the output.
//
// The rule database is built once with Load from externally parsed records
// (see the ruleload package) and is then shared read-only by any number of
// goroutines; classification itself never fails and never allocates shared
// state.
package detect
