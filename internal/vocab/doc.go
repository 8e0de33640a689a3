// Package vocab implements the recommendation and analytics engine:
// the reference corpus lookup, the practice-word recommender, and the
// vocabulary growth aggregator.
//
// Every function here is pure. Callers pass a snapshot of the child and a
// read-only corpus; nothing is persisted or logged.
package vocab
