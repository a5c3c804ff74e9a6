// Package app runs match commands end to end: it replays a match journal
// into state, asks the match decider for a decision, appends accepted events
// and folds them back into the returned state.
package app
