// Package engine holds the helpers shared by every machine factory:
// greedy longest-match search, state lookups, symbol normalisation,
// typed metadata decoding and the building blocks of kind conversion.
package engine
