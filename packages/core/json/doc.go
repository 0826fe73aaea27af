// Package json is reqvault's own JSON codec: a byte-cursor lexer, a
// recursive-descent parser with a bounded depth, an insertion-ordered
// value tree and a deterministic serializer.
//
// Every artifact reqvault persists (collections, environments, history,
// configuration) goes through this package, so the codec guarantees
// structure-faithful round trips: object key order, array order and the
// integral-vs-fractional shape of numbers all survive a
// parse → mutate → serialize cycle.
package json
