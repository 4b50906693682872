// Package book builds the in-memory topic graph of a wiki book.
//
// Topics live in arenas (one for hierarchical topics, one for special pages) and
// refer to each other by index: parent, children, and the previous/next links of
// the flattened reading order. The graph is built in two phases. All topics are
// loaded first, in manifest pre-order, then a linking pass resolves the
// path-valued parent and child references into indices. Once Build returns, the
// graph is read-only and safe for concurrent readers.
package book
