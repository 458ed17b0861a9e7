// Package algorithm implements the permutation-based band-to-slot scheduler:
// sub-tree partitioning, pruning decorators, and the synchronous/asynchronous
// driver that turns a room matrix and a live-info snapshot into a stream of
// block-to-band assignments.
package algorithm

// UserId, BandId, RoomId, SpanId and BlockId are opaque, comparable tokens
// minted by a process-local registry. They are dense: the integer value is
// also the index into whatever slice a LiveInfo or RoomMatrix keeps for that
// entity, so lookups never need a map.
type UserId int
type BandId int
type RoomId int
type SpanId int
type BlockId int

// IdentifierRegistry mints dense, zero-based IDs of a single kind. It is not
// safe for concurrent use — all minting happens during construction of a
// RoomMatrix or LiveInfo, before the result is shared read-only across tasks.
type IdentifierRegistry[T ~int] struct {
	next T
}

// Mint returns the next unused identifier of this kind.
func (r *IdentifierRegistry[T]) Mint() T {
	id := r.next
	r.next++
	return id
}

// Len reports how many identifiers have been minted so far.
func (r *IdentifierRegistry[T]) Len() int {
	return int(r.next)
}
