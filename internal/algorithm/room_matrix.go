package algorithm

import "fmt"

// RoomMatrix describes the 2-D (room x span) grid of schedulable blocks. It
// is built once via RoomMatrixBuilder and is read-only afterward, so it is
// safe to share across goroutines.
//
// Invariants: room order is insertion order; a room with n blocks occupies
// spans [0, n) with no holes; the span count equals the largest n across all
// rooms; blocks() lists every block exactly once, in row-major order (span
// outermost, room innermost) — this is the order the pruning decorators walk.
type RoomMatrix struct {
	roomBlockCounts []int
	spanCount       int

	blocks     []BlockId   // row-major: span outermost, room innermost
	blockRoom  []RoomId    // indexed by BlockId
	blockSpan  []SpanId    // indexed by BlockId
	perSpan    [][]BlockId // perSpan[span] = blocks in that span, room order
	perRoom    [][]BlockId // perRoom[room] = blocks in that room, span order
}

// RoomMatrixBuilder accumulates rooms before producing an immutable RoomMatrix.
type RoomMatrixBuilder struct {
	blockCounts []int
}

// NewRoomMatrixBuilder returns an empty builder.
func NewRoomMatrixBuilder() *RoomMatrixBuilder {
	return &RoomMatrixBuilder{}
}

// PushRoom appends a room with n consecutive blocks starting at span 0.
// n must be non-negative; a zero-block room is legal (it contributes no
// blocks but still consumes a RoomId and column in the matrix).
func (b *RoomMatrixBuilder) PushRoom(n int) *RoomMatrixBuilder {
	b.blockCounts = append(b.blockCounts, n)
	return b
}

// Build finalizes the matrix, minting RoomId/SpanId/BlockId values and
// caching the per-span and per-room views.
func (b *RoomMatrixBuilder) Build() (*RoomMatrix, error) {
	for _, n := range b.blockCounts {
		if n < 0 {
			return nil, fmt.Errorf("algorithm: room block count must be >= 0, got %d", n)
		}
	}

	spanCount := 0
	for _, n := range b.blockCounts {
		if n > spanCount {
			spanCount = n
		}
	}

	rm := &RoomMatrix{
		roomBlockCounts: append([]int(nil), b.blockCounts...),
		spanCount:       spanCount,
		perSpan:         make([][]BlockId, spanCount),
		perRoom:         make([][]BlockId, len(b.blockCounts)),
	}

	var roomReg IdentifierRegistry[RoomId]
	roomIds := make([]RoomId, len(b.blockCounts))
	for i := range b.blockCounts {
		roomIds[i] = roomReg.Mint()
	}

	var spanReg IdentifierRegistry[SpanId]
	spanIds := make([]SpanId, spanCount)
	for i := range spanIds {
		spanIds[i] = spanReg.Mint()
	}

	var blockReg IdentifierRegistry[BlockId]
	for span := 0; span < spanCount; span++ {
		for room, n := range b.blockCounts {
			if span >= n {
				continue
			}
			id := blockReg.Mint()

			rm.blocks = append(rm.blocks, id)
			rm.blockRoom = append(rm.blockRoom, roomIds[room])
			rm.blockSpan = append(rm.blockSpan, spanIds[span])
			rm.perSpan[span] = append(rm.perSpan[span], id)
			rm.perRoom[room] = append(rm.perRoom[room], id)
		}
	}

	return rm, nil
}

// Blocks returns every block exactly once, in row-major (span, then room)
// order — the order the enumeration and pruning decorators iterate over.
func (m *RoomMatrix) Blocks() []BlockId {
	return m.blocks
}

// RoomCount returns the number of rooms pushed to the builder.
func (m *RoomMatrix) RoomCount() int {
	return len(m.roomBlockCounts)
}

// SpanCount returns the number of spans (the largest per-room block count).
func (m *RoomMatrix) SpanCount() int {
	return m.spanCount
}

// BlockRoom returns the room a block belongs to.
func (m *RoomMatrix) BlockRoom(id BlockId) RoomId {
	return m.blockRoom[id]
}

// BlockSpan returns the span a block belongs to.
func (m *RoomMatrix) BlockSpan(id BlockId) SpanId {
	return m.blockSpan[id]
}

// Span returns the blocks occupying the given span, in room order.
func (m *RoomMatrix) Span(id SpanId) []BlockId {
	return m.perSpan[id]
}

// Room returns the blocks occupying the given room, in span order.
func (m *RoomMatrix) Room(id RoomId) []BlockId {
	return m.perRoom[id]
}
