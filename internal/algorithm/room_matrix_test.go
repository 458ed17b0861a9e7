package algorithm

import "testing"

func TestRoomMatrix_Build(t *testing.T) {
	rm, err := NewRoomMatrixBuilder().PushRoom(2).PushRoom(1).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if rm.RoomCount() != 2 {
		t.Errorf("RoomCount = %d, want 2", rm.RoomCount())
	}
	if rm.SpanCount() != 2 {
		t.Errorf("SpanCount = %d, want 2", rm.SpanCount())
	}
	if len(rm.Blocks()) != 3 {
		t.Fatalf("Blocks() len = %d, want 3", len(rm.Blocks()))
	}

	// Row-major: span 0 has room0's block then room1's block; span 1 has
	// only room0's block (room1 has just 1 block, confined to span 0).
	blocks := rm.Blocks()
	if rm.BlockSpan(blocks[0]) != 0 || rm.BlockRoom(blocks[0]) != 0 {
		t.Errorf("blocks[0] should be room0/span0")
	}
	if rm.BlockSpan(blocks[1]) != 0 || rm.BlockRoom(blocks[1]) != 1 {
		t.Errorf("blocks[1] should be room1/span0")
	}
	if rm.BlockSpan(blocks[2]) != 1 || rm.BlockRoom(blocks[2]) != 0 {
		t.Errorf("blocks[2] should be room0/span1")
	}

	if len(rm.Span(0)) != 2 {
		t.Errorf("span 0 should have 2 blocks, got %d", len(rm.Span(0)))
	}
	if len(rm.Span(1)) != 1 {
		t.Errorf("span 1 should have 1 block, got %d", len(rm.Span(1)))
	}
	if len(rm.Room(0)) != 2 {
		t.Errorf("room 0 should have 2 blocks, got %d", len(rm.Room(0)))
	}
	if len(rm.Room(1)) != 1 {
		t.Errorf("room 1 should have 1 block, got %d", len(rm.Room(1)))
	}
}

func TestRoomMatrix_BlocksListedOnce(t *testing.T) {
	rm, err := NewRoomMatrixBuilder().PushRoom(2).PushRoom(2).PushRoom(2).PushRoom(2).PushRoom(2).PushRoom(1).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rm.Blocks()) != 11 {
		t.Fatalf("Blocks() len = %d, want 11", len(rm.Blocks()))
	}
	seen := map[BlockId]bool{}
	for _, b := range rm.Blocks() {
		if seen[b] {
			t.Fatalf("block %v listed twice", b)
		}
		seen[b] = true
	}
}
