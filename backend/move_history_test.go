package main

import "testing"

func TestMoveHistoryDropsOldestBeyondLimit(t *testing.T) {
	history := MoveHistory{}
	history.SetLimit(3)
	for i := 0; i < 5; i++ {
		history.Push(HistoryEntry{PlayerID: i})
	}
	if history.Size() != 3 {
		t.Fatalf("expected the history to hold 3 entries, got %d", history.Size())
	}
	entries := history.All()
	if entries[0].PlayerID != 2 || entries[2].PlayerID != 4 {
		t.Fatalf("expected the oldest entries to be dropped, got %+v", entries)
	}
	history.Clear()
	if history.Size() != 0 {
		t.Fatalf("expected an empty history after clear")
	}
}

func TestMoveHistoryKeepsEverythingWithoutALimit(t *testing.T) {
	history := MoveHistory{}
	for i := 0; i < 700; i++ {
		history.Push(HistoryEntry{PlayerID: i})
	}
	if history.Size() != 700 {
		t.Fatalf("expected no cap without a limit, got %d", history.Size())
	}
}
