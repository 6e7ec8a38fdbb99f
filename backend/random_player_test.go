package main

import "testing"

func TestRandomPlayerRetriesUntilALegalMove(t *testing.T) {
	board := quarteredBoard(t)
	snapshot := board.Clone()
	script := &scriptedIntN{values: []int{
		0, 0, 0, 7, // pass drawn: discarded
		0, 0, 0, 0, // smash at the bottom level: illegal
		1, 0, 0, 6, // paint the top-right cell
	}}
	player := NewRandomPlayer(1, NewBlobGoal(PacificPoint), script)

	if _, ok := player.GenerateMove(board); ok {
		t.Fatalf("expected no move before the player is signalled")
	}
	player.Signal()
	move, ok := player.GenerateMove(board)
	if !ok {
		t.Fatalf("expected the player to find a move")
	}
	if move.Action.Kind != ActionPaint {
		t.Fatalf("expected a paint move, got %v", move.Action.Kind)
	}
	if move.Target != board.children[0] {
		t.Fatalf("expected the move to target the live board's top-right block")
	}
	if !board.Equal(snapshot) {
		t.Fatalf("expected move generation to leave the board untouched")
	}
}

func TestRandomPlayerNeedsANewSignalEachTurn(t *testing.T) {
	board := quarteredBoard(t)
	script := &scriptedIntN{values: []int{1, 0, 0, 6}}
	player := NewRandomPlayer(0, NewBlobGoal(PacificPoint), script)
	player.Signal()
	if _, ok := player.GenerateMove(board); !ok {
		t.Fatalf("expected a move after the signal")
	}
	if _, ok := player.GenerateMove(board); ok {
		t.Fatalf("expected the signal to be consumed by the first move")
	}
}
