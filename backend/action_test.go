package main

import "testing"

func TestActionPenalties(t *testing.T) {
	want := map[ActionKind]int{
		ActionSmash:                  3,
		ActionSwapHorizontal:         0,
		ActionSwapVertical:           0,
		ActionRotateClockwise:        0,
		ActionRotateCounterClockwise: 0,
		ActionCombine:                1,
		ActionPaint:                  1,
		ActionPass:                   0,
	}
	for kind, penalty := range want {
		if got := ActionFor(kind); got.Kind != kind || got.Penalty != penalty {
			t.Fatalf("expected %v to cost %d, got %+v", kind, penalty, got)
		}
	}
}

func TestActionNamesRoundTrip(t *testing.T) {
	for kind := ActionSmash; kind <= ActionPass; kind++ {
		parsed, err := ActionKindFromString(kind.String())
		if err != nil {
			t.Fatalf("expected %q to parse: %v", kind.String(), err)
		}
		if parsed != kind {
			t.Fatalf("expected %v, got %v", kind, parsed)
		}
	}
	if _, err := ActionKindFromString("teleport"); err == nil {
		t.Fatalf("expected an unknown action to be rejected")
	}
}

func TestApplyActionDispatch(t *testing.T) {
	board := quarteredBoard(t)
	if !applyAction(board, ActionFor(ActionSwapHorizontal), Colour{}) {
		t.Fatalf("expected the swap to apply")
	}
	if !applyAction(board, ActionFor(ActionRotateClockwise), Colour{}) {
		t.Fatalf("expected the rotation to apply")
	}
	if applyAction(board.children[0], ActionFor(ActionRotateClockwise), Colour{}) {
		t.Fatalf("expected rotating a leaf to fail")
	}
	if !applyAction(board.children[0], ActionFor(ActionPaint), OldOlive) {
		t.Fatalf("expected the paint to apply")
	}
	if !applyAction(board, ActionFor(ActionPass), Colour{}) {
		t.Fatalf("expected pass to always apply")
	}
}
