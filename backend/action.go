package main

import "fmt"

type ActionKind int

const (
	ActionSmash ActionKind = iota
	ActionSwapHorizontal
	ActionSwapVertical
	ActionRotateClockwise
	ActionRotateCounterClockwise
	ActionCombine
	ActionPaint
	ActionPass
)

// actionTable is ordered so that a prefix of it is a sampling domain:
// the first 5 entries make sense at any depth, Combine only one level
// above the bottom, Paint only at the bottom, and Pass is last.
var actionTable = [...]Action{
	{Kind: ActionSmash, Penalty: 3},
	{Kind: ActionSwapHorizontal},
	{Kind: ActionSwapVertical},
	{Kind: ActionRotateClockwise},
	{Kind: ActionRotateCounterClockwise},
	{Kind: ActionCombine, Penalty: 1},
	{Kind: ActionPaint, Penalty: 1},
	{Kind: ActionPass},
}

const (
	structuralActionCount = 5
	combinableActionCount = 6
	paintableActionCount  = 7
)

type Action struct {
	Kind    ActionKind
	Penalty int
}

func ActionFor(kind ActionKind) Action {
	return actionTable[kind]
}

func PassAction() Action {
	return actionTable[ActionPass]
}

// Move is a fully resolved move: an action bound to the block of the live
// board it mutates.
type Move struct {
	Action Action
	Target *Block
}

// MoveRequest is a move as submitted over the API, before its coordinates
// are resolved against a board.
type MoveRequest struct {
	Kind  ActionKind
	X     int
	Y     int
	Level int
}

// applyAction runs an action against a block. Paint always uses the acting
// player's goal colour, and Pass is a legal no-op.
func applyAction(target *Block, action Action, paint Colour) bool {
	switch action.Kind {
	case ActionSmash:
		return target.Smash()
	case ActionSwapHorizontal:
		return target.Swap(0)
	case ActionSwapVertical:
		return target.Swap(1)
	case ActionRotateClockwise:
		return target.Rotate(1)
	case ActionRotateCounterClockwise:
		return target.Rotate(3)
	case ActionCombine:
		return target.Combine()
	case ActionPaint:
		return target.Paint(paint)
	case ActionPass:
		return true
	}
	return false
}

func (k ActionKind) String() string {
	switch k {
	case ActionSmash:
		return "smash"
	case ActionSwapHorizontal:
		return "swap_horizontal"
	case ActionSwapVertical:
		return "swap_vertical"
	case ActionRotateClockwise:
		return "rotate_clockwise"
	case ActionRotateCounterClockwise:
		return "rotate_counterclockwise"
	case ActionCombine:
		return "combine"
	case ActionPaint:
		return "paint"
	case ActionPass:
		return "pass"
	}
	return "unknown"
}

func ActionKindFromString(s string) (ActionKind, error) {
	for kind := ActionSmash; kind <= ActionPass; kind++ {
		if kind.String() == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
