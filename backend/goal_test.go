package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerimeterGoalCountsEdgeCells(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	assert.Equal(t, 16, NewPerimeterGoal(PacificPoint).Score(board))
	assert.Equal(t, 0, NewPerimeterGoal(RealRed).Score(board))
}

func TestPerimeterGoalDoublesCorners(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	board.Smash()
	board.children[1].Smash()
	goal := NewPerimeterGoal(RealRed)

	assert.True(t, board.children[1].children[1].Paint(RealRed)) // corner (0,0)
	assert.Equal(t, 2, goal.Score(board))

	assert.True(t, board.children[1].children[0].Paint(RealRed)) // edge (1,0)
	assert.Equal(t, 3, goal.Score(board))

	assert.True(t, board.children[1].children[3].Paint(RealRed)) // interior (1,1)
	assert.Equal(t, 3, goal.Score(board))
}

func TestBlobGoalMeasuresTheLargestGroup(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	assert.Equal(t, 16, NewBlobGoal(PacificPoint).Score(board))
	assert.Equal(t, 0, NewBlobGoal(RealRed).Score(board))

	board.Smash()
	board.children[0].Smash()
	assert.True(t, board.children[0].children[0].Paint(RealRed))
	assert.Equal(t, 15, NewBlobGoal(PacificPoint).Score(board))
	assert.Equal(t, 1, NewBlobGoal(RealRed).Score(board))
}

func TestBlobGoalPicksTheBiggerOfTwoGroups(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	board.Smash()
	topLeft := board.children[1]
	topLeft.Smash()
	bottomRight := board.children[3]
	bottomRight.Smash()

	assert.True(t, topLeft.children[1].Paint(RealRed))     // (0,0)
	assert.True(t, topLeft.children[0].Paint(RealRed))     // (1,0)
	assert.True(t, topLeft.children[2].Paint(RealRed))     // (0,1)
	assert.True(t, bottomRight.children[3].Paint(RealRed)) // (3,3)

	assert.Equal(t, 3, NewBlobGoal(RealRed).Score(board))
}

func TestBlobGoalIgnoresDiagonals(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	board.Smash()
	for _, child := range board.children {
		child.Smash()
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			if (x+y)%2 == 0 {
				assert.True(t, board.Locate(x, y, 2).Paint(RealRed))
			}
		}
	}
	assert.Equal(t, 1, NewBlobGoal(RealRed).Score(board))
	assert.Equal(t, 1, NewBlobGoal(PacificPoint).Score(board))
}

func TestGoalScoringReadsOnly(t *testing.T) {
	board := NewRandomBoard(3, newGameRNG())
	snapshot := board.Clone()
	for _, colour := range Palette() {
		NewPerimeterGoal(colour).Score(board)
		NewBlobGoal(colour).Score(board)
	}
	assert.True(t, board.Equal(snapshot))
}

func TestGenerateGoalsDealsDistinctColours(t *testing.T) {
	rng := newGameRNG()
	for count := 1; count <= 4; count++ {
		goals, err := GenerateGoals(count, rng)
		assert.NoError(t, err)
		assert.Len(t, goals, count)
		seen := map[Colour]bool{}
		for _, goal := range goals {
			assert.False(t, seen[goal.Colour()], "colour %v dealt twice", goal.Colour())
			seen[goal.Colour()] = true
			assert.Contains(t, goal.Description(), goal.Colour().String())
		}
	}
}

func TestGenerateGoalsRejectsTooMany(t *testing.T) {
	goals, err := GenerateGoals(5, newGameRNG())
	assert.Nil(t, goals)
	assert.ErrorIs(t, err, errPaletteExhausted)
}

func TestGenerateGoalsFollowsTheDraw(t *testing.T) {
	rng := &scriptedIntN{values: []int{0, 0, 0, 1}}
	goals, err := GenerateGoals(2, rng)
	assert.NoError(t, err)
	assert.Equal(t, GoalPerimeter, goals[0].Kind())
	assert.Equal(t, PacificPoint, goals[0].Colour())
	assert.Equal(t, GoalBlob, goals[1].Kind())
	assert.Equal(t, RealRed, goals[1].Colour())
}
