package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformGrid(side int, colour Colour) LinearGrid {
	grid := make(LinearGrid, side)
	for col := range grid {
		grid[col] = make([]Colour, side)
		for row := range grid[col] {
			grid[col][row] = colour
		}
	}
	return grid
}

func TestFlattenFillsALeaf(t *testing.T) {
	board := NewBoard(2, RealRed)
	assert.Equal(t, uniformGrid(4, RealRed), Flatten(board))
}

func TestFlattenPlacesQuadrants(t *testing.T) {
	board := quarteredBoard(t)
	want := LinearGrid{
		{PacificPoint, OldOlive},
		{RealRed, DaffodilDelight},
	}
	assert.Equal(t, want, Flatten(board))
}

func TestFlattenStacksNestedQuadrants(t *testing.T) {
	board := NewBoard(2, PacificPoint)
	board.Smash()
	board.children[1].Smash()
	assert.True(t, board.children[1].children[0].Paint(RealRed))

	want := uniformGrid(4, PacificPoint)
	want[1][0] = RealRed
	assert.Equal(t, want, Flatten(board))
}

func TestFlattenSideTracksTheLevel(t *testing.T) {
	board := NewBoard(3, OldOlive)
	board.Smash()
	board.children[0].Smash()
	assert.Len(t, Flatten(board), 8)
	assert.Len(t, Flatten(board.children[0]), 4)
	assert.Len(t, Flatten(board.children[0].children[2]), 2)
}

func TestFlattenReadsOnly(t *testing.T) {
	board := NewRandomBoard(3, newGameRNG())
	snapshot := board.Clone()
	Flatten(board)
	assert.True(t, board.Equal(snapshot))
}
