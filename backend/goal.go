package main

import (
	"errors"
	"fmt"
)

type GoalKind int

const (
	GoalPerimeter GoalKind = iota
	GoalBlob
)

// Goal grades a board against the colour a player must promote. Scoring
// never modifies the board.
type Goal interface {
	Score(board *Block) int
	Description() string
	Colour() Colour
	Kind() GoalKind
}

type PerimeterGoal struct {
	colour Colour
}

func NewPerimeterGoal(colour Colour) PerimeterGoal {
	return PerimeterGoal{colour: colour}
}

func (g PerimeterGoal) Colour() Colour {
	return g.colour
}

func (g PerimeterGoal) Kind() GoalKind {
	return GoalPerimeter
}

// Score counts target-coloured unit cells on the outer ring. Corner cells
// sit on two edges and count twice.
func (g PerimeterGoal) Score(board *Block) int {
	grid := Flatten(board)
	n := len(grid)
	score := 0
	for i := 0; i < n; i++ {
		if grid[i][0] == g.colour {
			score++
		}
		if grid[i][n-1] == g.colour {
			score++
		}
		if grid[0][i] == g.colour {
			score++
		}
		if grid[n-1][i] == g.colour {
			score++
		}
	}
	return score
}

func (g PerimeterGoal) Description() string {
	return fmt.Sprintf("Maximize the presence of %s on the perimeter of the board", g.colour)
}

type BlobGoal struct {
	colour Colour
}

func NewBlobGoal(colour Colour) BlobGoal {
	return BlobGoal{colour: colour}
}

func (g BlobGoal) Colour() Colour {
	return g.colour
}

func (g BlobGoal) Kind() GoalKind {
	return GoalBlob
}

type visitMark int8

const (
	unvisited visitMark = iota
	visitedNoMatch
	visitedMatch
)

// Score reports the size of the largest 4-connected group of
// target-coloured unit cells.
func (g BlobGoal) Score(board *Block) int {
	grid := Flatten(board)
	visited := make([][]visitMark, len(grid))
	for i := range visited {
		visited[i] = make([]visitMark, len(grid))
	}
	best := 0
	for col := 0; col < board.Size(); col++ {
		for row := 0; row < board.Size(); row++ {
			if size := g.undiscoveredBlobSize(col, row, grid, visited); size > best {
				best = size
			}
		}
	}
	return best
}

func (g BlobGoal) undiscoveredBlobSize(col, row int, grid LinearGrid, visited [][]visitMark) int {
	if col < 0 || row < 0 || col >= len(grid) || row >= len(grid) {
		return 0
	}
	if visited[col][row] != unvisited {
		return 0
	}
	if grid[col][row] != g.colour {
		visited[col][row] = visitedNoMatch
		return 0
	}
	visited[col][row] = visitedMatch
	size := 1
	size += g.undiscoveredBlobSize(col, row-1, grid, visited)
	size += g.undiscoveredBlobSize(col, row+1, grid, visited)
	size += g.undiscoveredBlobSize(col-1, row, grid, visited)
	size += g.undiscoveredBlobSize(col+1, row, grid, visited)
	return size
}

func (g BlobGoal) Description() string {
	return fmt.Sprintf("Create the largest connected blob of %s", g.colour)
}

var errPaletteExhausted = errors.New("more goals requested than palette colours")

// GenerateGoals draws one goal per player, a uniformly random kind with a
// colour dealt without replacement so no two players chase the same one.
func GenerateGoals(count int, rng intnSource) ([]Goal, error) {
	palette := Palette()
	if count > len(palette) {
		return nil, fmt.Errorf("%w: %d > %d", errPaletteExhausted, count, len(palette))
	}
	goals := make([]Goal, 0, count)
	for i := 0; i < count; i++ {
		idx := rng.IntN(len(palette))
		colour := palette[idx]
		palette = append(palette[:idx], palette[idx+1:]...)
		if rng.IntN(2) == 0 {
			goals = append(goals, NewPerimeterGoal(colour))
		} else {
			goals = append(goals, NewBlobGoal(colour))
		}
	}
	return goals, nil
}
