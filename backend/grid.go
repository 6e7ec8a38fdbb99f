package main

// LinearGrid is the unit-cell rendering of a block, addressed
// [column][row] with [0][0] the upper-left corner.
type LinearGrid [][]Colour

// Flatten renders a block into unit cells. A block at level L covers a
// square of side 2^(maxDepth-L); the left half of the result is the
// top-left child's grid stacked above the bottom-left child's, the right
// half the top-right above the bottom-right.
func Flatten(b *Block) LinearGrid {
	side := 1 << (b.maxDepth - b.level)
	if b.IsLeaf() {
		grid := make(LinearGrid, side)
		for col := range grid {
			grid[col] = make([]Colour, side)
			for row := range grid[col] {
				grid[col][row] = b.colour
			}
		}
		return grid
	}
	topRight := Flatten(b.children[0])
	topLeft := Flatten(b.children[1])
	bottomLeft := Flatten(b.children[2])
	bottomRight := Flatten(b.children[3])
	half := side / 2
	grid := make(LinearGrid, 0, side)
	for i := 0; i < half; i++ {
		column := make([]Colour, 0, side)
		column = append(column, topLeft[i]...)
		column = append(column, bottomLeft[i]...)
		grid = append(grid, column)
	}
	for i := 0; i < half; i++ {
		column := make([]Colour, 0, side)
		column = append(column, topRight[i]...)
		column = append(column, bottomRight[i]...)
		grid = append(grid, column)
	}
	return grid
}
