package main

import (
	"math"
	"math/rand/v2"
)

// Block is one node of the board quadtree. A leaf has a colour and no
// children; an internal node has exactly four children ordered top-right,
// top-left, bottom-left, bottom-right. (x, y) is the upper-left corner of
// the square the block covers, in unit cells.
type Block struct {
	colour   Colour
	level    int
	maxDepth int
	size     int
	x        int
	y        int
	children []*Block
}

const subdivisionDecay = 0.25

// NewBoard returns a one-colour board: a single leaf covering the whole
// 2^maxDepth x 2^maxDepth grid.
func NewBoard(maxDepth int, colour Colour) *Block {
	return &Block{colour: colour, maxDepth: maxDepth, size: 1 << maxDepth}
}

// NewRandomBoard grows a board top-down: a node at level L subdivides with
// probability exp(-0.25*L), so the root always splits and deeper nodes
// split less and less often. Leaves take a uniform palette colour.
func NewRandomBoard(maxDepth int, rng *rand.Rand) *Block {
	root := &Block{maxDepth: maxDepth, size: 1 << maxDepth}
	root.generate(rng)
	return root
}

func (b *Block) generate(rng *rand.Rand) {
	if b.level < b.maxDepth && rng.Float64() < math.Exp(-subdivisionDecay*float64(b.level)) {
		b.splitInto4()
		for _, child := range b.children {
			child.generate(rng)
		}
		return
	}
	palette := Palette()
	b.colour = palette[rng.IntN(len(palette))]
}

func (b *Block) splitInto4() {
	half := b.size / 2
	b.children = []*Block{
		{colour: b.colour, level: b.level + 1, maxDepth: b.maxDepth, size: half, x: b.x + half, y: b.y},
		{colour: b.colour, level: b.level + 1, maxDepth: b.maxDepth, size: half, x: b.x, y: b.y},
		{colour: b.colour, level: b.level + 1, maxDepth: b.maxDepth, size: half, x: b.x, y: b.y + half},
		{colour: b.colour, level: b.level + 1, maxDepth: b.maxDepth, size: half, x: b.x + half, y: b.y + half},
	}
	b.colour = Colour{}
}

func (b *Block) IsLeaf() bool {
	return len(b.children) == 0
}

func (b *Block) Colour() Colour {
	return b.colour
}

func (b *Block) Level() int {
	return b.level
}

func (b *Block) MaxDepth() int {
	return b.maxDepth
}

func (b *Block) Size() int {
	return b.size
}

func (b *Block) Position() (int, int) {
	return b.x, b.y
}

// Smash subdivides a leaf into four children of the same colour. Blocks at
// the bottom level cannot be smashed.
func (b *Block) Smash() bool {
	if !b.IsLeaf() || b.level == b.maxDepth {
		return false
	}
	b.splitInto4()
	return true
}

// Swap exchanges the two halves of an internal node, axis 0 left/right and
// axis 1 top/bottom, carrying the children's subtrees with them.
func (b *Block) Swap(axis int) bool {
	if b.IsLeaf() {
		return false
	}
	c := b.children
	if axis == 0 {
		b.children = []*Block{c[1], c[0], c[3], c[2]}
	} else {
		b.children = []*Block{c[3], c[2], c[1], c[0]}
	}
	b.updateChildPositions()
	return true
}

// Rotate turns an internal node a quarter turn, 1 step clockwise or 3
// steps counterclockwise. Nested blocks rotate with it.
func (b *Block) Rotate(steps int) bool {
	if b.IsLeaf() {
		return false
	}
	b.rotateTree(steps)
	b.updateChildPositions()
	return true
}

func (b *Block) rotateTree(steps int) {
	if b.IsLeaf() {
		return
	}
	c := b.children
	if steps == 1 {
		b.children = []*Block{c[1], c[2], c[3], c[0]}
	} else {
		b.children = []*Block{c[3], c[0], c[1], c[2]}
	}
	for _, child := range b.children {
		child.rotateTree(steps)
	}
}

func (b *Block) updateChildPositions() {
	if b.IsLeaf() {
		return
	}
	half := b.size / 2
	b.children[0].moveTo(b.x+half, b.y)
	b.children[1].moveTo(b.x, b.y)
	b.children[2].moveTo(b.x, b.y+half)
	b.children[3].moveTo(b.x+half, b.y+half)
}

func (b *Block) moveTo(x, y int) {
	b.x = x
	b.y = y
	b.updateChildPositions()
}

// Combine collapses four leaf children into a single leaf of their strict
// majority colour. Ties and non-leaf children make it illegal.
func (b *Block) Combine() bool {
	if b.IsLeaf() {
		return false
	}
	counts := make(map[Colour]int, 4)
	for _, child := range b.children {
		if !child.IsLeaf() {
			return false
		}
		counts[child.colour]++
	}
	var winner Colour
	best, runnerUp := 0, 0
	for colour, n := range counts {
		if n > best {
			runnerUp = best
			best = n
			winner = colour
		} else if n > runnerUp {
			runnerUp = n
		}
	}
	if best == runnerUp {
		return false
	}
	b.colour = winner
	b.children = nil
	return true
}

// Paint recolours a unit cell: only leaves at the bottom level qualify, and
// repainting the current colour is not a move.
func (b *Block) Paint(colour Colour) bool {
	if !b.IsLeaf() || b.level != b.maxDepth || b.colour == colour {
		return false
	}
	b.colour = colour
	return true
}

func (b *Block) Clone() *Block {
	clone := &Block{colour: b.colour, level: b.level, maxDepth: b.maxDepth, size: b.size, x: b.x, y: b.y}
	if b.IsLeaf() {
		return clone
	}
	clone.children = make([]*Block, len(b.children))
	for i, child := range b.children {
		clone.children[i] = child.Clone()
	}
	return clone
}

func (b *Block) contains(x, y int) bool {
	return x >= b.x && y >= b.y && x < b.x+b.size && y < b.y+b.size
}

// Locate resolves the block at the given level containing (x, y), or a
// shallower leaf when the tree stops early. A block owns its top and left
// edges but not its bottom or right ones; points outside resolve to nil,
// and levels past the bottom clamp to it.
func (b *Block) Locate(x, y, level int) *Block {
	if !b.contains(x, y) {
		return nil
	}
	if b.level == level || b.IsLeaf() {
		return b
	}
	if level > b.maxDepth {
		level = b.maxDepth
	}
	for _, child := range b.children {
		if found := child.Locate(x, y, level); found != nil {
			return found
		}
	}
	return nil
}

// Equal reports whether two trees match structurally: same geometry, same
// colours, same shape.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.colour != other.colour || b.level != other.level || b.maxDepth != other.maxDepth ||
		b.size != other.size || b.x != other.x || b.y != other.y {
		return false
	}
	if len(b.children) != len(other.children) {
		return false
	}
	for i := range b.children {
		if !b.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
