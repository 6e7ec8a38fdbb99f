package main

type RandomPlayer struct {
	id      int
	goal    Goal
	rng     intnSource
	proceed bool
}

func NewRandomPlayer(id int, goal Goal, rng intnSource) *RandomPlayer {
	return &RandomPlayer{id: id, goal: goal, rng: rng}
}

func (p *RandomPlayer) ID() int {
	return p.id
}

func (p *RandomPlayer) Goal() Goal {
	return p.goal
}

func (p *RandomPlayer) IsHuman() bool {
	return false
}

func (p *RandomPlayer) Signal() {
	p.proceed = true
}

// GenerateMove keeps trying random mutations on scratch copies until one
// applies, then maps the move back onto the real board by the target's
// coordinates. A drawn Pass is discarded and redrawn. The board passed in
// is never modified.
func (p *RandomPlayer) GenerateMove(board *Block) (Move, bool) {
	if !p.proceed {
		return Move{}, false
	}
	p.proceed = false
	for {
		scratch := board.Clone()
		target := randomTarget(scratch, p.rng)
		action := actionTable[p.rng.IntN(len(actionTable))]
		if action.Kind == ActionPass {
			continue
		}
		if !applyAction(target, action, p.goal.Colour()) {
			continue
		}
		x, y := target.Position()
		return Move{Action: action, Target: board.Locate(x, y, target.Level())}, true
	}
}
